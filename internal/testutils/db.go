package testutils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/testboard-dev/testboard/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InMemoryDB opens an isolated in-memory database with the full schema
// applied. Each test gets its own named database so parallel tests do
// not see each other's rows.
func InMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open in-memory database: %v", err)
	}

	// a single connection keeps the in-memory database alive for the
	// whole test
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("could not get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() }) // nolint: errcheck

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	return db
}
