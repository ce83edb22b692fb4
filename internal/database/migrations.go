package database

import (
	"github.com/testboard-dev/testboard/internal/database/models"
	"gorm.io/gorm"
)

// RunMigrations brings the five domain tables (plus users) up to date.
// Disable at boot with DISABLE_AUTOMIGRATE=true when the schema is
// managed externally.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Suite{},
		&models.Case{},
		&models.Run{},
		&models.Result{},
	)
}
