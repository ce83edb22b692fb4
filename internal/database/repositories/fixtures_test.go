package repositories_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testboard-dev/testboard/internal/database/models"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: models.UserRoleQA}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("could not seed user: %v", err)
	}
	return user
}

func seedProject(t *testing.T, db *gorm.DB, createdBy models.User, slug string) models.Project {
	t.Helper()
	project := models.Project{Name: slug, Slug: slug, CreatedByID: createdBy.ID}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("could not seed project: %v", err)
	}
	return project
}

func seedSuite(t *testing.T, db *gorm.DB, project models.Project, name string) models.Suite {
	t.Helper()
	suite := models.Suite{ProjectID: project.ID, Name: name}
	if err := db.Create(&suite).Error; err != nil {
		t.Fatalf("could not seed suite: %v", err)
	}
	return suite
}

func seedCase(t *testing.T, db *gorm.DB, suite models.Suite, title string) models.Case {
	t.Helper()
	c := models.Case{SuiteID: suite.ID, Title: title}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("could not seed case: %v", err)
	}
	return c
}

// seedRun pins createdAt so ordering assertions do not depend on the
// timestamp resolution of the store.
func seedRun(t *testing.T, db *gorm.DB, project models.Project, createdBy models.User, createdAt time.Time) models.Run {
	t.Helper()
	run := models.Run{ProjectID: project.ID, CreatedByID: createdBy.ID}
	run.CreatedAt = createdAt
	if err := db.Create(&run).Error; err != nil {
		t.Fatalf("could not seed run: %v", err)
	}
	return run
}

func seedResult(t *testing.T, db *gorm.DB, runID, caseID uuid.UUID, status models.ResultStatus, durationMS int64, createdAt time.Time) models.Result {
	t.Helper()
	result := models.Result{RunID: runID, CaseID: caseID, Status: status, DurationMS: durationMS}
	result.CreatedAt = createdAt
	if err := db.Create(&result).Error; err != nil {
		t.Fatalf("could not seed result: %v", err)
	}
	return result
}
