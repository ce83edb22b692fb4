package repositories

import (
	"github.com/google/uuid"
	"github.com/testboard-dev/testboard/internal/database"
	"github.com/testboard-dev/testboard/internal/database/models"
	"gorm.io/gorm"
)

type SuiteRepository struct {
	db *gorm.DB
	*database.GormRepository[uuid.UUID, models.Suite]
}

func NewSuiteRepository(db *gorm.DB) *SuiteRepository {
	return &SuiteRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Suite](db),
	}
}

func (r *SuiteRepository) GetByProjectID(projectID uuid.UUID) ([]models.Suite, error) {
	var suites []models.Suite
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC, id ASC").Find(&suites).Error
	return suites, err
}

// ReadForProject scopes the lookup to one project so a suite of a
// different project can never be addressed through a foreign url.
func (r *SuiteRepository) ReadForProject(projectID, suiteID uuid.UUID) (models.Suite, error) {
	var suite models.Suite
	err := r.db.Where("id = ? AND project_id = ?", suiteID, projectID).First(&suite).Error
	return suite, err
}
