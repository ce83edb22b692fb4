// Copyright (C) 2024 Tim Bastin, l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package repositories

import (
	"github.com/google/uuid"
	"github.com/testboard-dev/testboard/internal/database"
	"github.com/testboard-dev/testboard/internal/database/models"
	"gorm.io/gorm"
)

type CaseRepository struct {
	db *gorm.DB
	*database.GormRepository[uuid.UUID, models.Case]
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Case](db),
	}
}

func (r *CaseRepository) GetBySuiteID(suiteID uuid.UUID) ([]models.Case, error) {
	var cases []models.Case
	err := r.db.Where("suite_id = ?", suiteID).Order("created_at ASC, id ASC").Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) ReadForSuite(suiteID, caseID uuid.UUID) (models.Case, error) {
	var c models.Case
	err := r.db.Where("id = ? AND suite_id = ?", caseID, suiteID).First(&c).Error
	return c, err
}

// ReadDetail returns the case together with its ancestry through three
// explicit lookups. No relation is fetched lazily.
func (r *CaseRepository) ReadDetail(caseID uuid.UUID) (models.CaseDetail, error) {
	var detail models.CaseDetail
	if err := r.db.Where("id = ?", caseID).First(&detail.Case).Error; err != nil {
		return detail, err
	}
	if err := r.db.Where("id = ?", detail.Case.SuiteID).First(&detail.Suite).Error; err != nil {
		return detail, err
	}
	err := r.db.Where("id = ?", detail.Suite.ProjectID).First(&detail.Project).Error
	return detail, err
}

// ProjectIDsForCases maps each existing case id to the project it
// belongs to (through its suite). Archived cases are excluded, so
// ingestion treats them like unknown ones. Used to reject cross-project
// result submissions in one query.
func (r *CaseRepository) ProjectIDsForCases(caseIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	projectIDByCase := make(map[uuid.UUID]uuid.UUID, len(caseIDs))
	if len(caseIDs) == 0 {
		return projectIDByCase, nil
	}

	var rows []struct {
		ID        uuid.UUID
		ProjectID uuid.UUID
	}
	err := r.db.Model(&models.Case{}).
		Select("cases.id, suites.project_id").
		Joins("JOIN suites ON suites.id = cases.suite_id").
		Where("cases.id IN ?", caseIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		projectIDByCase[row.ID] = row.ProjectID
	}
	return projectIDByCase, nil
}

// History returns every recorded outcome of the case, newest first.
func (r *CaseRepository) History(caseID uuid.UUID) ([]models.CaseHistoryEntry, error) {
	var entries []models.CaseHistoryEntry
	err := r.db.Model(&models.Result{}).
		Select("results.run_id, results.status, results.duration_ms, results.created_at AS recorded_at").
		Where("results.case_id = ?", caseID).
		Order("results.created_at DESC, results.id DESC").
		Scan(&entries).Error
	return entries, err
}
