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

type ResultRepository struct {
	db *gorm.DB
	*database.GormRepository[uuid.UUID, models.Result]
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Result](db),
	}
}

func (r *ResultRepository) GetByRunID(runID uuid.UUID) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("run_id = ?", runID).Order("created_at ASC, id ASC").Find(&results).Error
	return results, err
}

// CaseIDsForRun returns the set of cases that already have a result in
// the run. Ingestion uses it to reject duplicate submissions per item.
func (r *ResultRepository) CaseIDsForRun(runID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var caseIDs []uuid.UUID
	err := r.db.Model(&models.Result{}).Where("run_id = ?", runID).Pluck("case_id", &caseIDs).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(caseIDs))
	for _, id := range caseIDs {
		set[id] = struct{}{}
	}
	return set, nil
}

// Summary aggregates one run in a single query. SUM(CASE WHEN ...)
// instead of FILTER keeps it portable to the sqlite test driver.
func (r *ResultRepository) Summary(runID uuid.UUID) (models.RunSummary, error) {
	var summary models.RunSummary
	err := r.db.Model(&models.Result{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'pass' THEN 1 ELSE 0 END), 0) AS pass,
			COALESCE(SUM(CASE WHEN status = 'fail' THEN 1 ELSE 0 END), 0) AS fail,
			COALESCE(SUM(CASE WHEN status = 'skip' THEN 1 ELSE 0 END), 0) AS skip,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) AS error,
			COALESCE(SUM(duration_ms), 0) AS duration_total_ms`).
		Where("run_id = ?", runID).
		Scan(&summary).Error
	return summary, err
}

// SummariesForRuns aggregates a whole page of runs at once so listing
// does not issue one query per run.
func (r *ResultRepository) SummariesForRuns(runIDs []uuid.UUID) (map[uuid.UUID]models.RunSummary, error) {
	summaries := make(map[uuid.UUID]models.RunSummary, len(runIDs))
	if len(runIDs) == 0 {
		return summaries, nil
	}

	var rows []struct {
		RunID           uuid.UUID
		Total           int64
		Pass            int64
		Fail            int64
		Skip            int64
		Error           int64
		DurationTotalMS int64 `gorm:"column:duration_total_ms"`
	}
	err := r.db.Model(&models.Result{}).
		Select(`run_id,
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'pass' THEN 1 ELSE 0 END), 0) AS pass,
			COALESCE(SUM(CASE WHEN status = 'fail' THEN 1 ELSE 0 END), 0) AS fail,
			COALESCE(SUM(CASE WHEN status = 'skip' THEN 1 ELSE 0 END), 0) AS skip,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) AS error,
			COALESCE(SUM(duration_ms), 0) AS duration_total_ms`).
		Where("run_id IN ?", runIDs).
		Group("run_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries[row.RunID] = models.RunSummary{
			Total:           row.Total,
			Pass:            row.Pass,
			Fail:            row.Fail,
			Skip:            row.Skip,
			Error:           row.Error,
			DurationTotalMS: row.DurationTotalMS,
		}
	}
	return summaries, nil
}
