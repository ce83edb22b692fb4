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
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database"
	"github.com/testboard-dev/testboard/internal/database/models"
	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
	*database.GormRepository[uuid.UUID, models.Run]
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Run](db),
	}
}

func (r *RunRepository) ReadForProject(projectID, runID uuid.UUID) (models.Run, error) {
	var run models.Run
	err := r.db.Where("id = ? AND project_id = ?", runID, projectID).First(&run).Error
	return run, err
}

// GetByProjectIDPaged lists the runs of a project newest first. The
// offset pagination makes the sequence restartable for callers walking
// the history page by page.
func (r *RunRepository) GetByProjectIDPaged(pageInfo core.PageInfo, projectID uuid.UUID) (core.Paged[models.Run], error) {
	var count int64
	if err := r.db.Model(&models.Run{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return core.Paged[models.Run]{}, err
	}

	var runs []models.Run
	err := pageInfo.ApplyOnDB(r.db).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&runs).Error
	if err != nil {
		return core.Paged[models.Run]{}, err
	}

	return core.NewPaged(pageInfo, count, runs), nil
}
