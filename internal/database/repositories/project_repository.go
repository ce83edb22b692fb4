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

type ProjectRepository struct {
	db *gorm.DB
	*database.GormRepository[uuid.UUID, models.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Project](db),
	}
}

func (r *ProjectRepository) ReadBySlug(slug string) (models.Project, error) {
	var project models.Project
	err := r.db.Where("slug = ?", slug).First(&project).Error
	return project, err
}

func (r *ProjectRepository) All() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Order("created_at DESC, id DESC").Find(&projects).Error
	return projects, err
}

// HardDelete removes a project and everything hanging off it. The
// cascade is spelled out instead of relying on database constraints so
// the deletion order is explicit and works on every backend.
func (r *ProjectRepository) HardDelete(projectID uuid.UUID) error {
	return r.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("run_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&models.Run{}).Select("id").Where("project_id = ?", projectID)).
			Delete(&models.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("project_id = ?", projectID).Delete(&models.Run{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("suite_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&models.Suite{}).Unscoped().Select("id").Where("project_id = ?", projectID)).
			Delete(&models.Case{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("project_id = ?", projectID).Delete(&models.Suite{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", projectID).Delete(&models.Project{}).Error
	})
}
