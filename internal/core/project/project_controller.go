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

package project

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database"
	"github.com/testboard-dev/testboard/internal/database/models"
)

type projectRepository interface {
	Create(tx core.DB, project *models.Project) error
	Save(tx core.DB, project *models.Project) error
	Delete(tx core.DB, id uuid.UUID) error
	All() ([]models.Project, error)
	HardDelete(projectID uuid.UUID) error
}

type suiteRepository interface {
	GetByProjectID(projectID uuid.UUID) ([]models.Suite, error)
}

type Controller struct {
	projectRepository projectRepository
	suiteRepository   suiteRepository
}

func NewHTTPController(repository projectRepository, suiteRepository suiteRepository) *Controller {
	return &Controller{
		projectRepository: repository,
		suiteRepository:   suiteRepository,
	}
}

func (p *Controller) Create(c core.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	model := req.toModel()
	model.CreatedByID = uuid.MustParse(core.GetSession(c).GetUserID())

	if err := p.projectRepository.Create(nil, &model); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a project with this name already exists")
		}
		return echo.NewHTTPError(500, "could not create project").WithInternal(err)
	}

	return c.JSON(201, model)
}

func (p *Controller) List(c core.Context) error {
	projects, err := p.projectRepository.All()
	if err != nil {
		return err
	}

	return c.JSON(200, projects)
}

func (p *Controller) Read(c core.Context) error {
	// the project middleware already resolved the slug
	project := core.GetProject(c)

	suites, err := p.suiteRepository.GetByProjectID(project.ID)
	if err != nil {
		return err
	}

	return c.JSON(200, projectDetailsDTO{
		Project: project,
		Suites:  suites,
	})
}

func (p *Controller) Update(c core.Context) error {
	project := core.GetProject(c)

	var req patchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if req.applyToModel(&project) {
		if err := p.projectRepository.Save(nil, &project); err != nil {
			if database.IsDuplicateKeyError(err) {
				return echo.NewHTTPError(409, "a project with this name already exists")
			}
			return echo.NewHTTPError(500, "could not update project").WithInternal(err)
		}
	}

	return c.JSON(200, project)
}

// Delete archives the project. With ?force=true it removes the project
// and its suites, cases, runs and results for good - the route is
// admin gated either way.
func (p *Controller) Delete(c core.Context) error {
	project := core.GetProject(c)

	if c.QueryParam("force") == "true" {
		if err := p.projectRepository.HardDelete(project.ID); err != nil {
			return echo.NewHTTPError(500, "could not delete project").WithInternal(err)
		}
		return c.NoContent(200)
	}

	if err := p.projectRepository.Delete(nil, project.ID); err != nil {
		return echo.NewHTTPError(500, "could not archive project").WithInternal(err)
	}

	return c.NoContent(200)
}
