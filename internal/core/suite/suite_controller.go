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

package suite

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database/models"
)

type suiteRepository interface {
	Create(tx core.DB, suite *models.Suite) error
	Save(tx core.DB, suite *models.Suite) error
	Delete(tx core.DB, id uuid.UUID) error
	GetByProjectID(projectID uuid.UUID) ([]models.Suite, error)
}

type caseRepository interface {
	GetBySuiteID(suiteID uuid.UUID) ([]models.Case, error)
}

type Controller struct {
	suiteRepository suiteRepository
	caseRepository  caseRepository
}

func NewHTTPController(repository suiteRepository, caseRepository caseRepository) *Controller {
	return &Controller{
		suiteRepository: repository,
		caseRepository:  caseRepository,
	}
}

func (s *Controller) Create(c core.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	// parent existence is guaranteed by the project middleware
	model := req.toModel()
	model.ProjectID = core.GetProject(c).ID

	if err := s.suiteRepository.Create(nil, &model); err != nil {
		return echo.NewHTTPError(500, "could not create suite").WithInternal(err)
	}

	return c.JSON(201, model)
}

func (s *Controller) List(c core.Context) error {
	suites, err := s.suiteRepository.GetByProjectID(core.GetProject(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(200, suites)
}

func (s *Controller) Read(c core.Context) error {
	suite := core.GetSuite(c)

	cases, err := s.caseRepository.GetBySuiteID(suite.ID)
	if err != nil {
		return err
	}

	return c.JSON(200, suiteDetailsDTO{
		Suite: suite,
		Cases: cases,
	})
}

func (s *Controller) Update(c core.Context) error {
	suite := core.GetSuite(c)

	var req patchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if req.applyToModel(&suite) {
		if err := s.suiteRepository.Save(nil, &suite); err != nil {
			return echo.NewHTTPError(500, "could not update suite").WithInternal(err)
		}
	}

	return c.JSON(200, suite)
}

func (s *Controller) Delete(c core.Context) error {
	if err := s.suiteRepository.Delete(nil, core.GetSuite(c).ID); err != nil {
		return echo.NewHTTPError(500, "could not archive suite").WithInternal(err)
	}

	return c.NoContent(200)
}
