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

package testcase

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database/models"
)

type caseRepository interface {
	Create(tx core.DB, testCase *models.Case) error
	Save(tx core.DB, testCase *models.Case) error
	Delete(tx core.DB, id uuid.UUID) error
	GetBySuiteID(suiteID uuid.UUID) ([]models.Case, error)
	ReadDetail(caseID uuid.UUID) (models.CaseDetail, error)
	History(caseID uuid.UUID) ([]models.CaseHistoryEntry, error)
}

type Controller struct {
	caseRepository caseRepository
}

func NewHTTPController(repository caseRepository) *Controller {
	return &Controller{
		caseRepository: repository,
	}
}

func (t *Controller) Create(c core.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	// parent existence is guaranteed by the suite middleware
	model := req.toModel()
	model.SuiteID = core.GetSuite(c).ID

	if err := t.caseRepository.Create(nil, &model); err != nil {
		return echo.NewHTTPError(500, "could not create case").WithInternal(err)
	}

	return c.JSON(201, model)
}

func (t *Controller) List(c core.Context) error {
	cases, err := t.caseRepository.GetBySuiteID(core.GetSuite(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(200, cases)
}

// Read returns the case with its full ancestry (suite and project).
func (t *Controller) Read(c core.Context) error {
	detail, err := t.caseRepository.ReadDetail(core.GetCase(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(200, detail)
}

func (t *Controller) Update(c core.Context) error {
	testCase := core.GetCase(c)

	var req patchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if req.applyToModel(&testCase) {
		if err := t.caseRepository.Save(nil, &testCase); err != nil {
			return echo.NewHTTPError(500, "could not update case").WithInternal(err)
		}
	}

	return c.JSON(200, testCase)
}

func (t *Controller) Delete(c core.Context) error {
	if err := t.caseRepository.Delete(nil, core.GetCase(c).ID); err != nil {
		return echo.NewHTTPError(500, "could not archive case").WithInternal(err)
	}

	return c.NoContent(200)
}

// History lists every recorded outcome of the case across runs, newest
// first. Flakiness analysis happens on the caller side.
func (t *Controller) History(c core.Context) error {
	entries, err := t.caseRepository.History(core.GetCase(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(200, entries)
}
