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

package run

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database/models"
	"github.com/testboard-dev/testboard/internal/monitoring"
)

type runRepository interface {
	Create(tx core.DB, run *models.Run) error
	GetByProjectIDPaged(pageInfo core.PageInfo, projectID uuid.UUID) (core.Paged[models.Run], error)
}

type resultRepository interface {
	Summary(runID uuid.UUID) (models.RunSummary, error)
	SummariesForRuns(runIDs []uuid.UUID) (map[uuid.UUID]models.RunSummary, error)
	GetByRunID(runID uuid.UUID) ([]models.Result, error)
}

type ingestService interface {
	SubmitResults(run models.Run, submissions []resultSubmission) (ingestReport, error)
}

type Controller struct {
	runRepository    runRepository
	resultRepository resultRepository
	ingestService    ingestService
}

func NewHTTPController(repository runRepository, resultRepository resultRepository, ingestService ingestService) *Controller {
	return &Controller{
		runRepository:    repository,
		resultRepository: resultRepository,
		ingestService:    ingestService,
	}
}

func (r *Controller) Create(c core.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	model := models.Run{
		ProjectID:     core.GetProject(c).ID,
		CreatedByID:   uuid.MustParse(core.GetSession(c).GetUserID()),
		TriggeredByCI: req.TriggeredByCI,
	}

	if err := r.runRepository.Create(nil, &model); err != nil {
		return echo.NewHTTPError(500, "could not create run").WithInternal(err)
	}

	monitoring.RunsCreatedAmount.Inc()

	return c.JSON(201, model)
}

// List returns the project's runs newest first, each with its summary.
func (r *Controller) List(c core.Context) error {
	pagedRuns, err := r.runRepository.GetByProjectIDPaged(core.GetPageInfo(c), core.GetProject(c).ID)
	if err != nil {
		return err
	}

	runIDs := make([]uuid.UUID, len(pagedRuns.Data))
	for i, run := range pagedRuns.Data {
		runIDs[i] = run.ID
	}

	summaries, err := r.resultRepository.SummariesForRuns(runIDs)
	if err != nil {
		return err
	}

	data := make([]runWithSummaryDTO, len(pagedRuns.Data))
	for i, run := range pagedRuns.Data {
		data[i] = runWithSummaryDTO{
			Run:     run,
			Summary: summaries[run.ID],
		}
	}

	return c.JSON(200, core.NewPaged(pagedRuns.PageInfo, pagedRuns.Total, data))
}

func (r *Controller) Summary(c core.Context) error {
	summary, err := r.resultRepository.Summary(core.GetRun(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(200, summary)
}

func (r *Controller) Results(c core.Context) error {
	results, err := r.resultRepository.GetByRunID(core.GetRun(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(200, results)
}

// SubmitResults ingests a batch of results. Partial success is the
// contract: valid entries persist, invalid ones come back individually
// with a reason.
func (r *Controller) SubmitResults(c core.Context) error {
	var req submitResultsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	report, err := r.ingestService.SubmitResults(core.GetRun(c), req.Results)
	if err != nil {
		// no connection details leak to the caller
		return echo.NewHTTPError(503, "service unavailable").WithInternal(err)
	}

	return c.JSON(200, report)
}
