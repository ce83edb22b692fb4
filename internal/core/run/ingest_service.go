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
	"fmt"

	"github.com/google/uuid"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database/models"
	"github.com/testboard-dev/testboard/internal/monitoring"
)

type ingestCaseRepository interface {
	ProjectIDsForCases(caseIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
}

type ingestResultRepository interface {
	CaseIDsForRun(runID uuid.UUID) (map[uuid.UUID]struct{}, error)
	CreateBatch(tx core.DB, results []models.Result) error
	Transaction(fn func(tx core.DB) error) error
}

// IngestService records a batch of results for a run. Ingestion is
// best effort per entry: CI callers submit large result sets and one
// malformed entry must not discard the rest. All accepted entries of a
// batch commit in a single transaction.
type IngestService struct {
	caseRepository   ingestCaseRepository
	resultRepository ingestResultRepository
}

func NewIngestService(caseRepository ingestCaseRepository, resultRepository ingestResultRepository) *IngestService {
	return &IngestService{
		caseRepository:   caseRepository,
		resultRepository: resultRepository,
	}
}

func (s *IngestService) SubmitResults(run models.Run, submissions []resultSubmission) (ingestReport, error) {
	report := ingestReport{
		Accepted: []models.Result{},
		Rejected: []rejectedResult{},
	}

	caseIDs := make([]uuid.UUID, 0, len(submissions))
	for _, submission := range submissions {
		if caseID, err := uuid.Parse(submission.CaseID); err == nil {
			caseIDs = append(caseIDs, caseID)
		}
	}

	projectIDByCase, err := s.caseRepository.ProjectIDsForCases(caseIDs)
	if err != nil {
		return report, fmt.Errorf("could not look up cases: %w", err)
	}

	recorded, err := s.resultRepository.CaseIDsForRun(run.ID)
	if err != nil {
		return report, fmt.Errorf("could not look up recorded results: %w", err)
	}

	for _, submission := range submissions {
		if rejected, ok := validate(run, submission, projectIDByCase, recorded); !ok {
			report.Rejected = append(report.Rejected, rejected)
			continue
		}

		caseID := uuid.MustParse(submission.CaseID)
		// a second entry for the same case within this batch is a
		// duplicate as well
		recorded[caseID] = struct{}{}

		report.Accepted = append(report.Accepted, models.Result{
			RunID:       run.ID,
			CaseID:      caseID,
			Status:      models.ResultStatus(submission.Status),
			DurationMS:  submission.DurationMS,
			EvidenceURL: submission.EvidenceURL,
		})
	}

	if len(report.Accepted) > 0 {
		err = s.resultRepository.Transaction(func(tx core.DB) error {
			return s.resultRepository.CreateBatch(tx, report.Accepted)
		})
		if err != nil {
			return ingestReport{}, fmt.Errorf("could not persist results: %w", err)
		}
	}

	monitoring.ResultsAcceptedAmount.Add(float64(len(report.Accepted)))
	monitoring.ResultsRejectedAmount.Add(float64(len(report.Rejected)))

	return report, nil
}

func validate(run models.Run, submission resultSubmission, projectIDByCase map[uuid.UUID]uuid.UUID, recorded map[uuid.UUID]struct{}) (rejectedResult, bool) {
	reject := func(reason, detail string) (rejectedResult, bool) {
		return rejectedResult{CaseID: submission.CaseID, Reason: reason, Detail: detail}, false
	}

	caseID, err := uuid.Parse(submission.CaseID)
	if err != nil {
		return reject(rejectReasonValidation, "invalid case id")
	}

	if !models.ResultStatus(submission.Status).Valid() {
		return reject(rejectReasonValidation, fmt.Sprintf("unknown status %q", submission.Status))
	}

	if submission.DurationMS < 0 {
		return reject(rejectReasonValidation, "duration must not be negative")
	}

	projectID, ok := projectIDByCase[caseID]
	if !ok {
		return reject(rejectReasonNotFound, "case does not exist")
	}

	if projectID != run.ProjectID {
		return reject(rejectReasonValidation, "case belongs to a different project")
	}

	// duplicate submissions are rejected, never overwritten - a run is
	// append-only history
	if _, exists := recorded[caseID]; exists {
		return reject(rejectReasonConflict, "case already has a result in this run")
	}

	return rejectedResult{}, true
}
