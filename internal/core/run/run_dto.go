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
	"github.com/testboard-dev/testboard/internal/database/models"
)

type createRequest struct {
	TriggeredByCI bool `json:"triggeredByCi"`
}

// resultSubmission carries the case id as a string so a malformed id
// rejects that one entry instead of the whole batch.
type resultSubmission struct {
	CaseID      string  `json:"caseId"`
	Status      string  `json:"status"`
	DurationMS  int64   `json:"durationMs"`
	EvidenceURL *string `json:"evidenceUrl"`
}

type submitResultsRequest struct {
	Results []resultSubmission `json:"results" validate:"required,min=1"`
}

const (
	rejectReasonValidation = "validation"
	rejectReasonNotFound   = "not_found"
	rejectReasonConflict   = "conflict"
)

type rejectedResult struct {
	CaseID string `json:"caseId"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

type ingestReport struct {
	Accepted []models.Result  `json:"accepted"`
	Rejected []rejectedResult `json:"rejected"`
}

type runWithSummaryDTO struct {
	models.Run
	Summary models.RunSummary `json:"summary"`
}
