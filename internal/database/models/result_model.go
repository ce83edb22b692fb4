package models

import (
	"github.com/google/uuid"
)

type ResultStatus string

const (
	ResultStatusPass  ResultStatus = "pass"
	ResultStatusFail  ResultStatus = "fail"
	ResultStatusSkip  ResultStatus = "skip"
	ResultStatusError ResultStatus = "error"
)

// Valid reports whether the status is part of the closed enum. Unknown
// values never reach the database.
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultStatusPass, ResultStatusFail, ResultStatusSkip, ResultStatusError:
		return true
	}
	return false
}

// Result is the outcome of one case within one run. Immutable once
// written - a run accepts at most one result per case.
type Result struct {
	Model
	RunID  uuid.UUID `json:"runId" gorm:"type:uuid;not null;uniqueIndex:idx_result_run_case"`
	Run    Run       `json:"-" gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE;"`
	CaseID uuid.UUID `json:"caseId" gorm:"type:uuid;not null;uniqueIndex:idx_result_run_case"`
	Case   Case      `json:"-" gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE;"`

	Status      ResultStatus `json:"status" gorm:"type:text;not null"`
	DurationMS  int64        `json:"durationMs" gorm:"column:duration_ms;not null"`
	EvidenceURL *string      `json:"evidenceUrl" gorm:"type:text"`
}

func (m Result) TableName() string {
	return "results"
}
