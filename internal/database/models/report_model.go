package models

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary is the aggregate over all results of one run.
type RunSummary struct {
	Total           int64 `json:"total"`
	Pass            int64 `json:"pass"`
	Fail            int64 `json:"fail"`
	Skip            int64 `json:"skip"`
	Error           int64 `json:"error"`
	DurationTotalMS int64 `json:"durationTotalMs" gorm:"column:duration_total_ms"`
}

// CaseHistoryEntry is one data point in the per-case run history,
// enough for a caller to compute flakiness over time.
type CaseHistoryEntry struct {
	RunID      uuid.UUID    `json:"runId"`
	Status     ResultStatus `json:"status"`
	DurationMS int64        `json:"durationMs" gorm:"column:duration_ms"`
	RecordedAt time.Time    `json:"recordedAt"`
}

// CaseDetail is a case with its fully populated ancestry. Built by an
// explicit join, nothing is lazily loaded.
type CaseDetail struct {
	Case    Case    `json:"case"`
	Suite   Suite   `json:"suite"`
	Project Project `json:"project"`
}
