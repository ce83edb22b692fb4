package models

import (
	"github.com/google/uuid"
)

// Run is one execution pass over some subset of cases for a project.
// Runs are append-only: there is no update path, results only get added.
type Run struct {
	Model
	ProjectID     uuid.UUID `json:"projectId" gorm:"type:uuid;not null;index"`
	Project       Project   `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	CreatedByID   uuid.UUID `json:"createdById" gorm:"type:uuid;not null"`
	CreatedBy     User      `json:"-" gorm:"foreignKey:CreatedByID"`
	TriggeredByCI bool      `json:"triggeredByCi" gorm:"not null;default:false"`

	Results []Result `json:"-" gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE;"`
}

func (m Run) TableName() string {
	return "runs"
}
