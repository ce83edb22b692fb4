package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suite groups cases under a project. It cannot outlive its project and
// cannot be moved to another project after creation.
type Suite struct {
	Model
	ProjectID   uuid.UUID `json:"projectId" gorm:"type:uuid;not null;index"`
	Project     Project   `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`

	Cases []Case `json:"cases,omitempty" gorm:"foreignKey:SuiteID;constraint:OnDelete:CASCADE;"`

	DeletedAt gorm.DeletedAt `json:"archivedAt"`
}

func (m Suite) TableName() string {
	return "suites"
}
