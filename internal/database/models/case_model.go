package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case is a single reproducible test scenario.
type Case struct {
	Model
	SuiteID  uuid.UUID `json:"suiteId" gorm:"type:uuid;not null;index"`
	Suite    Suite     `json:"-" gorm:"foreignKey:SuiteID;constraint:OnDelete:CASCADE;"`
	Title    string    `json:"title" gorm:"type:text;not null"`
	Steps    string    `json:"steps" gorm:"type:text"`
	Expected string    `json:"expected" gorm:"type:text"`

	DeletedAt gorm.DeletedAt `json:"archivedAt"`
}

func (m Case) TableName() string {
	return "cases"
}
