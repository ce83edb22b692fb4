package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	Model
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:text;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedByID uuid.UUID `json:"createdById" gorm:"type:uuid;not null"`
	CreatedBy   User      `json:"-" gorm:"foreignKey:CreatedByID"`

	Suites []Suite `json:"suites,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	Runs   []Run   `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`

	// archive instead of delete - run history stays queryable
	DeletedAt gorm.DeletedAt `json:"archivedAt"`
}

func (m Project) TableName() string {
	return "projects"
}

func (m *Project) GetSlug() string {
	return m.Slug
}
