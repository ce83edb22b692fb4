package suite

import (
	"github.com/testboard-dev/testboard/internal/database/models"
)

type createRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (s *createRequest) toModel() models.Suite {
	return models.Suite{
		Name:        s.Name,
		Description: s.Description,
	}
}

type patchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// the project reference is deliberately not patchable - a suite cannot
// move to another project.
func (s *patchRequest) applyToModel(suite *models.Suite) bool {
	updated := false
	if s.Name != nil {
		suite.Name = *s.Name
		updated = true
	}
	if s.Description != nil {
		suite.Description = *s.Description
		updated = true
	}
	return updated
}

type suiteDetailsDTO struct {
	models.Suite
	Cases []models.Case `json:"cases"`
}
