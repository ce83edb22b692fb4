package testcase

import (
	"github.com/testboard-dev/testboard/internal/database/models"
)

type createRequest struct {
	Title    string `json:"title" validate:"required"`
	Steps    string `json:"steps"`
	Expected string `json:"expected"`
}

func (r *createRequest) toModel() models.Case {
	return models.Case{
		Title:    r.Title,
		Steps:    r.Steps,
		Expected: r.Expected,
	}
}

type patchRequest struct {
	Title    *string `json:"title"`
	Steps    *string `json:"steps"`
	Expected *string `json:"expected"`
}

// the suite reference is not patchable - cases stay in the suite they
// were created under.
func (r *patchRequest) applyToModel(testCase *models.Case) bool {
	updated := false
	if r.Title != nil {
		testCase.Title = *r.Title
		updated = true
	}
	if r.Steps != nil {
		testCase.Steps = *r.Steps
		updated = true
	}
	if r.Expected != nil {
		testCase.Expected = *r.Expected
		updated = true
	}
	return updated
}
