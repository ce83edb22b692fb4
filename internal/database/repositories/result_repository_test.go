package repositories_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testboard-dev/testboard/internal/database/models"
	"github.com/testboard-dev/testboard/internal/database/repositories"
	"github.com/testboard-dev/testboard/internal/testutils"
)

func TestSummary(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewResultRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")
	suite := seedSuite(t, db, project, "smoke")

	now := time.Now()
	run := seedRun(t, db, project, user, now)
	seedResult(t, db, run.ID, seedCase(t, db, suite, "a").ID, models.ResultStatusPass, 100, now)
	seedResult(t, db, run.ID, seedCase(t, db, suite, "b").ID, models.ResultStatusPass, 200, now)
	seedResult(t, db, run.ID, seedCase(t, db, suite, "c").ID, models.ResultStatusFail, 300, now)
	seedResult(t, db, run.ID, seedCase(t, db, suite, "d").ID, models.ResultStatusSkip, 0, now)

	// results of another run must not leak into the summary
	other := seedRun(t, db, project, user, now)
	seedResult(t, db, other.ID, seedCase(t, db, suite, "e").ID, models.ResultStatusError, 999, now)

	summary, err := repository.Summary(run.ID)
	assert.Nil(t, err)
	assert.Equal(t, models.RunSummary{
		Total:           4,
		Pass:            2,
		Fail:            1,
		Skip:            1,
		Error:           0,
		DurationTotalMS: 600,
	}, summary)
}

func TestSummaryOfEmptyRun(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewResultRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")
	run := seedRun(t, db, project, user, time.Now())

	summary, err := repository.Summary(run.ID)
	assert.Nil(t, err)
	assert.Equal(t, models.RunSummary{}, summary)
}

func TestSummariesForRuns(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewResultRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")
	suite := seedSuite(t, db, project, "smoke")

	now := time.Now()
	runA := seedRun(t, db, project, user, now)
	runB := seedRun(t, db, project, user, now)
	empty := seedRun(t, db, project, user, now)

	seedResult(t, db, runA.ID, seedCase(t, db, suite, "a").ID, models.ResultStatusPass, 50, now)
	seedResult(t, db, runA.ID, seedCase(t, db, suite, "b").ID, models.ResultStatusFail, 70, now)
	seedResult(t, db, runB.ID, seedCase(t, db, suite, "c").ID, models.ResultStatusError, 10, now)

	summaries, err := repository.SummariesForRuns([]uuid.UUID{runA.ID, runB.ID, empty.ID})
	assert.Nil(t, err)

	assert.Equal(t, models.RunSummary{Total: 2, Pass: 1, Fail: 1, DurationTotalMS: 120}, summaries[runA.ID])
	assert.Equal(t, models.RunSummary{Total: 1, Error: 1, DurationTotalMS: 10}, summaries[runB.ID])
	// a run without results simply has no row - the zero value is the
	// correct summary
	_, ok := summaries[empty.ID]
	assert.False(t, ok)
}

func TestSummariesForRunsEmptyInput(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewResultRepository(db)

	summaries, err := repository.SummariesForRuns(nil)
	assert.Nil(t, err)
	assert.Empty(t, summaries)
}

func TestCaseIDsForRun(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewResultRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")
	suite := seedSuite(t, db, project, "smoke")

	now := time.Now()
	run := seedRun(t, db, project, user, now)
	recordedCase := seedCase(t, db, suite, "recorded")
	openCase := seedCase(t, db, suite, "open")
	seedResult(t, db, run.ID, recordedCase.ID, models.ResultStatusPass, 1, now)

	caseIDs, err := repository.CaseIDsForRun(run.ID)
	assert.Nil(t, err)
	assert.Contains(t, caseIDs, recordedCase.ID)
	assert.NotContains(t, caseIDs, openCase.ID)
}
