package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/testboard-dev/testboard/internal/database/models"
	"github.com/testboard-dev/testboard/internal/database/repositories"
	"github.com/testboard-dev/testboard/internal/testutils"
)

func TestReadBySlug(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewProjectRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")

	found, err := repository.ReadBySlug("demo")
	assert.Nil(t, err)
	assert.Equal(t, project.ID, found.ID)

	_, err = repository.ReadBySlug("nope")
	assert.NotNil(t, err)
}

func TestArchiveHidesProjectButKeepsRows(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewProjectRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")
	seedProject(t, db, user, "kept")

	assert.Nil(t, repository.Delete(nil, project.ID))

	_, err := repository.ReadBySlug("demo")
	assert.NotNil(t, err)

	all, err := repository.All()
	assert.Nil(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "kept", all[0].Slug)

	// archived, not gone
	var count int64
	assert.Nil(t, db.Unscoped().Model(&models.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHardDeleteCascades(t *testing.T) {
	db := testutils.InMemoryDB(t)
	repository := repositories.NewProjectRepository(db)

	user := seedUser(t, db, "qa@test.com")
	project := seedProject(t, db, user, "demo")
	suite := seedSuite(t, db, project, "smoke")
	testCase := seedCase(t, db, suite, "login works")

	now := time.Now()
	run := seedRun(t, db, project, user, now)
	seedResult(t, db, run.ID, testCase.ID, models.ResultStatusPass, 10, now)

	// an untouched sibling project
	keptProject := seedProject(t, db, user, "kept")
	keptSuite := seedSuite(t, db, keptProject, "smoke")
	seedCase(t, db, keptSuite, "still here")

	assert.Nil(t, repository.HardDelete(project.ID))

	for table, expected := range map[string]int64{
		"projects": 1,
		"suites":   1,
		"cases":    1,
		"runs":     0,
		"results":  0,
	} {
		var count int64
		assert.Nil(t, db.Table(table).Count(&count).Error)
		assert.Equal(t, expected, count, "unexpected row count in %s", table)
	}
}
