package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudharmabg/taskhive/internal/repository"
)

func newSprintFixture(t *testing.T) (SprintService, *fakeStoryRepo, *repository.Company) {
	t.Helper()

	companyRepo := newFakeCompanyRepo()
	company := &repository.Company{Name: "Acme Corp", Code: "ACM"}
	require.NoError(t, companyRepo.Create(context.Background(), company))

	storyRepo := newFakeStoryRepo()
	svc := NewSprintService(newFakeSprintRepo(storyRepo), companyRepo, storyRepo, newFakeSequenceRepo())
	return svc, storyRepo, company
}

func TestSprintCreateGeneratesIdentifier(t *testing.T) {
	svc, _, company := newSprintFixture(t)
	ctx := context.Background()

	sprint := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, sprint))
	assert.Equal(t, "SPR-001", sprint.SprintID)
	assert.Equal(t, "ACTIVE", sprint.Status)
}

func TestSprintCreateEnforcesSingleActive(t *testing.T) {
	svc, _, company := newSprintFixture(t)
	ctx := context.Background()

	first := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, first))

	second := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 2"}
	err := svc.Create(ctx, second)
	assert.ErrorIs(t, err, ErrActiveSprintExists)

	// A non-active sprint is still allowed alongside
	planned := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 2", Status: "PLANNING"}
	require.NoError(t, svc.Create(ctx, planned))
	assert.Equal(t, "SPR-002", planned.SprintID)
}

func TestSprintUpdateRefusesSecondActive(t *testing.T) {
	svc, _, company := newSprintFixture(t)
	ctx := context.Background()

	active := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, active))

	planned := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 2", Status: "PLANNING"}
	require.NoError(t, svc.Create(ctx, planned))

	_, err := svc.Update(ctx, planned.ID, &repository.Sprint{Name: "Sprint 2", Status: "ACTIVE"})
	assert.ErrorIs(t, err, ErrActiveSprintExists)
}

func TestSprintClose(t *testing.T) {
	svc, _, company := newSprintFixture(t)
	ctx := context.Background()

	sprint := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, sprint))

	_, err := svc.Update(ctx, sprint.ID, &repository.Sprint{Name: "Sprint 1", Status: "ACTIVE", Progress: 40})
	require.NoError(t, err)

	closed, err := svc.Close(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", closed.Status)
	assert.Equal(t, 100, closed.Progress)

	// Closing frees the active slot
	next := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 2"}
	require.NoError(t, svc.Create(ctx, next))
}

func TestSprintGetCurrent(t *testing.T) {
	svc, storyRepo, company := newSprintFixture(t)
	ctx := context.Background()

	_, err := svc.GetCurrent(ctx, company.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	sprint := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, sprint))

	story := &repository.Story{CompanyID: company.ID, StoryID: "ACM-T0001", Title: "x", Type: "Task", SprintID: &sprint.ID}
	require.NoError(t, storyRepo.Create(ctx, story))

	current, err := svc.GetCurrent(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, sprint.ID, current.Sprint.ID)
	assert.Len(t, current.Stories, 1)
}

func TestSprintDeleteReleasesStories(t *testing.T) {
	svc, storyRepo, company := newSprintFixture(t)
	ctx := context.Background()

	sprint := &repository.Sprint{CompanyID: company.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, sprint))

	story := &repository.Story{CompanyID: company.ID, StoryID: "ACM-T0001", Title: "x", Type: "Task", SprintID: &sprint.ID}
	require.NoError(t, storyRepo.Create(ctx, story))

	require.NoError(t, svc.Delete(ctx, sprint.ID))

	_, err := svc.Get(ctx, sprint.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The story survives, back in the backlog rather than pointing at a
	// deleted sprint
	released := storyRepo.stories[story.ID]
	require.NotNil(t, released)
	assert.Nil(t, released.SprintID)
}

func TestSprintGetUnknown(t *testing.T) {
	svc, _, _ := newSprintFixture(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
