package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudharmabg/taskhive/internal/repository"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	storyRepo := newFakeStoryRepo()
	sprintRepo := newFakeSprintRepo(storyRepo)
	svc := NewDashboardService(storyRepo, sprintRepo)

	companyID := "co-dash"
	for _, status := range []string{"Pending", "Pending", "In Progress", "Completed", "Overdue"} {
		require.NoError(t, storyRepo.Create(ctx, &repository.Story{
			CompanyID: companyID,
			Title:     "s",
			Type:      "Task",
			Status:    status,
		}))
	}
	require.NoError(t, sprintRepo.Create(ctx, &repository.Sprint{CompanyID: companyID, Name: "S1", Status: "ACTIVE"}))
	require.NoError(t, sprintRepo.Create(ctx, &repository.Sprint{CompanyID: companyID, Name: "S2", Status: "COMPLETED"}))

	// Another company's data must not leak in
	require.NoError(t, storyRepo.Create(ctx, &repository.Story{CompanyID: "other", Title: "s", Type: "Task"}))

	stats, err := svc.Stats(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalStories)
	assert.Equal(t, 2, stats.PendingStories)
	assert.Equal(t, 1, stats.InProgressStory)
	assert.Equal(t, 1, stats.CompletedStories)
	assert.Equal(t, 1, stats.OverdueStories)
	assert.Equal(t, 2, stats.TotalSprints)
	assert.Equal(t, 1, stats.ActiveSprints)
}
