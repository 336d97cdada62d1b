// internal/service/dashboard_service.go
package service

import (
	"context"

	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/types"
)

type DashboardStats struct {
	TotalStories     int `json:"totalStories"`
	PendingStories   int `json:"pendingStories"`
	InProgressStory  int `json:"inProgressStories"`
	CompletedStories int `json:"completedStories"`
	OverdueStories   int `json:"overdueStories"`
	TotalSprints     int `json:"totalSprints"`
	ActiveSprints    int `json:"activeSprints"`
}

type DashboardService interface {
	Stats(ctx context.Context, companyID string) (*DashboardStats, error)
}

type dashboardService struct {
	storyRepo  repository.StoryRepository
	sprintRepo repository.SprintRepository
}

func NewDashboardService(storyRepo repository.StoryRepository, sprintRepo repository.SprintRepository) DashboardService {
	return &dashboardService{storyRepo: storyRepo, sprintRepo: sprintRepo}
}

func (s *dashboardService) Stats(ctx context.Context, companyID string) (*DashboardStats, error) {
	stories, err := s.storyRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sprints, err := s.sprintRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalStories: len(stories),
		TotalSprints: len(sprints),
	}
	for _, story := range stories {
		switch story.Status {
		case types.StoryPending:
			stats.PendingStories++
		case types.StoryInProgress:
			stats.InProgressStory++
		case types.StoryCompleted:
			stats.CompletedStories++
		case types.StoryOverdue:
			stats.OverdueStories++
		}
	}
	for _, sprint := range sprints {
		if sprint.Status == types.SprintActive {
			stats.ActiveSprints++
		}
	}
	return stats, nil
}
