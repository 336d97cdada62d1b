package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sudharmabg/taskhive/internal/models"
	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth      *AuthHandler
	Company   *CompanyHandler
	User      *UserHandler
	Team      *TeamHandler
	Sprint    *SprintHandler
	Story     *StoryHandler
	Dashboard *DashboardHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:      &AuthHandler{authService: services.Auth},
		Company:   &CompanyHandler{companyService: services.Company},
		User:      &UserHandler{userService: services.User},
		Team:      &TeamHandler{teamService: services.Team},
		Sprint:    &SprintHandler{sprintService: services.Sprint},
		Story:     &StoryHandler{storyService: services.Story},
		Dashboard: &DashboardHandler{dashboardService: services.Dashboard},
	}
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case errors.Is(err, service.ErrActiveSprintExists):
		c.JSON(http.StatusConflict, gin.H{"error": "An active sprint already exists"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrAccountNotActive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is not active"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		EmployeeID:  u.EmployeeID,
		Name:        u.Name,
		Email:       u.Email,
		Designation: u.Designation,
		JobRole:     u.JobRole,
		TeamID:      u.TeamID,
		Role:        u.Role,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}

func toCompanyResponse(co *repository.Company) models.CompanyResponse {
	return models.CompanyResponse{
		ID:               co.ID,
		Name:             co.Name,
		Code:             co.Code,
		Domain:           co.Domain,
		SubscriptionPlan: co.SubscriptionPlan,
		MaxUsers:         co.MaxUsers,
		CreatedAt:        co.CreatedAt,
	}
}

func toTeamResponse(t *repository.Team, members []string) models.TeamResponse {
	return models.TeamResponse{
		ID:          t.ID,
		CompanyID:   t.CompanyID,
		Name:        t.Name,
		Description: t.Description,
		Members:     safeStringSlice(members),
		CreatedAt:   t.CreatedAt,
	}
}

func toSprintResponse(s *repository.Sprint) models.SprintResponse {
	return models.SprintResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		SprintID:    s.SprintID,
		Name:        s.Name,
		Description: s.Description,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Status:      s.Status,
		Progress:    s.Progress,
		CreatedAt:   s.CreatedAt,
	}
}

func toSprintWithStoriesResponse(s *service.SprintWithStories) models.SprintResponse {
	response := toSprintResponse(s.Sprint)
	response.Stories = toStoryResponseList(s.Stories)
	return response
}

func toStoryResponse(s *repository.Story) models.StoryResponse {
	return models.StoryResponse{
		ID:                 s.ID,
		CompanyID:          s.CompanyID,
		StoryID:            s.StoryID,
		Title:              s.Title,
		Description:        s.Description,
		Type:               s.Type,
		Priority:           s.Priority,
		Status:             s.Status,
		AssigneeID:         s.AssigneeID,
		AssigneeName:       s.AssigneeName,
		StoryPoints:        s.StoryPoints,
		Progress:           s.Progress,
		Deadline:           s.Deadline,
		AcceptanceCriteria: s.AcceptanceCriteria,
		SprintID:           s.SprintID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toStoryResponseList(stories []*repository.Story) []models.StoryResponse {
	response := make([]models.StoryResponse, len(stories))
	for i, s := range stories {
		response[i] = toStoryResponse(s)
	}
	return response
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
