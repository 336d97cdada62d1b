package service

import (
	"errors"

	"github.com/Sudharmabg/taskhive/internal/config"
	"github.com/Sudharmabg/taskhive/internal/email"
	"github.com/Sudharmabg/taskhive/internal/repository"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountNotActive   = errors.New("account not active")
	ErrActiveSprintExists = errors.New("company already has an active sprint")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth      AuthService
	Company   CompanyService
	User      UserService
	Team      TeamService
	Sprint    SprintService
	Story     StoryService
	Dashboard DashboardService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	EmailSvc *email.Service
}

func NewServices(deps *ServiceDeps) *Services {
	storySvc := NewStoryService(deps.Repos.StoryRepo, deps.Repos.SprintRepo, deps.Repos.CompanyRepo, deps.Repos.UserRepo, deps.Repos.SequenceRepo)

	return &Services{
		Auth:      NewAuthService(deps.Config, deps.Repos.UserRepo),
		Company:   NewCompanyService(deps.Repos.CompanyRepo),
		User:      NewUserService(deps.Config, deps.Repos.UserRepo, deps.Repos.CompanyRepo, deps.Repos.TeamRepo, deps.EmailSvc),
		Team:      NewTeamService(deps.Repos.TeamRepo, deps.Repos.CompanyRepo),
		Sprint:    NewSprintService(deps.Repos.SprintRepo, deps.Repos.CompanyRepo, deps.Repos.StoryRepo, deps.Repos.SequenceRepo),
		Story:     storySvc,
		Dashboard: NewDashboardService(deps.Repos.StoryRepo, deps.Repos.SprintRepo),
	}
}
