// internal/service/sprint_service.go
package service

import (
	"context"
	"fmt"

	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/types"
)

// SprintWithStories pairs a sprint with the stories assigned to it.
type SprintWithStories struct {
	Sprint  *repository.Sprint
	Stories []*repository.Story
}

type SprintService interface {
	Create(ctx context.Context, sprint *repository.Sprint) error
	Get(ctx context.Context, id string) (*SprintWithStories, error)
	GetBySprintID(ctx context.Context, sprintID string) (*repository.Sprint, error)
	GetCurrent(ctx context.Context, companyID string) (*SprintWithStories, error)
	ListByCompany(ctx context.Context, companyID string) ([]*repository.Sprint, error)
	Update(ctx context.Context, id string, fields *repository.Sprint) (*repository.Sprint, error)
	Close(ctx context.Context, id string) (*repository.Sprint, error)
	Delete(ctx context.Context, id string) error
}

type sprintService struct {
	sprintRepo  repository.SprintRepository
	companyRepo repository.CompanyRepository
	storyRepo   repository.StoryRepository
	seqRepo     repository.SequenceRepository
}

func NewSprintService(
	sprintRepo repository.SprintRepository,
	companyRepo repository.CompanyRepository,
	storyRepo repository.StoryRepository,
	seqRepo repository.SequenceRepository,
) SprintService {
	return &sprintService{
		sprintRepo:  sprintRepo,
		companyRepo: companyRepo,
		storyRepo:   storyRepo,
		seqRepo:     seqRepo,
	}
}

func (s *sprintService) Create(ctx context.Context, sprint *repository.Sprint) error {
	if sprint.Name == "" {
		return ErrInvalidInput
	}

	// Resolve company, falling back to the default one
	var company *repository.Company
	var err error
	if sprint.CompanyID != "" {
		company, err = s.companyRepo.FindByID(ctx, sprint.CompanyID)
	} else {
		company, err = s.companyRepo.FindDefault(ctx)
	}
	if err != nil {
		return err
	}
	if company == nil {
		return ErrNotFound
	}
	sprint.CompanyID = company.ID

	if sprint.Status == "" {
		sprint.Status = types.SprintActive
	}
	if !types.IsValidSprintStatus(sprint.Status) {
		return ErrInvalidInput
	}

	// At most one active sprint per company
	if sprint.Status == types.SprintActive {
		active, err := s.sprintRepo.FindByCompanyAndStatus(ctx, company.ID, types.SprintActive)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrActiveSprintExists
		}
	}

	seq, err := s.seqRepo.Next(ctx, "sprint")
	if err != nil {
		return err
	}
	sprint.SprintID = fmt.Sprintf("SPR-%03d", seq)

	return s.sprintRepo.Create(ctx, sprint)
}

func (s *sprintService) Get(ctx context.Context, id string) (*SprintWithStories, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}

	stories, err := s.storyRepo.FindBySprintID(ctx, sprint.ID)
	if err != nil {
		return nil, err
	}
	return &SprintWithStories{Sprint: sprint, Stories: stories}, nil
}

func (s *sprintService) GetBySprintID(ctx context.Context, sprintID string) (*repository.Sprint, error) {
	sprint, err := s.sprintRepo.FindBySprintID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}
	return sprint, nil
}

// GetCurrent returns the company's active sprint with its stories. Callers
// such as the dashboard treat ErrNotFound as "no active sprint", not a hard
// failure.
func (s *sprintService) GetCurrent(ctx context.Context, companyID string) (*SprintWithStories, error) {
	sprint, err := s.sprintRepo.FindByCompanyAndStatus(ctx, companyID, types.SprintActive)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}

	stories, err := s.storyRepo.FindBySprintID(ctx, sprint.ID)
	if err != nil {
		return nil, err
	}
	return &SprintWithStories{Sprint: sprint, Stories: stories}, nil
}

func (s *sprintService) ListByCompany(ctx context.Context, companyID string) ([]*repository.Sprint, error) {
	return s.sprintRepo.FindByCompanyID(ctx, companyID)
}

// Update overwrites name, description, dates, status and progress. Moving a
// sprint into ACTIVE is refused while the company has another active one.
func (s *sprintService) Update(ctx context.Context, id string, fields *repository.Sprint) (*repository.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}

	if fields.Name == "" {
		return nil, ErrInvalidInput
	}
	if fields.Status != "" && !types.IsValidSprintStatus(fields.Status) {
		return nil, ErrInvalidInput
	}

	if fields.Status == types.SprintActive && sprint.Status != types.SprintActive {
		active, err := s.sprintRepo.FindByCompanyAndStatus(ctx, sprint.CompanyID, types.SprintActive)
		if err != nil {
			return nil, err
		}
		if active != nil && active.ID != sprint.ID {
			return nil, ErrActiveSprintExists
		}
	}

	sprint.Name = fields.Name
	sprint.Description = fields.Description
	sprint.StartDate = fields.StartDate
	sprint.EndDate = fields.EndDate
	if fields.Status != "" {
		sprint.Status = fields.Status
	}
	sprint.Progress = fields.Progress

	if err := s.sprintRepo.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

// Close marks the sprint completed with progress 100 regardless of how many
// of its stories actually finished. Closing is a declaration, not a computed
// aggregate.
func (s *sprintService) Close(ctx context.Context, id string) (*repository.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}

	sprint.Status = types.SprintCompleted
	sprint.Progress = 100

	if err := s.sprintRepo.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

// Delete removes the sprint and releases its stories back to the backlog, so
// no story is left referencing a sprint that no longer exists.
func (s *sprintService) Delete(ctx context.Context, id string) error {
	sprint, err := s.sprintRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sprint == nil {
		return ErrNotFound
	}
	return s.sprintRepo.DeleteWithStories(ctx, id)
}
