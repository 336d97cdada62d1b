// internal/service/story_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/types"
)

// sweepBatchSize bounds how many stories a single overdue scan pulls, so the
// sweep never holds one long-running query over the whole table.
const sweepBatchSize = 100

type StoryService interface {
	Create(ctx context.Context, story *repository.Story) error
	Get(ctx context.Context, id string) (*repository.Story, error)
	GetByStoryID(ctx context.Context, storyID string) (*repository.Story, error)
	ListByCompany(ctx context.Context, companyID string) ([]*repository.Story, error)
	ListByType(ctx context.Context, companyID, storyType string) ([]*repository.Story, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*repository.Story, error)
	ListAvailable(ctx context.Context, companyID string) ([]*repository.Story, error)
	Update(ctx context.Context, id string, fields *repository.Story) (*repository.Story, error)
	AddToSprint(ctx context.Context, storyID, sprintID string) (*repository.Story, error)
	RemoveFromSprint(ctx context.Context, storyID string) (*repository.Story, error)
	Delete(ctx context.Context, id string) error

	// MarkOverdue transitions every story past its deadline that is neither
	// Completed nor already Overdue. Returns the number of stories changed.
	MarkOverdue(ctx context.Context) (int, error)
}

type storyService struct {
	storyRepo   repository.StoryRepository
	sprintRepo  repository.SprintRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	seqRepo     repository.SequenceRepository
}

func NewStoryService(
	storyRepo repository.StoryRepository,
	sprintRepo repository.SprintRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	seqRepo repository.SequenceRepository,
) StoryService {
	return &storyService{
		storyRepo:   storyRepo,
		sprintRepo:  sprintRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		seqRepo:     seqRepo,
	}
}

func (s *storyService) Create(ctx context.Context, story *repository.Story) error {
	if story.Title == "" || story.Type == "" {
		return ErrInvalidInput
	}
	if !types.IsValidStoryType(story.Type) {
		return ErrInvalidInput
	}

	// Resolve company, falling back to the default one
	var company *repository.Company
	var err error
	if story.CompanyID != "" {
		company, err = s.companyRepo.FindByID(ctx, story.CompanyID)
	} else {
		company, err = s.companyRepo.FindDefault(ctx)
	}
	if err != nil {
		return err
	}
	if company == nil {
		return ErrNotFound
	}
	story.CompanyID = company.ID

	if story.Status == "" {
		story.Status = types.StoryPending
	} else {
		story.Status = types.NormalizeStoryStatus(story.Status)
	}

	// Creator falls back to the company's admin account when the caller
	// supplied none
	if story.CreatedBy == nil {
		admin, err := s.userRepo.FindAdminByCompanyID(ctx, company.ID)
		if err != nil {
			return err
		}
		if admin != nil {
			story.CreatedBy = &admin.ID
		}
	}

	// Identifier: company code, type initial, then a number from the shared
	// story counter (e.g. "ACM-B0001")
	seq, err := s.seqRepo.Next(ctx, "story")
	if err != nil {
		return err
	}
	story.StoryID = fmt.Sprintf("%s-%s%04d", company.Code, story.Type[:1], seq)

	return s.storyRepo.Create(ctx, story)
}

func (s *storyService) Get(ctx context.Context, id string) (*repository.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrNotFound
	}
	return story, nil
}

func (s *storyService) GetByStoryID(ctx context.Context, storyID string) (*repository.Story, error) {
	story, err := s.storyRepo.FindByStoryID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrNotFound
	}
	return story, nil
}

func (s *storyService) ListByCompany(ctx context.Context, companyID string) ([]*repository.Story, error) {
	return s.storyRepo.FindByCompanyID(ctx, companyID)
}

func (s *storyService) ListByType(ctx context.Context, companyID, storyType string) ([]*repository.Story, error) {
	return s.storyRepo.FindByCompanyAndType(ctx, companyID, storyType)
}

func (s *storyService) ListBySprint(ctx context.Context, sprintID string) ([]*repository.Story, error) {
	return s.storyRepo.FindBySprintID(ctx, sprintID)
}

func (s *storyService) ListAvailable(ctx context.Context, companyID string) ([]*repository.Story, error) {
	return s.storyRepo.FindAvailable(ctx, companyID)
}

// Update overwrites title, description, priority, status, assignee, points,
// progress, deadline and acceptance criteria. Company, type, generated
// identifier and sprint membership are not touched; sprint membership moves
// only through AddToSprint/RemoveFromSprint.
func (s *storyService) Update(ctx context.Context, id string, fields *repository.Story) (*repository.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrNotFound
	}

	if fields.Title == "" {
		return nil, ErrInvalidInput
	}

	story.Title = fields.Title
	story.Description = fields.Description
	story.Priority = fields.Priority
	story.Status = types.NormalizeStoryStatus(fields.Status)
	story.AssigneeID = fields.AssigneeID
	story.AssigneeName = fields.AssigneeName
	story.StoryPoints = fields.StoryPoints
	story.Progress = fields.Progress
	story.Deadline = fields.Deadline
	story.AcceptanceCriteria = fields.AcceptanceCriteria

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *storyService) AddToSprint(ctx context.Context, storyID, sprintID string) (*repository.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrNotFound
	}

	sprint, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}

	if err := s.storyRepo.SetSprint(ctx, story.ID, &sprint.ID); err != nil {
		return nil, err
	}
	story.SprintID = &sprint.ID
	return story, nil
}

func (s *storyService) RemoveFromSprint(ctx context.Context, storyID string) (*repository.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrNotFound
	}

	if err := s.storyRepo.SetSprint(ctx, story.ID, nil); err != nil {
		return nil, err
	}
	story.SprintID = nil
	return story, nil
}

func (s *storyService) Delete(ctx context.Context, id string) error {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if story == nil {
		return ErrNotFound
	}
	return s.storyRepo.Delete(ctx, id)
}

func (s *storyService) MarkOverdue(ctx context.Context) (int, error) {
	today := time.Now().Truncate(24 * time.Hour)
	count := 0

	for {
		batch, err := s.storyRepo.FindOverdueCandidates(ctx, today, sweepBatchSize)
		if err != nil {
			return count, err
		}
		if len(batch) == 0 {
			break
		}

		failed := 0
		for _, story := range batch {
			if err := s.storyRepo.UpdateStatus(ctx, story.ID, types.StoryOverdue); err != nil {
				// One bad record must not abort the sweep
				log.Printf("[Sweep] Failed to mark story %s overdue: %v", story.StoryID, err)
				failed++
				continue
			}
			count++
		}

		// Every candidate in the batch failed to update; stop rather than
		// refetch the same rows forever
		if failed == len(batch) {
			break
		}
		if len(batch) < sweepBatchSize {
			break
		}
	}

	return count, nil
}
