package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Story struct {
	ID                 string
	CompanyID          string
	StoryID            string
	Title              string
	Description        *string
	Type               string
	Priority           *string
	Status             string
	AssigneeID         *string
	AssigneeName       *string
	StoryPoints        *int
	Progress           int
	Deadline           *time.Time
	AcceptanceCriteria *string
	SprintID           *string
	CreatedBy          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const storyColumns = `id, company_id, story_id, title, description, type, priority, status,
		       assignee_id, assignee_name, story_points, progress, deadline,
		       acceptance_criteria, sprint_id, created_by, created_at, updated_at`

type StoryRepository interface {
	Create(ctx context.Context, story *Story) error
	FindByID(ctx context.Context, id string) (*Story, error)
	FindByStoryID(ctx context.Context, storyID string) (*Story, error)
	FindByCompanyID(ctx context.Context, companyID string) ([]*Story, error)
	FindByCompanyAndType(ctx context.Context, companyID, storyType string) ([]*Story, error)
	FindBySprintID(ctx context.Context, sprintID string) ([]*Story, error)
	FindAvailable(ctx context.Context, companyID string) ([]*Story, error)
	FindOverdueCandidates(ctx context.Context, before time.Time, limit int) ([]*Story, error)
	Update(ctx context.Context, story *Story) error
	SetSprint(ctx context.Context, id string, sprintID *string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type pgStoryRepository struct {
	pool *pgxpool.Pool
}

func NewStoryRepository(pool *pgxpool.Pool) StoryRepository {
	return &pgStoryRepository{pool: pool}
}

func (r *pgStoryRepository) Create(ctx context.Context, story *Story) error {
	if story.Status == "" {
		story.Status = "Pending"
	}
	query := `
		INSERT INTO stories (company_id, story_id, title, description, type, priority, status,
		                     assignee_id, assignee_name, story_points, progress, deadline,
		                     acceptance_criteria, sprint_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		story.CompanyID, story.StoryID, story.Title, story.Description, story.Type,
		story.Priority, story.Status, story.AssigneeID, story.AssigneeName,
		story.StoryPoints, story.Progress, story.Deadline, story.AcceptanceCriteria,
		story.SprintID, story.CreatedBy,
	).Scan(&story.ID, &story.CreatedAt, &story.UpdatedAt)
}

func (r *pgStoryRepository) FindByID(ctx context.Context, id string) (*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`
	return scanStory(r.pool.QueryRow(ctx, query, id))
}

func (r *pgStoryRepository) FindByStoryID(ctx context.Context, storyID string) (*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE story_id = $1`
	return scanStory(r.pool.QueryRow(ctx, query, storyID))
}

func (r *pgStoryRepository) FindByCompanyID(ctx context.Context, companyID string) ([]*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE company_id = $1 ORDER BY created_at DESC`
	return r.queryStories(ctx, query, companyID)
}

func (r *pgStoryRepository) FindByCompanyAndType(ctx context.Context, companyID, storyType string) ([]*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE company_id = $1 AND type = $2 ORDER BY created_at DESC`
	return r.queryStories(ctx, query, companyID, storyType)
}

func (r *pgStoryRepository) FindBySprintID(ctx context.Context, sprintID string) ([]*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE sprint_id = $1 ORDER BY created_at`
	return r.queryStories(ctx, query, sprintID)
}

// FindAvailable returns the company's stories not assigned to any sprint.
func (r *pgStoryRepository) FindAvailable(ctx context.Context, companyID string) ([]*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE company_id = $1 AND sprint_id IS NULL ORDER BY created_at DESC`
	return r.queryStories(ctx, query, companyID)
}

// FindOverdueCandidates returns up to limit stories whose deadline lies
// strictly before the given date and whose status is neither Completed nor
// Overdue. The sweeper calls this in a loop; updated rows drop out of the
// filter, so repeated calls walk the whole candidate set without an offset.
func (r *pgStoryRepository) FindOverdueCandidates(ctx context.Context, before time.Time, limit int) ([]*Story, error) {
	query := `SELECT ` + storyColumns + `
		FROM stories
		WHERE deadline IS NOT NULL AND deadline < $1
		  AND status NOT IN ('Completed', 'Overdue')
		ORDER BY deadline
		LIMIT $2`
	return r.queryStories(ctx, query, before, limit)
}

func (r *pgStoryRepository) Update(ctx context.Context, story *Story) error {
	query := `
		UPDATE stories
		SET title = $2, description = $3, priority = $4, status = $5,
		    assignee_id = $6, assignee_name = $7, story_points = $8, progress = $9,
		    deadline = $10, acceptance_criteria = $11, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		story.ID, story.Title, story.Description, story.Priority, story.Status,
		story.AssigneeID, story.AssigneeName, story.StoryPoints, story.Progress,
		story.Deadline, story.AcceptanceCriteria,
	)
	return err
}

func (r *pgStoryRepository) SetSprint(ctx context.Context, id string, sprintID *string) error {
	query := `UPDATE stories SET sprint_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, sprintID)
	return err
}

func (r *pgStoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE stories SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}

func (r *pgStoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	return err
}

func scanStory(row pgx.Row) (*Story, error) {
	story := &Story{}
	err := row.Scan(
		&story.ID, &story.CompanyID, &story.StoryID, &story.Title, &story.Description,
		&story.Type, &story.Priority, &story.Status, &story.AssigneeID, &story.AssigneeName,
		&story.StoryPoints, &story.Progress, &story.Deadline, &story.AcceptanceCriteria,
		&story.SprintID, &story.CreatedBy, &story.CreatedAt, &story.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return story, nil
}

func (r *pgStoryRepository) queryStories(ctx context.Context, query string, args ...interface{}) ([]*Story, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*Story
	for rows.Next() {
		story := &Story{}
		if err := rows.Scan(
			&story.ID, &story.CompanyID, &story.StoryID, &story.Title, &story.Description,
			&story.Type, &story.Priority, &story.Status, &story.AssigneeID, &story.AssigneeName,
			&story.StoryPoints, &story.Progress, &story.Deadline, &story.AcceptanceCriteria,
			&story.SprintID, &story.CreatedBy, &story.CreatedAt, &story.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, nil
}
