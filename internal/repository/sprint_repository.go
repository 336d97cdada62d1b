package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Sprint struct {
	ID          string
	CompanyID   string
	SprintID    string
	Name        string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
	Progress    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SprintRepository interface {
	Create(ctx context.Context, sprint *Sprint) error
	FindByID(ctx context.Context, id string) (*Sprint, error)
	FindBySprintID(ctx context.Context, sprintID string) (*Sprint, error)
	FindByCompanyID(ctx context.Context, companyID string) ([]*Sprint, error)
	FindByCompanyAndStatus(ctx context.Context, companyID, status string) (*Sprint, error)
	Update(ctx context.Context, sprint *Sprint) error
	DeleteWithStories(ctx context.Context, id string) error
}

type pgSprintRepository struct {
	pool *pgxpool.Pool
}

func NewSprintRepository(pool *pgxpool.Pool) SprintRepository {
	return &pgSprintRepository{pool: pool}
}

func (r *pgSprintRepository) Create(ctx context.Context, sprint *Sprint) error {
	if sprint.Status == "" {
		sprint.Status = "ACTIVE"
	}
	query := `
		INSERT INTO sprints (company_id, sprint_id, name, description, start_date, end_date, status, progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		sprint.CompanyID, sprint.SprintID, sprint.Name, sprint.Description,
		sprint.StartDate, sprint.EndDate, sprint.Status, sprint.Progress,
	).Scan(&sprint.ID, &sprint.CreatedAt, &sprint.UpdatedAt)
}

func (r *pgSprintRepository) FindByID(ctx context.Context, id string) (*Sprint, error) {
	query := `
		SELECT id, company_id, sprint_id, name, description, start_date, end_date, status, progress, created_at, updated_at
		FROM sprints WHERE id = $1
	`
	return r.scanSprint(r.pool.QueryRow(ctx, query, id))
}

func (r *pgSprintRepository) FindBySprintID(ctx context.Context, sprintID string) (*Sprint, error) {
	query := `
		SELECT id, company_id, sprint_id, name, description, start_date, end_date, status, progress, created_at, updated_at
		FROM sprints WHERE sprint_id = $1
	`
	return r.scanSprint(r.pool.QueryRow(ctx, query, sprintID))
}

func (r *pgSprintRepository) FindByCompanyID(ctx context.Context, companyID string) ([]*Sprint, error) {
	query := `
		SELECT id, company_id, sprint_id, name, description, start_date, end_date, status, progress, created_at, updated_at
		FROM sprints WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprints []*Sprint
	for rows.Next() {
		sprint := &Sprint{}
		if err := rows.Scan(
			&sprint.ID, &sprint.CompanyID, &sprint.SprintID, &sprint.Name, &sprint.Description,
			&sprint.StartDate, &sprint.EndDate, &sprint.Status, &sprint.Progress,
			&sprint.CreatedAt, &sprint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sprints = append(sprints, sprint)
	}
	return sprints, nil
}

func (r *pgSprintRepository) FindByCompanyAndStatus(ctx context.Context, companyID, status string) (*Sprint, error) {
	query := `
		SELECT id, company_id, sprint_id, name, description, start_date, end_date, status, progress, created_at, updated_at
		FROM sprints WHERE company_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanSprint(r.pool.QueryRow(ctx, query, companyID, status))
}

func (r *pgSprintRepository) Update(ctx context.Context, sprint *Sprint) error {
	query := `
		UPDATE sprints
		SET name = $2, description = $3, start_date = $4, end_date = $5, status = $6, progress = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		sprint.ID, sprint.Name, sprint.Description, sprint.StartDate, sprint.EndDate,
		sprint.Status, sprint.Progress,
	)
	return err
}

// DeleteWithStories releases the sprint's stories before removing the sprint,
// in one transaction. stories.sprint_id carries no foreign key, so the
// cleanup has to be explicit or member stories keep pointing at a sprint that
// no longer exists.
func (r *pgSprintRepository) DeleteWithStories(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE stories SET sprint_id = NULL, updated_at = NOW() WHERE sprint_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sprints WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgSprintRepository) scanSprint(row pgx.Row) (*Sprint, error) {
	sprint := &Sprint{}
	err := row.Scan(
		&sprint.ID, &sprint.CompanyID, &sprint.SprintID, &sprint.Name, &sprint.Description,
		&sprint.StartDate, &sprint.EndDate, &sprint.Status, &sprint.Progress,
		&sprint.CreatedAt, &sprint.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sprint, nil
}
