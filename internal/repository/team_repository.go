package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Team holds no member collection of its own; users carry the team id as a
// loose back-reference, so every destructive team operation has to clear that
// reference itself.
type Team struct {
	ID          string
	CompanyID   string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	FindByID(ctx context.Context, id string) (*Team, error)
	FindByCompanyID(ctx context.Context, companyID string) ([]*Team, error)
	FindByCompanyAndName(ctx context.Context, companyID, name string) (*Team, error)
	FindMemberNames(ctx context.Context, teamID string) ([]string, error)
	Update(ctx context.Context, team *Team) error

	// ReplaceMembers clears the team reference on every current member and
	// reassigns it to the users matching the given names within the team's
	// company, all inside a single transaction. Returns matched and
	// unmatched names.
	ReplaceMembers(ctx context.Context, team *Team, names []string) ([]string, []string, error)

	// DeleteWithMembers clears the team reference on all members and deletes
	// the team record in a single transaction.
	DeleteWithMembers(ctx context.Context, id string) error
}

type pgTeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &pgTeamRepository{pool: pool}
}

func (r *pgTeamRepository) Create(ctx context.Context, team *Team) error {
	query := `
		INSERT INTO teams (company_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		team.CompanyID, team.Name, team.Description,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

func (r *pgTeamRepository) FindByID(ctx context.Context, id string) (*Team, error) {
	query := `
		SELECT id, company_id, name, description, created_at, updated_at
		FROM teams WHERE id = $1
	`
	team := &Team{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID, &team.CompanyID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *pgTeamRepository) FindByCompanyID(ctx context.Context, companyID string) ([]*Team, error) {
	query := `
		SELECT id, company_id, name, description, created_at, updated_at
		FROM teams WHERE company_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		team := &Team{}
		if err := rows.Scan(
			&team.ID, &team.CompanyID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *pgTeamRepository) FindByCompanyAndName(ctx context.Context, companyID, name string) (*Team, error) {
	query := `
		SELECT id, company_id, name, description, created_at, updated_at
		FROM teams WHERE company_id = $1 AND name = $2
		LIMIT 1
	`
	team := &Team{}
	err := r.pool.QueryRow(ctx, query, companyID, name).Scan(
		&team.ID, &team.CompanyID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *pgTeamRepository) FindMemberNames(ctx context.Context, teamID string) ([]string, error) {
	query := `SELECT name FROM users WHERE team_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (r *pgTeamRepository) Update(ctx context.Context, team *Team) error {
	query := `
		UPDATE teams SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, team.ID, team.Name, team.Description)
	return err
}

func (r *pgTeamRepository) ReplaceMembers(ctx context.Context, team *Team, names []string) ([]string, []string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE users SET team_id = NULL, updated_at = NOW() WHERE team_id = $1`, team.ID); err != nil {
		return nil, nil, err
	}

	var matched, unmatched []string
	for _, name := range names {
		var userID string
		err := tx.QueryRow(ctx,
			`SELECT id FROM users WHERE company_id = $1 AND name = $2 LIMIT 1`,
			team.CompanyID, name,
		).Scan(&userID)
		if err == pgx.ErrNoRows {
			unmatched = append(unmatched, name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET team_id = $2, updated_at = NOW() WHERE id = $1`,
			userID, team.ID,
		); err != nil {
			return nil, nil, err
		}
		matched = append(matched, name)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return matched, unmatched, nil
}

func (r *pgTeamRepository) DeleteWithMembers(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE users SET team_id = NULL, updated_at = NOW() WHERE team_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
