package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Company struct {
	ID               string
	Name             string
	Code             string
	Domain           *string
	SubscriptionPlan string
	MaxUsers         int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	FindByCode(ctx context.Context, code string) (*Company, error)
	FindDefault(ctx context.Context) (*Company, error)
	FindAll(ctx context.Context) ([]*Company, error)
	Count(ctx context.Context) (int, error)
}

type pgCompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &pgCompanyRepository{pool: pool}
}

func (r *pgCompanyRepository) Create(ctx context.Context, company *Company) error {
	if company.SubscriptionPlan == "" {
		company.SubscriptionPlan = "FREE"
	}
	if company.MaxUsers == 0 {
		company.MaxUsers = 10
	}
	query := `
		INSERT INTO companies (name, code, domain, subscription_plan, max_users)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		company.Name, company.Code, company.Domain, company.SubscriptionPlan, company.MaxUsers,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *pgCompanyRepository) FindByID(ctx context.Context, id string) (*Company, error) {
	query := `
		SELECT id, name, code, domain, subscription_plan, max_users, created_at, updated_at
		FROM companies WHERE id = $1
	`
	company := &Company{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&company.ID, &company.Name, &company.Code, &company.Domain,
		&company.SubscriptionPlan, &company.MaxUsers, &company.CreatedAt, &company.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *pgCompanyRepository) FindByCode(ctx context.Context, code string) (*Company, error) {
	query := `
		SELECT id, name, code, domain, subscription_plan, max_users, created_at, updated_at
		FROM companies WHERE code = $1
	`
	company := &Company{}
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&company.ID, &company.Name, &company.Code, &company.Domain,
		&company.SubscriptionPlan, &company.MaxUsers, &company.CreatedAt, &company.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// FindDefault returns the oldest company. Callers fall back to it when a
// request carries no company id, mirroring the original single-tenant setup.
func (r *pgCompanyRepository) FindDefault(ctx context.Context) (*Company, error) {
	query := `
		SELECT id, name, code, domain, subscription_plan, max_users, created_at, updated_at
		FROM companies ORDER BY created_at LIMIT 1
	`
	company := &Company{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&company.ID, &company.Name, &company.Code, &company.Domain,
		&company.SubscriptionPlan, &company.MaxUsers, &company.CreatedAt, &company.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *pgCompanyRepository) FindAll(ctx context.Context) ([]*Company, error) {
	query := `
		SELECT id, name, code, domain, subscription_plan, max_users, created_at, updated_at
		FROM companies ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		company := &Company{}
		if err := rows.Scan(
			&company.ID, &company.Name, &company.Code, &company.Domain,
			&company.SubscriptionPlan, &company.MaxUsers, &company.CreatedAt, &company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

func (r *pgCompanyRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}
