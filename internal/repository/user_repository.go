package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID                   string
	CompanyID            string
	EmployeeID           string
	Name                 string
	Email                string
	Password             string
	Designation          *string
	JobRole              *string
	TeamID               *string
	Role                 string
	Status               string
	PasswordResetToken   *string
	PasswordResetExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByCompanyID(ctx context.Context, companyID string) ([]*User, error)
	FindByCompanyAndName(ctx context.Context, companyID, name string) (*User, error)
	FindByTeamID(ctx context.Context, teamID string) ([]*User, error)
	FindAdminByCompanyID(ctx context.Context, companyID string) (*User, error)
	FindByPasswordResetToken(ctx context.Context, token string) (*User, error)
	CountByCompanyID(ctx context.Context, companyID string) (int, error)
	Update(ctx context.Context, user *User) error
	SetPassword(ctx context.Context, id, passwordHash, status string) error
	SetPasswordResetToken(ctx context.Context, id string, token *string, expires *time.Time) error
	Delete(ctx context.Context, id string) error
}

const userColumns = `id, company_id, employee_id, name, email, password, designation, job_role,
		       team_id, role, status, password_reset_token, password_reset_expires, created_at, updated_at`

type pgUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.CompanyID, &user.EmployeeID, &user.Name, &user.Email, &user.Password,
		&user.Designation, &user.JobRole, &user.TeamID, &user.Role, &user.Status,
		&user.PasswordResetToken, &user.PasswordResetExpires, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (company_id, employee_id, name, email, password, designation, job_role,
		                   team_id, role, status, password_reset_token, password_reset_expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	if user.Role == "" {
		user.Role = "USER"
	}
	if user.Status == "" {
		user.Status = "PENDING"
	}
	return r.pool.QueryRow(ctx, query,
		user.CompanyID, user.EmployeeID, user.Name, user.Email, user.Password,
		user.Designation, user.JobRole, user.TeamID, user.Role, user.Status,
		user.PasswordResetToken, user.PasswordResetExpires,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *pgUserRepository) FindByCompanyID(ctx context.Context, companyID string) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY name`
	return r.queryUsers(ctx, query, companyID)
}

func (r *pgUserRepository) FindByCompanyAndName(ctx context.Context, companyID, name string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND name = $2 LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, query, companyID, name))
}

func (r *pgUserRepository) FindByTeamID(ctx context.Context, teamID string) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE team_id = $1 ORDER BY name`
	return r.queryUsers(ctx, query, teamID)
}

// FindAdminByCompanyID returns the company's oldest admin account, the one
// created by the seeder.
func (r *pgUserRepository) FindAdminByCompanyID(ctx context.Context, companyID string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND role = 'ADMIN' ORDER BY created_at LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, query, companyID))
}

func (r *pgUserRepository) FindByPasswordResetToken(ctx context.Context, token string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE password_reset_token = $1`
	return scanUser(r.pool.QueryRow(ctx, query, token))
}

func (r *pgUserRepository) CountByCompanyID(ctx context.Context, companyID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}

func (r *pgUserRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, designation = $4, job_role = $5, team_id = $6,
		    role = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Designation, user.JobRole,
		user.TeamID, user.Role, user.Status,
	)
	return err
}

// SetPassword stores a new password hash, moves the user to the given status
// and clears any outstanding setup token in one statement.
func (r *pgUserRepository) SetPassword(ctx context.Context, id, passwordHash, status string) error {
	query := `
		UPDATE users
		SET password = $2, status = $3, password_reset_token = NULL,
		    password_reset_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, passwordHash, status)
	return err
}

func (r *pgUserRepository) SetPasswordResetToken(ctx context.Context, id string, token *string, expires *time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, token, expires)
	return err
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *pgUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID, &user.CompanyID, &user.EmployeeID, &user.Name, &user.Email, &user.Password,
			&user.Designation, &user.JobRole, &user.TeamID, &user.Role, &user.Status,
			&user.PasswordResetToken, &user.PasswordResetExpires, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
