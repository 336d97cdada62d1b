package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	CompanyRepo  CompanyRepository
	UserRepo     UserRepository
	TeamRepo     TeamRepository
	SprintRepo   SprintRepository
	StoryRepo    StoryRepository
	SequenceRepo SequenceRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		CompanyRepo:  NewCompanyRepository(pool),
		UserRepo:     NewUserRepository(pool),
		TeamRepo:     NewTeamRepository(pool),
		SprintRepo:   NewSprintRepository(pool),
		StoryRepo:    NewStoryRepository(pool),
		SequenceRepo: NewSequenceRepository(pool),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate email, company name/code, employee id).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
