// internal/service/team_service.go
package service

import (
	"context"

	"github.com/Sudharmabg/taskhive/internal/repository"
)

// TeamWithMembers pairs a team with its resolved member names.
type TeamWithMembers struct {
	Team    *repository.Team
	Members []string
}

// MemberResolution reports how a replace-members request resolved: which
// names were assigned and which matched no user in the team's company.
type MemberResolution struct {
	Matched   []string
	Unmatched []string
}

type TeamService interface {
	Create(ctx context.Context, team *repository.Team) error
	Get(ctx context.Context, id string) (*repository.Team, error)
	ListByCompany(ctx context.Context, companyID string) ([]*TeamWithMembers, error)
	Update(ctx context.Context, id string, fields *repository.Team) (*repository.Team, error)
	ReplaceMembers(ctx context.Context, id string, names []string) (*MemberResolution, error)
	Delete(ctx context.Context, id string) error
}

type teamService struct {
	teamRepo    repository.TeamRepository
	companyRepo repository.CompanyRepository
}

func NewTeamService(teamRepo repository.TeamRepository, companyRepo repository.CompanyRepository) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		companyRepo: companyRepo,
	}
}

func (s *teamService) Create(ctx context.Context, team *repository.Team) error {
	if team.Name == "" {
		return ErrInvalidInput
	}

	company, err := s.companyRepo.FindByID(ctx, team.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrNotFound
	}

	return s.teamRepo.Create(ctx, team)
}

func (s *teamService) Get(ctx context.Context, id string) (*repository.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}
	return team, nil
}

func (s *teamService) ListByCompany(ctx context.Context, companyID string) ([]*TeamWithMembers, error) {
	teams, err := s.teamRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]*TeamWithMembers, 0, len(teams))
	for _, team := range teams {
		names, err := s.teamRepo.FindMemberNames(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &TeamWithMembers{Team: team, Members: names})
	}
	return result, nil
}

// Update changes the team's own fields only; membership is untouched.
func (s *teamService) Update(ctx context.Context, id string, fields *repository.Team) (*repository.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}
	if fields.Name == "" {
		return nil, ErrInvalidInput
	}

	team.Name = fields.Name
	team.Description = fields.Description

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) ReplaceMembers(ctx context.Context, id string, names []string) (*MemberResolution, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	matched, unmatched, err := s.teamRepo.ReplaceMembers(ctx, team, names)
	if err != nil {
		return nil, err
	}
	return &MemberResolution{Matched: matched, Unmatched: unmatched}, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}
	return s.teamRepo.DeleteWithMembers(ctx, id)
}
