// internal/service/user_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sudharmabg/taskhive/internal/config"
	"github.com/Sudharmabg/taskhive/internal/email"
	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/types"
)

type UserService interface {
	Create(ctx context.Context, user *repository.User, teamName string) (*repository.User, error)
	Get(ctx context.Context, id string) (*repository.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*repository.User, error)
	Update(ctx context.Context, id string, fields *repository.User) (*repository.User, error)
	Delete(ctx context.Context, id string) error

	// IssueSetupToken replaces the user's password-setup token with a fresh
	// one and resends the setup email when SMTP is configured.
	IssueSetupToken(ctx context.Context, id string) (string, error)
}

type userService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	teamRepo    repository.TeamRepository
	emailSvc    *email.Service
}

func NewUserService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	teamRepo repository.TeamRepository,
	emailSvc *email.Service,
) UserService {
	return &userService{
		cfg:         cfg,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		teamRepo:    teamRepo,
		emailSvc:    emailSvc,
	}
}

func (s *userService) Create(ctx context.Context, user *repository.User, teamName string) (*repository.User, error) {
	if user.Name == "" || user.Email == "" || user.EmployeeID == "" {
		return nil, ErrInvalidInput
	}

	// Resolve company, falling back to the default one
	var company *repository.Company
	var err error
	if user.CompanyID != "" {
		company, err = s.companyRepo.FindByID(ctx, user.CompanyID)
	} else {
		company, err = s.companyRepo.FindDefault(ctx)
	}
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	user.CompanyID = company.ID

	if user.JobRole != nil && *user.JobRole != "" {
		role, ok := types.ParseJobRole(*user.JobRole)
		if !ok {
			return nil, ErrInvalidInput
		}
		user.JobRole = &role
	}

	// Resolve team by name within the company; unknown names leave the user
	// without a team, as the original did
	if teamName != "" {
		team, err := s.teamRepo.FindByCompanyAndName(ctx, company.ID, teamName)
		if err != nil {
			return nil, err
		}
		if team != nil {
			user.TeamID = &team.ID
		}
	}

	if user.Role == "" {
		user.Role = types.RoleUser
	}

	var setupToken string
	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
		if user.Status == "" {
			user.Status = types.UserActive
		}
	} else {
		// No credential yet: store an unguessable placeholder and issue a
		// one-time setup token so the user activates themselves
		placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(placeholder)
		user.Status = types.UserPending

		setupToken = uuid.New().String()
		expires := time.Now().Add(24 * time.Hour)
		user.PasswordResetToken = &setupToken
		user.PasswordResetExpires = &expires
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if setupToken != "" && s.emailSvc != nil {
		setupURL := s.cfg.FrontendURL + "/setup-password?token=" + setupToken
		if err := s.emailSvc.SendPasswordSetup(user.Email, user.Name, setupURL); err != nil {
			log.Printf("[User] Failed to send setup email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) ListByCompany(ctx context.Context, companyID string) ([]*repository.User, error) {
	return s.userRepo.FindByCompanyID(ctx, companyID)
}

// Update overwrites the mutable fields: name, email, designation, job role and
// team reference. Company, role, status and credentials are not touched here.
func (s *userService) Update(ctx context.Context, id string, fields *repository.User) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if fields.Name == "" || fields.Email == "" {
		return nil, ErrInvalidInput
	}
	if fields.JobRole != nil && *fields.JobRole != "" {
		role, ok := types.ParseJobRole(*fields.JobRole)
		if !ok {
			return nil, ErrInvalidInput
		}
		fields.JobRole = &role
	}
	if fields.TeamID != nil {
		team, err := s.teamRepo.FindByID(ctx, *fields.TeamID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, ErrNotFound
		}
	}

	user.Name = fields.Name
	user.Email = fields.Email
	user.Designation = fields.Designation
	user.JobRole = fields.JobRole
	user.TeamID = fields.TeamID

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) IssueSetupToken(ctx context.Context, id string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}

	token := uuid.New().String()
	expires := time.Now().Add(24 * time.Hour)
	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, &token, &expires); err != nil {
		return "", err
	}

	if s.emailSvc != nil {
		setupURL := s.cfg.FrontendURL + "/setup-password?token=" + token
		if err := s.emailSvc.SendPasswordSetup(user.Email, user.Name, setupURL); err != nil {
			log.Printf("[User] Failed to send setup email to %s: %v", user.Email, err)
		}
	}
	return token, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.userRepo.Delete(ctx, id)
}
