// internal/service/company_service.go
package service

import (
	"context"

	"github.com/Sudharmabg/taskhive/internal/repository"
)

type CompanyService interface {
	Create(ctx context.Context, company *repository.Company) error
	Get(ctx context.Context, id string) (*repository.Company, error)
	List(ctx context.Context) ([]*repository.Company, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Create(ctx context.Context, company *repository.Company) error {
	if company.Name == "" || company.Code == "" {
		return ErrInvalidInput
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *companyService) Get(ctx context.Context, id string) (*repository.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

func (s *companyService) List(ctx context.Context) ([]*repository.Company, error) {
	return s.companyRepo.FindAll(ctx)
}
