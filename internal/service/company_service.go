package service

import (
	"context"

	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/repository"
	apperrors "github.com/spec-kit/metering-service/pkg/util"
)

// CompanyService manages billed companies.
type CompanyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService builds the service.
func NewCompanyService(companies repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// Create registers a new company.
func (s *CompanyService) Create(ctx context.Context, company *domain.Company) error {
	if company.Name == "" || company.TaxID == "" {
		return apperrors.NewValidationError("name and tax_id required", nil)
	}
	return s.companies.Create(ctx, company)
}

// Update replaces mutable company fields.
func (s *CompanyService) Update(ctx context.Context, company *domain.Company) error {
	if company.Name == "" || company.TaxID == "" {
		return apperrors.NewValidationError("name and tax_id required", nil)
	}
	return s.companies.Update(ctx, company)
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	return s.companies.Delete(ctx, id)
}

// Get fetches one company.
func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// List returns a page of companies.
func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]*domain.Company, error) {
	return s.companies.List(ctx, normalizeLimit(limit), offset)
}
