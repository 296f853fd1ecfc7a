package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/dto"
)

// companyService provides tenant lookup and registration.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany registers a new company (tenant).
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorActorID string) (*domain.Company, error) {
	now := time.Now().UTC()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Name:         req.Name,
		TaxID:        req.TaxID,
		CurrencyCode: req.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.LogInfo(ctx, "Company created successfully", slog.String("company_id", company.CompanyID))
	return &company, nil
}

// GetCompanyByID retrieves a specific company.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID", slog.String("company_id", companyID))
		}
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	return company, nil
}

// ListCompanies retrieves a paginated list of companies.
func (s *companyService) ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error) {
	if limit <= 0 {
		limit = 20
	}
	companies, err := s.companyRepo.ListCompanies(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}
