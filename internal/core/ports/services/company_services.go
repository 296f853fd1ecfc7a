package services

import (
	"context"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company by its ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves a paginated list of companies.
	ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany registers a new company (tenant).
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorActorID string) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
