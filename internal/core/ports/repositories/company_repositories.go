package repositories

import (
	"context"

	"github.com/haberesoft/contable_app/internal/core/domain"
)

// CompanyReader defines read operations for company (tenant) data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves a paginated list of companies.
	ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
