package dto

import (
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for registering a new company (tenant).
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	TaxID        string `json:"taxID"`
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID    string    `json:"companyID"`
	Name         string    `json:"name"`
	TaxID        string    `json:"taxID,omitempty"`
	CurrencyCode string    `json:"currencyCode"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		TaxID:        c.TaxID,
		CurrencyCode: c.CurrencyCode,
		CreatedAt:    c.CreatedAt,
		CreatedBy:    c.CreatedBy,
	}
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to DTO.
func ToListCompaniesResponse(cs []domain.Company) ListCompaniesResponse {
	list := make([]CompanyResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCompanyResponse(&c)
	}
	return ListCompaniesResponse{Companies: list}
}
