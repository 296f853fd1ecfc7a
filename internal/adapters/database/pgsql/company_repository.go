package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	"github.com/haberesoft/contable_app/internal/models"
	"github.com/haberesoft/contable_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCompanyRepository creates a new repository for company (tenant) data.
func NewPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{pool: pool}
}

// SaveCompany persists a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (company_id, name, tax_id, currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.TaxID,
		m.CurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: company %s", apperrors.ErrDuplicate, m.CompanyID)
		}
		return fmt.Errorf("failed to save company %s: %w", m.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, tax_id, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	var m models.Company
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.Name,
		&m.TaxID,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListCompanies retrieves a paginated list of companies ordered by name.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error) {
	query := `
		SELECT company_id, name, tax_id, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	modelCompanies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Company, error) {
		var m models.Company
		err := row.Scan(
			&m.CompanyID,
			&m.Name,
			&m.TaxID,
			&m.CurrencyCode,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan companies: %w", err)
	}

	companies := make([]domain.Company, 0, len(modelCompanies))
	for _, m := range modelCompanies {
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	return companies, nil
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)
