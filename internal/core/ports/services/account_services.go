package services

import (
	"context"

	"github.com/haberesoft/contable_app/internal/core/domain"
)

// AccountReaderSvc is the chart-of-accounts read facade the ledger engine
// consumes. Account maintenance is outside this core.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account, verifying it belongs to the company.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its plan-de-cuentas code.
	GetAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, keyed by ID. Accounts of
	// other companies are absent from the result, never leaked.
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of the company's accounts.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
}
