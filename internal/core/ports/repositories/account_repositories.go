package repositories

import (
	"context"

	"github.com/haberesoft/contable_app/internal/core/domain"
)

// AccountReader defines the read contract the ledger engine needs from the
// chart of accounts. Account maintenance (create/edit) lives outside this
// core, so there is deliberately no writer interface.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its plan-de-cuentas code within a company.
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given company.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
}

// AccountRepositoryFacade is the full account repository surface.
type AccountRepositoryFacade interface {
	AccountReader
}
