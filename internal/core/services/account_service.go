package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
)

// accountService is the read facade over the chart of accounts. The ledger
// engine only consumes account records; maintaining them is a separate
// application's concern.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account, verifying company ownership.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.CompanyID != companyID {
		// Obscure existence across tenants
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its plan-de-cuentas code.
func (s *accountService) GetAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, dropping any that belong to a
// different company rather than leaking them.
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	for id, acc := range accounts {
		if acc.CompanyID != companyID {
			s.LogWarn(ctx, "Account requested across company boundary",
				slog.String("account_id", id),
				slog.String("requested_company", companyID),
				slog.String("account_company", acc.CompanyID))
			delete(accounts, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of the company's accounts.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
