package services

import (
	"context"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/haberesoft/contable_app/internal/dto"
)

// LedgerSvcFacade derives the three classic reports from confirmed,
// non-voided entry lines.
type LedgerSvcFacade interface {
	// Diario produces the chronological journal feed, restartable via the
	// returned pagination token.
	Diario(ctx context.Context, companyID string, params dto.DiarioParams) (*dto.DiarioResponse, error)

	// Mayor produces the per-account ledger with running balances, optionally
	// restricted to one account code.
	Mayor(ctx context.Context, companyID string, params dto.ReportParams, accountCode *string) (*dto.MayorResponse, error)

	// BalanceSumasYSaldos produces the trial balance with its closing
	// self-check totals.
	BalanceSumasYSaldos(ctx context.Context, companyID string, params dto.ReportParams) (*domain.BalanceReport, error)
}
