package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/haberesoft/contable_app/internal/utils/accounting"
)

// ledgerService derives the Diario, Mayor and Balance de Sumas y Saldos
// reports from confirmed entry lines. It is purely read-side: the repository
// queries already exclude voided and draft entries, and nothing here blocks
// writers.
type ledgerService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(reportingRepo portsrepo.ReportingRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{reportingRepo: reportingRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func toReportFilter(params dto.ReportParams) portsrepo.ReportFilter {
	return portsrepo.ReportFilter{
		PeriodID: params.PeriodID,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	}
}

// Diario produces one page of the chronological journal feed. The token
// makes the sequence restartable from any row.
func (s *ledgerService) Diario(ctx context.Context, companyID string, params dto.DiarioParams) (*dto.DiarioResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, nextToken, err := s.reportingRepo.GetDiarioRows(ctx, companyID, toReportFilter(params.ReportParams), limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve diario rows", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve diario: %w", err)
	}

	s.LogDebug(ctx, "Diario page generated", slog.String("company_id", companyID), slog.Int("row_count", len(rows)))
	return &dto.DiarioResponse{Rows: rows, NextToken: nextToken}, nil
}

// Mayor produces the per-account ledger. The running balance convention is
// fixed at debe minus haber regardless of the account's normal side; callers
// interpret the sign per account type.
func (s *ledgerService) Mayor(ctx context.Context, companyID string, params dto.ReportParams, accountCode *string) (*dto.MayorResponse, error) {
	movements, err := s.reportingRepo.GetMayorMovements(ctx, companyID, toReportFilter(params), accountCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve mayor movements", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve mayor: %w", err)
	}

	// Movements arrive in (date, entry number, line no) order. Group them by
	// account, preserving first-appearance order, and walk each group to
	// accumulate the running balance.
	accountOrder := make([]string, 0)
	byAccount := make(map[string]*domain.MayorAccount)
	for _, mv := range movements {
		acc, seen := byAccount[mv.AccountID]
		if !seen {
			acc = &domain.MayorAccount{
				AccountID:   mv.AccountID,
				AccountCode: mv.AccountCode,
				AccountName: mv.AccountName,
				AccountType: mv.AccountType,
				SaldoFinal:  decimal.Zero,
			}
			byAccount[mv.AccountID] = acc
			accountOrder = append(accountOrder, mv.AccountID)
		}
		running := acc.SaldoFinal.Add(mv.Debe).Sub(mv.Haber)
		acc.Movements = append(acc.Movements, domain.MayorMovement{
			EntryDate:   mv.EntryDate,
			EntryNumber: mv.EntryNumber,
			Description: mv.Description,
			Debe:        mv.Debe,
			Haber:       mv.Haber,
			Saldo:       running,
		})
		acc.SaldoFinal = running
	}

	accounts := make([]domain.MayorAccount, 0, len(accountOrder))
	for _, id := range accountOrder {
		accounts = append(accounts, *byAccount[id])
	}

	s.LogDebug(ctx, "Mayor generated", slog.String("company_id", companyID), slog.Int("account_count", len(accounts)))
	return &dto.MayorResponse{Accounts: accounts}, nil
}

// BalanceSumasYSaldos produces the trial balance. The closing totals restate
// the per-entry balance invariant for the whole ledger: when they disagree
// beyond the entry tolerance, confirmed entries need re-auditing and the
// report is flagged inconsistent rather than silently served.
func (s *ledgerService) BalanceSumasYSaldos(ctx context.Context, companyID string, params dto.ReportParams) (*domain.BalanceReport, error) {
	totals, err := s.reportingRepo.GetBalanceTotals(ctx, companyID, toReportFilter(params))
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance totals", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve balance: %w", err)
	}

	report := &domain.BalanceReport{
		Rows:               make([]domain.BalanceRow, 0, len(totals)),
		TotalDebe:          decimal.Zero,
		TotalHaber:         decimal.Zero,
		TotalSaldoDeudor:   decimal.Zero,
		TotalSaldoAcreedor: decimal.Zero,
	}

	for _, t := range totals {
		saldo := t.TotalDebe.Sub(t.TotalHaber)
		row := domain.BalanceRow{
			AccountID:     t.AccountID,
			AccountCode:   t.AccountCode,
			AccountName:   t.AccountName,
			AccountType:   t.AccountType,
			TotalDebe:     t.TotalDebe,
			TotalHaber:    t.TotalHaber,
			SaldoDeudor:   decimal.Zero,
			SaldoAcreedor: decimal.Zero,
		}
		// At most one of the two saldos is non-zero per account.
		if saldo.IsPositive() {
			row.SaldoDeudor = saldo
		} else if saldo.IsNegative() {
			row.SaldoAcreedor = saldo.Neg()
		}
		report.Rows = append(report.Rows, row)

		report.TotalDebe = report.TotalDebe.Add(row.TotalDebe)
		report.TotalHaber = report.TotalHaber.Add(row.TotalHaber)
		report.TotalSaldoDeudor = report.TotalSaldoDeudor.Add(row.SaldoDeudor)
		report.TotalSaldoAcreedor = report.TotalSaldoAcreedor.Add(row.SaldoAcreedor)
	}

	sumsDiff := report.TotalDebe.Sub(report.TotalHaber).Abs()
	saldosDiff := report.TotalSaldoDeudor.Sub(report.TotalSaldoAcreedor).Abs()
	report.Consistent = sumsDiff.LessThanOrEqual(accounting.BalanceTolerance) &&
		saldosDiff.LessThanOrEqual(accounting.BalanceTolerance)
	if !report.Consistent {
		s.LogError(ctx, fmt.Errorf("trial balance out of balance: sums diff %s, saldos diff %s", sumsDiff, saldosDiff),
			"Trial balance self-check failed; confirmed entries need re-auditing",
			slog.String("company_id", companyID))
	}

	s.LogDebug(ctx, "Balance de sumas y saldos generated",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}
