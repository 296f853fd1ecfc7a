package repositories

import (
	"context"
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportFilter narrows report queries to a period and/or date range.
// Nil fields mean "no filter".
type ReportFilter struct {
	PeriodID *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// LedgerMovement is one confirmed entry line joined with its entry header and
// account, the raw material for the Diario and Mayor reports.
type LedgerMovement struct {
	EntryID     string
	EntryDate   time.Time
	EntryNumber int64
	AccountID   string
	AccountCode string
	AccountName string
	AccountType domain.AccountType
	Description string
	Debe        decimal.Decimal
	Haber       decimal.Decimal
}

// AccountTotals is one account's summed debe/haber over the filter window.
type AccountTotals struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType domain.AccountType
	TotalDebe   decimal.Decimal
	TotalHaber  decimal.Decimal
}

// ReportingRepository defines the read-side queries for ledger reports.
// All queries see only lines of CONFIRMED entries; VOIDED and DRAFT entries
// are excluded at the SQL level. Reads are plain read-committed snapshots
// and never lock writer rows.
type ReportingRepository interface {
	// GetDiarioRows retrieves the chronological journal feed, keyset-paginated
	// in (entry_date, entry_number, line_no) order so callers can restart the
	// stream from the returned token.
	GetDiarioRows(ctx context.Context, companyID string, filter ReportFilter, limit int, nextToken *string) ([]domain.DiarioRow, *string, error)

	// GetMayorMovements retrieves all confirmed movements in ledger order,
	// optionally restricted to a single account code.
	GetMayorMovements(ctx context.Context, companyID string, filter ReportFilter, accountCode *string) ([]LedgerMovement, error)

	// GetBalanceTotals retrieves per-account debe/haber sums over the window.
	GetBalanceTotals(ctx context.Context, companyID string, filter ReportFilter) ([]AccountTotals, error)
}
