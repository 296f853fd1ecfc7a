package repositories

import (
	"context"
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PeriodReader defines read operations for fiscal period data
type PeriodReader interface {
	// FindPeriodByID retrieves a specific fiscal period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the company's period whose date window contains
	// the given date, open or closed. Returns apperrors.ErrNotFound when no
	// period covers the date.
	FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all fiscal periods for a company, ordered by start date.
	ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data
type PeriodWriter interface {
	// SavePeriod persists a new fiscal period. Returns apperrors.ErrDuplicate
	// when the date range overlaps an existing period of the same company.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error
}

// PeriodTransactionSupport defines period operations that must run inside a
// caller-controlled transaction, so that close/reopen decisions and their
// precondition checks commit as one unit.
type PeriodTransactionSupport interface {
	// FindPeriodByIDForUpdate selects a period and locks its row within a transaction.
	FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID string) (*domain.FiscalPeriod, error)

	// CountDraftEntriesInPeriod counts draft entries targeting the period,
	// within the same transaction that will flip the closed flag.
	CountDraftEntriesInPeriod(ctx context.Context, tx pgx.Tx, periodID string) (int64, error)

	// MarkPeriodClosed sets closed=true and stamps the closing actor.
	MarkPeriodClosed(ctx context.Context, tx pgx.Tx, periodID string, actorID string, now time.Time) error

	// MarkPeriodReopened clears the closed flag and records the audited reopen.
	MarkPeriodReopened(ctx context.Context, tx pgx.Tx, periodID string, actorID string, reason string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
	PeriodTransactionSupport
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
