package repositories

import (
	"context"
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ListEntriesFilter narrows an entry listing. Nil fields mean "no filter".
type ListEntriesFilter struct {
	PeriodID *string
	Status   *domain.EntryStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier, without lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindLinesByEntryID retrieves the entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error)

	// ListEntriesByCompany retrieves a filtered, keyset-paginated audit listing of
	// entries for a company. All statuses are visible here, including VOIDED drafts
	// of history; report queries exclude non-confirmed entries separately.
	ListEntriesByCompany(ctx context.Context, companyID string, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations for journal entry data. Every method
// is an atomic unit: it either fully commits or leaves no trace.
type EntryWriter interface {
	// SaveEntry persists a new draft entry and its lines.
	SaveEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error

	// UpdateDraftEntry replaces a draft entry's header fields and lines.
	// Fails with apperrors.ErrConcurrentModification when expectedVersion is
	// stale, and apperrors.ErrConflict when the entry is no longer a draft.
	UpdateDraftEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine, expectedVersion int64) error

	// ConfirmEntry atomically reserves the company's next entry number, flips
	// the entry to CONFIRMED and stamps the confirming actor. The period gate
	// is re-checked inside the same transaction. Returns the assigned number.
	ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, now time.Time) (int64, error)

	// VoidEntry flags a confirmed entry as VOIDED with the mandatory reason.
	VoidEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, reason string, now time.Time) error

	// DeleteDraftEntry removes a draft entry and its lines. The only
	// destructive path; illegal for confirmed or voided entries.
	DeleteDraftEntry(ctx context.Context, entryID string, expectedVersion int64) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}

// EntrySequencer reserves strictly increasing, per-company entry numbers.
// NextEntryNumber must be called inside the transaction that confirms the
// entry so that reservation and confirmation commit or roll back together;
// the sequence row lock serializes concurrent confirmations.
type EntrySequencer interface {
	NextEntryNumber(ctx context.Context, tx pgx.Tx, companyID string) (int64, error)
}
