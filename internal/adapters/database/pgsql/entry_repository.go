package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	"github.com/haberesoft/contable_app/internal/models"
	"github.com/haberesoft/contable_app/internal/utils/mapping"
	"github.com/haberesoft/contable_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, company_id, period_id, entry_number, entry_date, kind, origin, memo, reference, status, version, confirmed_by, confirmed_at, voided_by, voided_at, void_reason, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_no, account_id, side, amount, description, document_ref, counterparty_id`

type PgxEntryRepository struct {
	BaseRepository
	sequencer portsrepo.EntrySequencer
}

// NewPgxEntryRepository creates a new repository for journal entry data.
func NewPgxEntryRepository(pool *pgxpool.Pool, sequencer portsrepo.EntrySequencer) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{pool: pool},
		sequencer:      sequencer,
	}
}

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.PeriodID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Kind,
		&m.Origin,
		&m.Memo,
		&m.Reference,
		&m.Status,
		&m.Version,
		&m.ConfirmedBy,
		&m.ConfirmedAt,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.VoidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNo,
		&m.AccountID,
		&m.Side,
		&m.Amount,
		&m.Description,
		&m.DocumentRef,
		&m.CounterpartyID,
	)
	return m, err
}

func queueLineInserts(batch *pgx.Batch, lines []models.EntryLine) {
	query := `
		INSERT INTO entry_lines (line_id, entry_id, line_no, account_id, side, amount, description, document_ref, counterparty_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, l := range lines {
		batch.Queue(query,
			l.LineID,
			l.EntryID,
			l.LineNo,
			l.AccountID,
			l.Side,
			l.Amount,
			l.Description,
			l.DocumentRef,
			l.CounterpartyID,
		)
	}
}

// assertPeriodOpen re-reads the period's closed flag under a share lock
// inside the caller's transaction. A concurrent close holds FOR UPDATE on
// the same row, so the two operations serialize instead of racing.
func assertPeriodOpen(ctx context.Context, tx pgx.Tx, periodID string) error {
	var closed bool
	err := tx.QueryRow(ctx, `SELECT closed FROM fiscal_periods WHERE period_id = $1 FOR SHARE;`, periodID).Scan(&closed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
		}
		return fmt.Errorf("failed to check period %s: %w", periodID, err)
	}
	if closed {
		return fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrConflict, periodID)
	}
	return nil
}

// SaveEntry persists a new draft entry and its lines within a DB transaction.
// The period gate is re-checked under the same transaction so a draft cannot
// land in a period that closed between validation and commit.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := assertPeriodOpen(ctx, tx, entry.PeriodID); err != nil {
		return err
	}

	m := mapping.ToModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, company_id, period_id, entry_number, entry_date, kind, origin, memo, reference, status, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.CompanyID,
		m.PeriodID,
		m.EntryNumber,
		m.EntryDate,
		m.Kind,
		m.Origin,
		m.Memo,
		m.Reference,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	modelLines := make([]models.EntryLine, 0, len(lines))
	for _, l := range lines {
		modelLines = append(modelLines, mapping.ToModelEntryLine(l))
	}
	queueLineInserts(batch, modelLines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", m.EntryID, err)
	}
	return nil
}

// lockEntryForWrite selects the entry row FOR UPDATE and verifies the caller's
// draft/version preconditions hold at lock time, not just at read time.
func (r *PgxEntryRepository) lockEntryForWrite(ctx context.Context, tx pgx.Tx, entryID string, expectedVersion int64, wantStatus models.EntryStatus) (models.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryColumns)
	m, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Entry{}, apperrors.ErrNotFound
		}
		return models.Entry{}, fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}
	if m.Status != wantStatus {
		return models.Entry{}, fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entryID, m.Status)
	}
	if m.Version != expectedVersion {
		return models.Entry{}, fmt.Errorf("%w: entry %s is at version %d", apperrors.ErrConcurrentModification, entryID, m.Version)
	}
	return m, nil
}

// UpdateDraftEntry replaces a draft entry's header fields and lines.
func (r *PgxEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine, expectedVersion int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := r.lockEntryForWrite(ctx, tx, entry.EntryID, expectedVersion, models.Draft); err != nil {
		return err
	}

	// The update may move the entry into a different period; either way the
	// target period must still be open at commit time.
	if err := assertPeriodOpen(ctx, tx, entry.PeriodID); err != nil {
		return err
	}

	m := mapping.ToModelEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET period_id = $2, entry_date = $3, kind = $4, memo = $5, reference = $6,
			version = version + 1, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.EntryID,
		m.PeriodID,
		m.EntryDate,
		m.Kind,
		m.Memo,
		m.Reference,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}

	// Lines are replaced wholesale; drafts have no line history to preserve.
	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	modelLines := make([]models.EntryLine, 0, len(lines))
	for _, l := range lines {
		modelLines = append(modelLines, mapping.ToModelEntryLine(l))
	}
	queueLineInserts(batch, modelLines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry update %s: %w", m.EntryID, err)
	}
	return nil
}

// ConfirmEntry atomically reserves the company's next entry number and flips
// the entry to CONFIRMED. The period gate is re-checked on the locked rows so
// a concurrent period close cannot slip a confirmation into a closed period.
func (r *PgxEntryRepository) ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, now time.Time) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	m, err := r.lockEntryForWrite(ctx, tx, entryID, expectedVersion, models.Draft)
	if err != nil {
		return 0, err
	}

	if err := assertPeriodOpen(ctx, tx, m.PeriodID); err != nil {
		return 0, err
	}

	number, err := r.sequencer.NextEntryNumber(ctx, tx, m.CompanyID)
	if err != nil {
		return 0, err
	}

	confirmQuery := `
		UPDATE journal_entries
		SET entry_number = $2, status = $3, confirmed_by = $4, confirmed_at = $5,
			version = version + 1, last_updated_at = $5, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, confirmQuery, entryID, number, models.Confirmed, actorID, now); err != nil {
		return 0, fmt.Errorf("failed to confirm entry %s: %w", entryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit confirmation of entry %s: %w", entryID, err)
	}
	return number, nil
}

// VoidEntry flags a confirmed entry as VOIDED with the mandatory reason.
// The entry keeps its number and lines; nothing is deleted.
func (r *PgxEntryRepository) VoidEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, reason string, now time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := r.lockEntryForWrite(ctx, tx, entryID, expectedVersion, models.Confirmed); err != nil {
		return err
	}

	voidQuery := `
		UPDATE journal_entries
		SET status = $2, voided_by = $3, voided_at = $4, void_reason = $5,
			version = version + 1, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, voidQuery, entryID, models.Voided, actorID, now, reason); err != nil {
		return fmt.Errorf("failed to void entry %s: %w", entryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit void of entry %s: %w", entryID, err)
	}
	return nil
}

// DeleteDraftEntry removes a draft entry and its lines. The only destructive
// path in the store; confirmed and voided entries are immutable history.
func (r *PgxEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string, expectedVersion int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := r.lockEntryForWrite(ctx, tx, entryID, expectedVersion, models.Draft); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit deletion of entry %s: %w", entryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry by its ID, without lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE entry_id = $1;`, entryColumns)
	m, err := scanEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the entry's lines ordered by line number.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := fmt.Sprintf(`SELECT %s FROM entry_lines WHERE entry_id = $1 ORDER BY line_no;`, lineColumns)
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.EntryLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, mapping.ToDomainEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.EntryLine{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_no;`, lineColumns)
	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entries: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.EntryLine, len(entryIDs))
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		grouped[m.EntryID] = append(grouped[m.EntryID], mapping.ToDomainEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return grouped, nil
}

// ListEntriesByCompany retrieves a filtered, keyset-paginated audit listing of
// entries. All statuses are visible here; report queries filter separately.
func (r *PgxEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := []interface{}{companyID}
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE company_id = $1`, entryColumns)

	if filter.PeriodID != nil {
		args = append(args, *filter.PeriodID)
		query += fmt.Sprintf(` AND period_id = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreatedAt, tokenEntryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenDate, tokenCreatedAt, tokenEntryID)
		query += fmt.Sprintf(` AND (entry_date, created_at, entry_id) > ($%d, $%d, $%d)`, len(args)-2, len(args)-1, len(args))
	}

	// Fetch one extra row to decide whether a next page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date, created_at, entry_id LIMIT $%d;`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelEntries := []models.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var newToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		newToken = &token
	}

	entries := make([]domain.Entry, 0, len(modelEntries))
	for _, m := range modelEntries {
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	return entries, newToken, nil
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)
