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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, company_id, name, start_date, end_date, closed, closed_by, closed_at, reopened_by, reopened_at, reopen_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// NewPgxPeriodRepository creates a new repository for fiscal period data.
func NewPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{BaseRepository{pool: pool}}
}

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Closed,
		&m.ClosedBy,
		&m.ClosedAt,
		&m.ReopenedBy,
		&m.ReopenedAt,
		&m.ReopenReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod persists a new fiscal period. The overlap rule is enforced by an
// exclusion constraint on (company_id, daterange), mapped to ErrDuplicate here.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO fiscal_periods (period_id, company_id, name, start_date, end_date, closed, closed_by, closed_at, reopened_by, reopened_at, reopen_reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PeriodID,
		m.CompanyID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Closed,
		m.ClosedBy,
		m.ClosedAt,
		m.ReopenedBy,
		m.ReopenedAt,
		m.ReopenReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isExclusionViolation(err) || isUniqueViolation(err) {
			return fmt.Errorf("%w: period overlaps an existing period", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods WHERE period_id = $1;`, periodColumns)
	m, err := scanPeriod(r.pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by ID %s: %w", periodID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindPeriodForDate retrieves the company's period whose window contains date.
// Comparison is by calendar day; the overlap constraint guarantees at most one match.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM fiscal_periods
		WHERE company_id = $1 AND start_date <= $2::date AND end_date >= $2::date;`, periodColumns)
	m, err := scanPeriod(r.pool.QueryRow(ctx, query, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format("2006-01-02"), err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListPeriods retrieves all fiscal periods for a company, ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods WHERE company_id = $1 ORDER BY start_date;`, periodColumns)
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for company %s: %w", companyID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// FindPeriodByIDForUpdate selects a period and locks its row within the given
// transaction, so the close/reopen decision holds until commit.
func (r *PgxPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID string) (*domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`, periodColumns)
	m, err := scanPeriod(tx.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// CountDraftEntriesInPeriod counts draft entries targeting the period within
// the same transaction that will flip the closed flag.
func (r *PgxPeriodRepository) CountDraftEntriesInPeriod(ctx context.Context, tx pgx.Tx, periodID string) (int64, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE period_id = $1 AND status = $2;`
	var count int64
	if err := tx.QueryRow(ctx, query, periodID, models.Draft).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count draft entries in period %s: %w", periodID, err)
	}
	return count, nil
}

// MarkPeriodClosed sets closed=true and stamps the closing actor.
func (r *PgxPeriodRepository) MarkPeriodClosed(ctx context.Context, tx pgx.Tx, periodID string, actorID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET closed = TRUE, closed_by = $2, closed_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE period_id = $1;
	`
	tag, err := tx.Exec(ctx, query, periodID, actorID, now)
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkPeriodReopened clears the closed flag and records the audited reopen.
// The close stamps are preserved so the history of both transitions survives.
func (r *PgxPeriodRepository) MarkPeriodReopened(ctx context.Context, tx pgx.Tx, periodID string, actorID string, reason string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET closed = FALSE, reopened_by = $2, reopened_at = $3, reopen_reason = $4, last_updated_at = $3, last_updated_by = $2
		WHERE period_id = $1;
	`
	tag, err := tx.Exec(ctx, query, periodID, actorID, now, reason)
	if err != nil {
		return fmt.Errorf("failed to reopen period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)
