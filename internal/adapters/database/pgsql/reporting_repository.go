package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	"github.com/haberesoft/contable_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportingRepository creates the read-side repository for ledger reports.
// Every query here restricts to CONFIRMED entries; drafts and voided entries
// never reach a report.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// appendReportFilter adds the shared period/date-range predicates, returning
// the extended SQL and args. Column references assume aliases e (entries).
func appendReportFilter(query string, args []interface{}, filter portsrepo.ReportFilter) (string, []interface{}) {
	if filter.PeriodID != nil {
		args = append(args, *filter.PeriodID)
		query += fmt.Sprintf(` AND e.period_id = $%d`, len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(` AND e.entry_date >= $%d`, len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(` AND e.entry_date <= $%d`, len(args))
	}
	return query, args
}

// GetDiarioRows retrieves the chronological journal feed, keyset-paginated on
// (entry_date, entry_number, line_no).
func (r *PgxReportingRepository) GetDiarioRows(ctx context.Context, companyID string, filter portsrepo.ReportFilter, limit int, nextToken *string) ([]domain.DiarioRow, *string, error) {
	args := []interface{}{companyID, string(domain.Confirmed)}
	query := `
		SELECT e.entry_date, e.entry_number, e.entry_id, a.code, a.name, l.description, l.line_no,
			CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END AS debe,
			CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END AS haber
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1 AND e.status = $2`
	query, args = appendReportFilter(query, args, filter)

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 3 {
			return nil, nil, fmt.Errorf("%w: invalid report pagination token", apperrors.ErrValidation)
		}
		tokenDate, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid report pagination token", apperrors.ErrValidation)
		}
		tokenNumber, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid report pagination token", apperrors.ErrValidation)
		}
		tokenLineNo, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid report pagination token", apperrors.ErrValidation)
		}
		args = append(args, tokenDate, tokenNumber, tokenLineNo)
		query += fmt.Sprintf(` AND (e.entry_date, e.entry_number, l.line_no) > ($%d, $%d, $%d)`, len(args)-2, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY e.entry_date, e.entry_number, l.line_no LIMIT $%d;`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query diario rows for company %s: %w", companyID, err)
	}
	defer rows.Close()

	diarioRows := []domain.DiarioRow{}
	lineNos := []int{}
	for rows.Next() {
		var row domain.DiarioRow
		var lineNo int
		if err := rows.Scan(
			&row.EntryDate,
			&row.EntryNumber,
			&row.EntryID,
			&row.AccountCode,
			&row.AccountName,
			&row.Description,
			&lineNo,
			&row.Debe,
			&row.Haber,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan diario row: %w", err)
		}
		diarioRows = append(diarioRows, row)
		lineNos = append(lineNos, lineNo)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating diario rows: %w", err)
	}
	var newToken *string
	if len(diarioRows) > limit {
		diarioRows = diarioRows[:limit]
		last := diarioRows[len(diarioRows)-1]
		token := pagination.EncodeMultiFieldToken(
			last.EntryDate.Format(time.RFC3339Nano),
			strconv.FormatInt(last.EntryNumber, 10),
			strconv.Itoa(lineNos[len(diarioRows)-1]),
		)
		newToken = &token
	}
	return diarioRows, newToken, nil
}

// GetMayorMovements retrieves all confirmed movements in ledger order,
// optionally restricted to a single account code.
func (r *PgxReportingRepository) GetMayorMovements(ctx context.Context, companyID string, filter portsrepo.ReportFilter, accountCode *string) ([]portsrepo.LedgerMovement, error) {
	args := []interface{}{companyID, string(domain.Confirmed)}
	query := `
		SELECT e.entry_id, e.entry_date, e.entry_number, a.account_id, a.code, a.name, a.account_type, l.description,
			CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END AS debe,
			CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END AS haber
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1 AND e.status = $2`
	query, args = appendReportFilter(query, args, filter)

	if accountCode != nil {
		args = append(args, *accountCode)
		query += fmt.Sprintf(` AND a.code = $%d`, len(args))
	}
	query += ` ORDER BY a.code, e.entry_date, e.entry_number, l.line_no;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mayor movements for company %s: %w", companyID, err)
	}
	defer rows.Close()

	movements := []portsrepo.LedgerMovement{}
	for rows.Next() {
		var m portsrepo.LedgerMovement
		var accountType string
		if err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.EntryNumber,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&accountType,
			&m.Description,
			&m.Debe,
			&m.Haber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mayor movement row: %w", err)
		}
		m.AccountType = domain.AccountType(accountType)
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mayor movement rows: %w", err)
	}
	return movements, nil
}

// GetBalanceTotals retrieves per-account debe/haber sums over the filter
// window. Accounts with no confirmed movement in the window do not appear.
func (r *PgxReportingRepository) GetBalanceTotals(ctx context.Context, companyID string, filter portsrepo.ReportFilter) ([]portsrepo.AccountTotals, error) {
	args := []interface{}{companyID, string(domain.Confirmed)}
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
			COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS total_debe,
			COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_haber
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1 AND e.status = $2`
	query, args = appendReportFilter(query, args, filter)
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance totals for company %s: %w", companyID, err)
	}
	defer rows.Close()

	totals := []portsrepo.AccountTotals{}
	for rows.Next() {
		var t portsrepo.AccountTotals
		var accountType string
		if err := rows.Scan(
			&t.AccountID,
			&t.AccountCode,
			&t.AccountName,
			&accountType,
			&t.TotalDebe,
			&t.TotalHaber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance totals row: %w", err)
		}
		t.AccountType = domain.AccountType(accountType)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance totals rows: %w", err)
	}
	return totals, nil
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)
