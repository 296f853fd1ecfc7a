package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSequenceRepository struct{}

// NewPgxSequenceRepository creates the per-company entry number sequencer.
// It is stateless; every reservation runs on the caller's transaction.
func NewPgxSequenceRepository() portsrepo.EntrySequencer {
	return &PgxSequenceRepository{}
}

// NextEntryNumber reserves the next entry number for the company inside tx.
// The upsert takes a row lock on the sequence row, so concurrent
// confirmations for the same company serialize here and numbers come out
// strictly increasing with no gaps among committed entries. A rolled-back
// caller releases the lock without consuming the number.
func (r *PgxSequenceRepository) NextEntryNumber(ctx context.Context, tx pgx.Tx, companyID string) (int64, error) {
	query := `
		INSERT INTO entry_sequences (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_number = entry_sequences.last_number + 1
		RETURNING last_number;
	`
	var number int64
	if err := tx.QueryRow(ctx, query, companyID).Scan(&number); err != nil {
		return 0, fmt.Errorf("failed to reserve entry number for company %s: %w", companyID, err)
	}
	return number, nil
}

var _ portsrepo.EntrySequencer = (*PgxSequenceRepository)(nil)
