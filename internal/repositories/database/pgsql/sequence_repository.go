package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSequenceRepository allocates entry sequences from the entry_sequences table.
type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceAllocator = (*PgxSequenceRepository)(nil)

// NextSequence bumps the counter row with an upsert. The row lock it takes is
// held until the surrounding transaction ends, which serialises allocations
// for the same journal and year. The counter never returns a value at or
// below the highest fiscal_sequence already stored, so rows written without
// going through the counter (imports, restores) cannot block allocation.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, workspaceID, journalCode string, fiscalYear int) (int64, error) {
	query := `
		INSERT INTO entry_sequences (workspace_id, journal_code, fiscal_year, last_value)
		VALUES ($1, $2, $3, (
			SELECT COALESCE(MAX(fiscal_sequence), 0) + 1
			FROM journal_entries
			WHERE workspace_id = $1 AND journal_code = $2 AND fiscal_year = $3
		))
		ON CONFLICT (workspace_id, journal_code, fiscal_year)
		DO UPDATE SET last_value = GREATEST(entry_sequences.last_value + 1, EXCLUDED.last_value)
		RETURNING last_value;
	`
	var next int64
	if err := r.conn(ctx).QueryRow(ctx, query, workspaceID, journalCode, int32(fiscalYear)).Scan(&next); err != nil {
		return 0, translateError(err, fmt.Sprintf("allocate sequence %s/%d", journalCode, fiscalYear))
	}
	return next, nil
}
