package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, workspace_id, code, name, journal_type, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository stores journals (books).
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal inserts a new journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.JournalID,
		m.WorkspaceID,
		m.Code,
		m.Name,
		m.JournalType,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("save journal %s", m.Code))
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, workspaceID, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE workspace_id = $1 AND journal_id = $2;`
	return r.findOne(ctx, query, workspaceID, journalID)
}

// FindJournalByCode retrieves a journal by its code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, workspaceID, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE workspace_id = $1 AND code = $2;`
	return r.findOne(ctx, query, workspaceID, code)
}

func (r *PgxJournalRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Journal, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "find journal")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJournalNotFound
		}
		return nil, translateError(err, "scan journal")
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves the journals of a workspace ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE workspace_id = $1 ORDER BY code;`
	rows, err := r.conn(ctx).Query(ctx, query, workspaceID)
	if err != nil {
		return nil, translateError(err, "list journals")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, translateError(err, "scan journals")
	}
	journals := make([]domain.Journal, len(ms))
	for i, m := range ms {
		journals[i] = mapping.ToDomainJournal(m)
	}
	return journals, nil
}
