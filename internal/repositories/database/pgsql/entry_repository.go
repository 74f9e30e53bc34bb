package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, workspace_id, entry_number, journal_id, journal_code, entry_date, description,
	external_reference, status, fiscal_year, fiscal_period, fiscal_sequence, total_amount,
	posted_at, posted_by, validated_at, validated_by, cancelled_at, cancelled_by,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `entry_id, line_number, account_id, account_number, label, debit, credit, cost_center, analytic_tags`

// stampColumns names the *_at/*_by column pair each target status fills.
var stampColumns = map[domain.EntryStatus]string{
	domain.Posted:    "posted",
	domain.Validated: "validated",
	domain.Cancelled: "cancelled",
}

// PgxEntryRepository stores journal entries and their lines.
type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry inserts the entry header and queues its lines in one batch.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		m := mapping.ToModelEntry(entry)
		entryQuery := `
			INSERT INTO journal_entries (` + entryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
		`
		_, err := r.conn(ctx).Exec(ctx, entryQuery,
			m.EntryID,
			m.WorkspaceID,
			m.EntryNumber,
			m.JournalID,
			m.JournalCode,
			m.EntryDate,
			m.Description,
			m.ExternalReference,
			m.Status,
			m.FiscalYear,
			m.FiscalPeriod,
			m.FiscalSequence,
			m.TotalAmount,
			m.PostedAt,
			m.PostedBy,
			m.ValidatedAt,
			m.ValidatedBy,
			m.CancelledAt,
			m.CancelledBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return translateError(err, "insert entry "+m.EntryNumber)
		}

		batch := &pgx.Batch{}
		lineQuery := `INSERT INTO journal_entry_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
		for _, line := range lines {
			ml := mapping.ToModelEntryLine(line)
			batch.Queue(lineQuery,
				ml.EntryID,
				ml.LineNumber,
				ml.AccountID,
				ml.AccountNumber,
				ml.Label,
				ml.Debit,
				ml.Credit,
				ml.CostCenter,
				ml.AnalyticTags,
			)
		}
		// Close surfaces the first failing insert of the batch.
		if err := r.conn(ctx).SendBatch(ctx, batch).Close(); err != nil {
			return translateError(err, "insert lines of entry "+m.EntryNumber)
		}
		return nil
	})
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, workspaceID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE workspace_id = $1 AND entry_id = $2;`
	rows, err := r.conn(ctx).Query(ctx, query, workspaceID, entryID)
	if err != nil {
		return nil, translateError(err, "find entry "+entryID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, translateError(err, "scan entry "+entryID)
	}
	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of an entry ordered by line number.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number;`
	ms, err := r.collectLines(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		lines[i] = mapping.ToDomainEntryLine(m)
	}
	return lines, nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	grouped := make(map[string][]domain.JournalEntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return grouped, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	ms, err := r.collectLines(ctx, query, entryIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		grouped[m.EntryID] = append(grouped[m.EntryID], mapping.ToDomainEntryLine(m))
	}
	return grouped, nil
}

func (r *PgxEntryRepository) collectLines(ctx context.Context, query string, args ...any) ([]models.JournalEntryLine, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "query entry lines")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryLine])
	if err != nil {
		return nil, translateError(err, "scan entry lines")
	}
	return ms, nil
}

// ListEntries retrieves a page of entries using keyset pagination on
// (entry_date, created_at, entry_id), newest first.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, workspaceID string, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	args := []any{workspaceID}
	where := []string{"workspace_id = $1"}
	addCond := func(format string, values ...any) {
		placeholders := make([]any, len(values))
		for i, v := range values {
			args = append(args, v)
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		where = append(where, fmt.Sprintf(format, placeholders...))
	}

	if filter.JournalID != nil {
		addCond("journal_id = %s", *filter.JournalID)
	}
	if filter.Status != nil {
		addCond("status = %s", string(*filter.Status))
	}
	if filter.DateFrom != nil {
		addCond("entry_date >= %s", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCond("entry_date <= %s", *filter.DateTo)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		addCond("(entry_date, created_at, entry_id) < (%s, %s, %s::UUID)", cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "list entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, translateError(err, "scan entries")
	}

	var nextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		nextToken = &token
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, nextToken, nil
}

// FindEntriesForPeriod retrieves every entry a trial balance folds.
func (r *PgxEntryRepository) FindEntriesForPeriod(ctx context.Context, q domain.PeriodQuery) ([]domain.JournalEntry, error) {
	statuses := make([]string, len(q.Statuses))
	for i, s := range q.Statuses {
		statuses[i] = string(s)
	}
	var maxPeriod *int16
	if q.MaxPeriod != nil {
		p := int16(*q.MaxPeriod)
		maxPeriod = &p
	}

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workspace_id = $1
		  AND fiscal_year = $2
		  AND status = ANY($3)
		  AND ($4::SMALLINT IS NULL OR fiscal_period <= $4)
		ORDER BY entry_date, fiscal_sequence;
	`
	rows, err := r.conn(ctx).Query(ctx, query, q.WorkspaceID, int32(q.FiscalYear), statuses, maxPeriod)
	if err != nil {
		return nil, translateError(err, "query period entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, translateError(err, "scan period entries")
	}
	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, nil
}

// TransitionStatus applies a status change only while the row still holds change.From.
func (r *PgxEntryRepository) TransitionStatus(ctx context.Context, change domain.StatusChange) error {
	prefix, ok := stampColumns[change.To]
	if !ok {
		return fmt.Errorf("%w: no transition leads to %s", apperrors.ErrInvalidTransition, change.To)
	}
	query := fmt.Sprintf(`
		UPDATE journal_entries
		SET status = $1, %[1]s_at = $2, %[1]s_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE workspace_id = $4 AND entry_id = $5 AND status = $6;
	`, prefix)

	tag, err := r.conn(ctx).Exec(ctx, query,
		string(change.To), change.At, change.UserID,
		change.WorkspaceID, change.EntryID, string(change.From))
	if err != nil {
		return translateError(err, "transition entry "+change.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, change.WorkspaceID, change.EntryID,
			fmt.Sprintf("entry is no longer %s", change.From))
	}
	return nil
}

// UpdateEntryDetails rewrites the header text of a DRAFT or POSTED entry.
func (r *PgxEntryRepository) UpdateEntryDetails(ctx context.Context, workspaceID, entryID, description string, externalReference *string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET description = $1, external_reference = $2, last_updated_at = $3, last_updated_by = $4
		WHERE workspace_id = $5 AND entry_id = $6 AND status IN ('DRAFT', 'POSTED');
	`
	tag, err := r.conn(ctx).Exec(ctx, query, description, externalReference, now, userID, workspaceID, entryID)
	if err != nil {
		return translateError(err, "update entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, workspaceID, entryID, "entry can no longer be edited")
	}
	return nil
}

// missOrConflict explains an update that matched no row.
func (r *PgxEntryRepository) missOrConflict(ctx context.Context, workspaceID, entryID, reason string) error {
	var status string
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE workspace_id = $1 AND entry_id = $2;`,
		workspaceID, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEntryNotFound
		}
		return translateError(err, "check entry "+entryID)
	}
	return fmt.Errorf("%w: %s (now %s)", apperrors.ErrInvalidTransition, reason, status)
}
