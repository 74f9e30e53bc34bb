package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, workspace_id, account_number, label, description, account_type, account_class,
	parent_account_id, allow_direct_posting, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.AccountID,
		m.WorkspaceID,
		m.AccountNumber,
		m.Label,
		m.Description,
		m.AccountType,
		m.AccountClass,
		m.ParentAccountID,
		m.AllowDirectPosting,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("save account %s", m.AccountNumber))
	}
	return nil
}

// UpdateAccount writes the mutable columns of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET label = $1, description = $2, allow_direct_posting = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE workspace_id = $6 AND account_id = $7;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.Label, m.Description, m.AllowDirectPosting,
		m.LastUpdatedAt, m.LastUpdatedBy, m.WorkspaceID, m.AccountID)
	if err != nil {
		return translateError(err, fmt.Sprintf("update account %s", m.AccountID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// UpdateParent moves an account in the hierarchy if its parent is still the
// one the caller read.
func (r *PgxAccountRepository) UpdateParent(ctx context.Context, workspaceID, accountID, expectedParentID, newParentID, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET parent_account_id = $1::uuid, last_updated_at = $2, last_updated_by = $3
		WHERE workspace_id = $4 AND account_id = $5 AND parent_account_id IS NOT DISTINCT FROM $6::uuid;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		nullableID(newParentID), now, userID, workspaceID, accountID, nullableID(expectedParentID))
	if err != nil {
		return translateError(err, fmt.Sprintf("update parent of account %s", accountID))
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindAccountByID(ctx, workspaceID, accountID); err != nil {
			return err
		}
		return fmt.Errorf("%w: parent of account %s changed concurrently", apperrors.ErrConflict, accountID)
	}
	return nil
}

// LockHierarchy takes a transaction-scoped advisory lock keyed by workspace.
func (r *PgxAccountRepository) LockHierarchy(ctx context.Context, workspaceID string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended('account_hierarchy:' || $1::text, 0));`
	if _, err := r.conn(ctx).Exec(ctx, query, workspaceID); err != nil {
		return translateError(err, "lock account hierarchy")
	}
	return nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// DeactivateAccount marks an account inactive. Its history stays untouched.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, workspaceID, accountID, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE workspace_id = $3 AND account_id = $4;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, now, userID, workspaceID, accountID)
	if err != nil {
		return translateError(err, fmt.Sprintf("deactivate account %s", accountID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, workspaceID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workspace_id = $1 AND account_id = $2;`
	return r.findOne(ctx, query, workspaceID, accountID)
}

// FindAccountByNumber retrieves an account by its number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, workspaceID, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workspace_id = $1 AND account_number = $2;`
	return r.findOne(ctx, query, workspaceID, number)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "find account")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, translateError(err, "scan account")
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// It's possible not all requested IDs were found; the map simply won't contain them.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, workspaceID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workspace_id = $1 AND account_id = ANY($2);`
	accounts, err := r.collect(ctx, query, workspaceID, accountIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID, nil
}

// FindAccountsByNumbers retrieves multiple accounts keyed by number.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, workspaceID string, numbers []string) (map[string]domain.Account, error) {
	if len(numbers) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workspace_id = $1 AND account_number = ANY($2);`
	accounts, err := r.collect(ctx, query, workspaceID, numbers)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byNumber[a.Number] = a
	}
	return byNumber, nil
}

// ListAccounts retrieves the accounts of a workspace ordered by number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workspaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	var class *int16
	if filter.Class != nil {
		c := int16(*filter.Class)
		class = &c
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workspace_id = $1
		  AND ($2::SMALLINT IS NULL OR account_class = $2)
		  AND ($3::BOOLEAN IS NULL OR is_active = $3)
		ORDER BY account_number;
	`
	return r.collect(ctx, query, workspaceID, class, filter.Active)
}

func (r *PgxAccountRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "query accounts")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(err, "scan accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}
