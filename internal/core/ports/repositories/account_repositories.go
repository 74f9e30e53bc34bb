package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Lookups of a missing account return apperrors.ErrAccountNotFound.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, workspaceID string, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its number within a workspace.
	FindAccountByNumber(ctx context.Context, workspaceID string, number string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, workspaceID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by number. Missing numbers are absent from the map.
	FindAccountsByNumbers(ctx context.Context, workspaceID string, numbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the accounts of a workspace ordered by number.
	ListAccounts(ctx context.Context, workspaceID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A number already used in the
	// workspace yields apperrors.ErrDuplicateAccount.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists label, description and the direct posting flag.
	// The parent is left untouched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpdateParent sets the parent of an account (empty for a root account)
	// provided its parent is still expectedParentID. A parent changed in the
	// meantime yields apperrors.ErrConflict.
	UpdateParent(ctx context.Context, workspaceID, accountID, expectedParentID, newParentID, userID string, now time.Time) error

	// LockHierarchy serialises hierarchy changes of a workspace until the
	// surrounding transaction ends.
	LockHierarchy(ctx context.Context, workspaceID string) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
