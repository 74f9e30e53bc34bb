package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, workspaceID string, accountID string) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its number within a workspace.
	GetAccountByNumber(ctx context.Context, workspaceID string, number string) (*domain.Account, error)

	// ListAccounts retrieves the accounts of a workspace ordered by number.
	ListAccounts(ctx context.Context, workspaceID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new, active account.
	CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates the label, description or direct posting flag of an account.
	UpdateAccount(ctx context.Context, workspaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// ReparentAccount assigns or clears the parent of an account, rejecting cycles.
	ReparentAccount(ctx context.Context, workspaceID string, accountID string, parentAccountID *string, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string) error

	// InitializeDefaultChart seeds the standard chart of accounts. Existing
	// accounts and per-item failures are skipped.
	InitializeDefaultChart(ctx context.Context, workspaceID string, userID string) (*dto.DefaultChartResult, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
