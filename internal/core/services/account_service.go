package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

// maxAccountDepth bounds the ancestry walk of ReparentAccount.
const maxAccountDepth = 64

// accountService implements the chart of accounts.
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the time source, for tests.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(txManager portsrepo.TransactionManager, repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:   txManager,
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	class := domain.AccountClass(req.Class)
	switch {
	case !domain.IsValidAccountNumber(req.Number):
		return nil, fmt.Errorf("%w: account number %q must have 3 to 12 digits", apperrors.ErrValidation, req.Number)
	case !req.AccountType.IsValid():
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	case !class.IsValid():
		return nil, fmt.Errorf("%w: account class %d is outside 1..9", apperrors.ErrValidation, req.Class)
	case domain.ClassOfNumber(req.Number) != class:
		return nil, fmt.Errorf("%w: account number %s does not belong to class %d", apperrors.ErrValidation, req.Number, req.Class)
	case req.Label == "":
		return nil, fmt.Errorf("%w: account label is required", apperrors.ErrValidation)
	}

	// The unique constraint is authoritative; this only gives a clean error in the common case.
	if existing, err := s.accountRepo.FindAccountByNumber(ctx, workspaceID, req.Number); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccount, req.Number)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account number", slog.String("account_number", req.Number))
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.findParent(ctx, workspaceID, *req.ParentAccountID)
		if err != nil {
			return nil, err
		}
		parentID = parent.AccountID
	}

	allowDirectPosting := true
	if req.AllowDirectPosting != nil {
		allowDirectPosting = *req.AllowDirectPosting
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		WorkspaceID:        workspaceID,
		Number:             req.Number,
		Label:              req.Label,
		Description:        req.Description,
		AccountType:        req.AccountType,
		Class:              class,
		ParentAccountID:    parentID,
		AllowDirectPosting: allowDirectPosting,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_number", account.Number))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.Number))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workspaceID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, workspaceID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByNumber(ctx context.Context, workspaceID string, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, workspaceID, number)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by number", slog.String("account_number", number))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, workspaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	if filter.Class != nil && !filter.Class.IsValid() {
		return nil, fmt.Errorf("%w: account class %d is outside 1..9", apperrors.ErrValidation, *filter.Class)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, workspaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, workspaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, workspaceID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		if *req.Label == "" {
			return nil, fmt.Errorf("%w: account label cannot be empty", apperrors.ErrValidation)
		}
		account.Label = *req.Label
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.AllowDirectPosting != nil {
		account.AllowDirectPosting = *req.AllowDirectPosting
	}
	account.LastUpdatedAt = s.now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) ReparentAccount(ctx context.Context, workspaceID string, accountID string, parentAccountID *string, userID string) (*domain.Account, error) {
	var updated *domain.Account
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.accountRepo.LockHierarchy(txCtx, workspaceID); err != nil {
			return err
		}
		account, err := s.accountRepo.FindAccountByID(txCtx, workspaceID, accountID)
		if err != nil {
			return err
		}

		newParent := ""
		if parentAccountID != nil && *parentAccountID != "" {
			if *parentAccountID == accountID {
				return fmt.Errorf("%w: account %s cannot be its own parent", apperrors.ErrAccountCycle, account.Number)
			}
			parent, err := s.findParent(txCtx, workspaceID, *parentAccountID)
			if err != nil {
				return err
			}
			if err := s.checkAncestry(txCtx, workspaceID, accountID, parent); err != nil {
				return err
			}
			newParent = parent.AccountID
		}

		now := s.now().UTC()
		if err := s.accountRepo.UpdateParent(txCtx, workspaceID, accountID, account.ParentAccountID, newParent, userID, now); err != nil {
			return err
		}
		account.ParentAccountID = newParent
		account.LastUpdatedAt = now
		account.LastUpdatedBy = userID
		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reparent account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account parent changed",
		slog.String("account_id", accountID),
		slog.String("parent_account_id", updated.ParentAccountID))
	return updated, nil
}

// checkAncestry walks up from parent and fails if accountID is found on the way.
func (s *accountService) checkAncestry(ctx context.Context, workspaceID, accountID string, parent *domain.Account) error {
	current := parent
	for depth := 0; current.ParentAccountID != ""; depth++ {
		if current.ParentAccountID == accountID {
			return fmt.Errorf("%w: %s is an ancestor of the requested parent", apperrors.ErrAccountCycle, accountID)
		}
		if depth >= maxAccountDepth {
			return fmt.Errorf("%w: account hierarchy deeper than %d levels", apperrors.ErrAccountCycle, maxAccountDepth)
		}
		next, err := s.accountRepo.FindAccountByID(ctx, workspaceID, current.ParentAccountID)
		if err != nil {
			return fmt.Errorf("load ancestor %s: %w", current.ParentAccountID, err)
		}
		current = next
	}
	return nil
}

func (s *accountService) findParent(ctx context.Context, workspaceID, parentID string) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, workspaceID, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent account %s does not exist in this workspace", apperrors.ErrValidation, parentID)
		}
		s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
		return nil, err
	}
	return parent, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, workspaceID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, workspaceID, accountID, userID, s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) InitializeDefaultChart(ctx context.Context, workspaceID string, userID string) (*dto.DefaultChartResult, error) {
	chart, err := DefaultChart()
	if err != nil {
		return nil, err
	}

	result := &dto.DefaultChartResult{}
	for _, seed := range chart {
		req := dto.CreateAccountRequest{
			Number:      seed.Number,
			Label:       seed.Label,
			AccountType: seed.AccountType,
			Class:       int(seed.Class),
		}
		if _, err := s.CreateAccount(ctx, workspaceID, req, userID); err != nil {
			result.Skipped++
			if errors.Is(err, apperrors.ErrDuplicate) {
				s.LogDebug(ctx, "Default account already present", slog.String("account_number", seed.Number))
				continue
			}
			s.LogWarn(ctx, "Default account not created",
				slog.String("account_number", seed.Number),
				slog.String("error", err.Error()))
			continue
		}
		result.Created++
	}

	s.LogInfo(ctx, "Default chart initialized",
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped))
	return result, nil
}
