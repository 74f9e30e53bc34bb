package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, func(d *state) error {
		k := key(account.WorkspaceID, account.Number)
		if _, taken := d.accountByNum[k]; taken {
			return apperrors.ErrDuplicateAccount
		}
		if _, taken := d.accounts[account.AccountID]; taken {
			return apperrors.ErrDuplicate
		}
		d.accounts[account.AccountID] = account
		d.accountByNum[k] = account.AccountID
		return nil
	})
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, func(d *state) error {
		current, ok := d.accounts[account.AccountID]
		if !ok || current.WorkspaceID != account.WorkspaceID {
			return apperrors.ErrAccountNotFound
		}
		current.Label = account.Label
		current.Description = account.Description
		current.AllowDirectPosting = account.AllowDirectPosting
		current.LastUpdatedAt = account.LastUpdatedAt
		current.LastUpdatedBy = account.LastUpdatedBy
		d.accounts[account.AccountID] = current
		return nil
	})
}

func (s *Store) UpdateParent(ctx context.Context, workspaceID, accountID, expectedParentID, newParentID, userID string, now time.Time) error {
	return s.write(ctx, func(d *state) error {
		current, ok := d.accounts[accountID]
		if !ok || current.WorkspaceID != workspaceID {
			return apperrors.ErrAccountNotFound
		}
		if current.ParentAccountID != expectedParentID {
			return fmt.Errorf("%w: parent of account %s changed concurrently", apperrors.ErrConflict, accountID)
		}
		current.ParentAccountID = newParentID
		current.LastUpdatedAt = now
		current.LastUpdatedBy = userID
		d.accounts[accountID] = current
		return nil
	})
}

// LockHierarchy is satisfied by WithinTx, which already serialises writers.
func (s *Store) LockHierarchy(ctx context.Context, workspaceID string) error {
	return ctx.Err()
}

func (s *Store) DeactivateAccount(ctx context.Context, workspaceID, accountID, userID string, now time.Time) error {
	return s.write(ctx, func(d *state) error {
		current, ok := d.accounts[accountID]
		if !ok || current.WorkspaceID != workspaceID {
			return apperrors.ErrAccountNotFound
		}
		current.IsActive = false
		current.LastUpdatedAt = now
		current.LastUpdatedBy = userID
		d.accounts[accountID] = current
		return nil
	})
}

func (s *Store) FindAccountByID(ctx context.Context, workspaceID, accountID string) (*domain.Account, error) {
	var found domain.Account
	err := s.read(ctx, func(d *state) error {
		a, ok := d.accounts[accountID]
		if !ok || a.WorkspaceID != workspaceID {
			return apperrors.ErrAccountNotFound
		}
		found = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Store) FindAccountByNumber(ctx context.Context, workspaceID, number string) (*domain.Account, error) {
	var found domain.Account
	err := s.read(ctx, func(d *state) error {
		id, ok := d.accountByNum[key(workspaceID, number)]
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		found = d.accounts[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, workspaceID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	err := s.read(ctx, func(d *state) error {
		for _, id := range accountIDs {
			if a, ok := d.accounts[id]; ok && a.WorkspaceID == workspaceID {
				out[id] = a
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) FindAccountsByNumbers(ctx context.Context, workspaceID string, numbers []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(numbers))
	err := s.read(ctx, func(d *state) error {
		for _, n := range numbers {
			if id, ok := d.accountByNum[key(workspaceID, n)]; ok {
				out[n] = d.accounts[id]
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListAccounts(ctx context.Context, workspaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	err := s.read(ctx, func(d *state) error {
		for _, a := range d.accounts {
			if a.WorkspaceID != workspaceID {
				continue
			}
			if filter.Class != nil && a.Class != *filter.Class {
				continue
			}
			if filter.Active != nil && a.IsActive != *filter.Active {
				continue
			}
			out = append(out, a)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Account) int { return strings.Compare(a.Number, b.Number) })
	return out, err
}
