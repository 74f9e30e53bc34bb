package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
)

const defaultPageSize = 20

func (s *Store) NextSequence(ctx context.Context, workspaceID, journalCode string, fiscalYear int) (int64, error) {
	var next int64
	err := s.write(ctx, func(d *state) error {
		k := seqKey{workspaceID: workspaceID, journalCode: journalCode, fiscalYear: fiscalYear}
		next = max(d.sequences[k], d.highestSequence(k)) + 1
		d.sequences[k] = next
		return nil
	})
	return next, err
}

// highestSequence is the largest sequence held by a stored entry of k, read
// from both the fiscal sequence and the entry number.
func (d *state) highestSequence(k seqKey) int64 {
	var highest int64
	for _, e := range d.entries {
		if e.WorkspaceID != k.workspaceID || e.JournalCode != k.journalCode || e.FiscalYear != k.fiscalYear {
			continue
		}
		highest = max(highest, e.FiscalSequence)
		if code, year, seq, err := domain.ParseEntryNumber(e.EntryNumber); err == nil && code == k.journalCode && year == k.fiscalYear {
			highest = max(highest, seq)
		}
	}
	return highest
}

func (s *Store) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	return s.write(ctx, func(d *state) error {
		k := key(entry.WorkspaceID, entry.EntryNumber)
		if _, taken := d.entryByNum[k]; taken {
			return fmt.Errorf("save entry %s: %w", entry.EntryNumber, apperrors.ErrEntryNumberConflict)
		}
		for _, l := range lines {
			if (l.Debit == 0) == (l.Credit == 0) || l.Debit < 0 || l.Credit < 0 {
				return fmt.Errorf("%w: line %d must carry exactly one positive side", apperrors.ErrInvalidLine, l.LineNumber)
			}
		}
		d.entries[entry.EntryID] = entry
		d.entryByNum[k] = entry.EntryID
		d.lines[entry.EntryID] = slices.Clone(lines)
		return nil
	})
}

func (s *Store) FindEntryByID(ctx context.Context, workspaceID, entryID string) (*domain.JournalEntry, error) {
	var found domain.JournalEntry
	err := s.read(ctx, func(d *state) error {
		e, ok := d.entries[entryID]
		if !ok || e.WorkspaceID != workspaceID {
			return apperrors.ErrEntryNotFound
		}
		found = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Store) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	var out []domain.JournalEntryLine
	err := s.read(ctx, func(d *state) error {
		out = slices.Clone(d.lines[entryID])
		return nil
	})
	return out, err
}

func (s *Store) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	out := make(map[string][]domain.JournalEntryLine, len(entryIDs))
	err := s.read(ctx, func(d *state) error {
		for _, id := range entryIDs {
			if ls, ok := d.lines[id]; ok {
				out[id] = slices.Clone(ls)
			}
		}
		return nil
	})
	return out, err
}

// compareNewestFirst orders entries by entry date, creation time and ID, all descending.
func compareNewestFirst(a, b domain.JournalEntry) int {
	if c := b.EntryDate.Compare(a.EntryDate); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.EntryID, a.EntryID)
}

func (s *Store) ListEntries(ctx context.Context, workspaceID string, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	var cursor *pagination.Cursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	var matched []domain.JournalEntry
	err := s.read(ctx, func(d *state) error {
		for _, e := range d.entries {
			if e.WorkspaceID != workspaceID {
				continue
			}
			if filter.JournalID != nil && e.JournalID != *filter.JournalID {
				continue
			}
			if filter.Status != nil && e.Status != *filter.Status {
				continue
			}
			if filter.DateFrom != nil && e.EntryDate.Before(*filter.DateFrom) {
				continue
			}
			if filter.DateTo != nil && e.EntryDate.After(*filter.DateTo) {
				continue
			}
			if cursor != nil && !cursor.Before(e.EntryDate, e.CreatedAt, e.EntryID) {
				continue
			}
			matched = append(matched, e)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(matched, compareNewestFirst)
	var nextToken *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		nextToken = &token
	}
	return matched, nextToken, nil
}

func (s *Store) FindEntriesForPeriod(ctx context.Context, q domain.PeriodQuery) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := s.read(ctx, func(d *state) error {
		for _, e := range d.entries {
			if e.WorkspaceID != q.WorkspaceID || e.FiscalYear != q.FiscalYear {
				continue
			}
			if q.MaxPeriod != nil && e.FiscalPeriod > *q.MaxPeriod {
				continue
			}
			if !slices.Contains(q.Statuses, e.Status) {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.JournalEntry) int {
		if c := a.EntryDate.Compare(b.EntryDate); c != 0 {
			return c
		}
		return cmp.Compare(a.FiscalSequence, b.FiscalSequence)
	})
	return out, err
}

func (s *Store) TransitionStatus(ctx context.Context, change domain.StatusChange) error {
	return s.write(ctx, func(d *state) error {
		e, ok := d.entries[change.EntryID]
		if !ok || e.WorkspaceID != change.WorkspaceID {
			return apperrors.ErrEntryNotFound
		}
		if e.Status != change.From || !domain.CanTransition(e.Status, change.To) {
			return fmt.Errorf("%w: entry is no longer %s (now %s)", apperrors.ErrInvalidTransition, change.From, e.Status)
		}

		at, by := change.At, change.UserID
		switch change.To {
		case domain.Posted:
			e.PostedAt, e.PostedBy = &at, &by
		case domain.Validated:
			e.ValidatedAt, e.ValidatedBy = &at, &by
		case domain.Cancelled:
			e.CancelledAt, e.CancelledBy = &at, &by
		}
		e.Status = change.To
		e.LastUpdatedAt = at
		e.LastUpdatedBy = by
		d.entries[e.EntryID] = e
		return nil
	})
}

func (s *Store) UpdateEntryDetails(ctx context.Context, workspaceID, entryID, description string, externalReference *string, userID string, now time.Time) error {
	return s.write(ctx, func(d *state) error {
		e, ok := d.entries[entryID]
		if !ok || e.WorkspaceID != workspaceID {
			return apperrors.ErrEntryNotFound
		}
		if !e.Status.IsEditable() {
			return fmt.Errorf("%w: entry can no longer be edited (now %s)", apperrors.ErrInvalidTransition, e.Status)
		}
		e.Description = description
		e.ExternalReference = externalReference
		e.LastUpdatedAt = now
		e.LastUpdatedBy = userID
		d.entries[entryID] = e
		return nil
	})
}
