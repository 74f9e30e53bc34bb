package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func (s *Store) SaveJournal(ctx context.Context, journal domain.Journal) error {
	return s.write(ctx, func(d *state) error {
		k := key(journal.WorkspaceID, journal.Code)
		if _, taken := d.journalByCode[k]; taken {
			return apperrors.ErrDuplicateJournal
		}
		d.journals[journal.JournalID] = journal
		d.journalByCode[k] = journal.JournalID
		return nil
	})
}

func (s *Store) FindJournalByID(ctx context.Context, workspaceID, journalID string) (*domain.Journal, error) {
	var found domain.Journal
	err := s.read(ctx, func(d *state) error {
		j, ok := d.journals[journalID]
		if !ok || j.WorkspaceID != workspaceID {
			return apperrors.ErrJournalNotFound
		}
		found = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Store) FindJournalByCode(ctx context.Context, workspaceID, code string) (*domain.Journal, error) {
	var found domain.Journal
	err := s.read(ctx, func(d *state) error {
		id, ok := d.journalByCode[key(workspaceID, code)]
		if !ok {
			return apperrors.ErrJournalNotFound
		}
		found = d.journals[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *Store) ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error) {
	var out []domain.Journal
	err := s.read(ctx, func(d *state) error {
		for _, j := range d.journals {
			if j.WorkspaceID == workspaceID {
				out = append(out, j)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Journal) int { return strings.Compare(a.Code, b.Code) })
	return out, err
}
