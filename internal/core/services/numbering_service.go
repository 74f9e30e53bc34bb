package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

// numberingService formats entry numbers around a store-backed counter.
// Uniqueness comes from the counter being incremented atomically inside the
// creating transaction and from the unique constraints behind SaveEntry.
type numberingService struct {
	BaseService
	sequences portsrepo.SequenceAllocator
}

// NewNumberingService creates the entry numbering service.
func NewNumberingService(sequences portsrepo.SequenceAllocator) portssvc.EntryNumberer {
	return &numberingService{sequences: sequences}
}

var _ portssvc.EntryNumberer = (*numberingService)(nil)

// Allocate returns "{journalCode}-{fiscalYear}-{seq:04d}" and the raw sequence.
// Call it with the ctx of the transaction that persists the entry.
func (s *numberingService) Allocate(ctx context.Context, workspaceID string, journalCode string, fiscalYear int) (string, int64, error) {
	seq, err := s.sequences.NextSequence(ctx, workspaceID, journalCode, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate entry sequence",
			slog.String("journal_code", journalCode),
			slog.Int("fiscal_year", fiscalYear))
		return "", 0, fmt.Errorf("allocate sequence for %s/%d: %w", journalCode, fiscalYear, err)
	}

	number := domain.FormatEntryNumber(journalCode, fiscalYear, seq)
	s.LogDebug(ctx, "Entry number allocated", slog.String("entry_number", number))
	return number, seq, nil
}
