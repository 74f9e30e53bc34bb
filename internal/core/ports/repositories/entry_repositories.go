package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// EntryReader defines read operations for journal entries and their lines.
type EntryReader interface {
	// FindEntryByID returns apperrors.ErrEntryNotFound when absent.
	FindEntryByID(ctx context.Context, workspaceID string, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error)

	// ListEntries retrieves a page of entries ordered by entry date then creation time, newest first.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, workspaceID string, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)

	// FindEntriesForPeriod retrieves every entry matching a trial balance query.
	FindEntriesForPeriod(ctx context.Context, query domain.PeriodQuery) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// SaveEntry persists an entry header and its lines. It must be called
	// inside TransactionManager.WithinTx so both land or neither does.
	// A reused entry number yields apperrors.ErrEntryNumberConflict.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// TransitionStatus moves an entry from change.From to change.To, stamping
	// the matching *_at/*_by columns. The update only applies while the entry
	// is still in change.From; otherwise it yields apperrors.ErrInvalidTransition,
	// or apperrors.ErrEntryNotFound if the entry does not exist.
	TransitionStatus(ctx context.Context, change domain.StatusChange) error

	// UpdateEntryDetails changes the description and external reference of an
	// entry that is still DRAFT or POSTED.
	UpdateEntryDetails(ctx context.Context, workspaceID string, entryID string, description string, externalReference *string, userID string, now time.Time) error
}

// SequenceAllocator hands out per journal and fiscal year entry sequences.
type SequenceAllocator interface {
	// NextSequence atomically increments and returns the counter for
	// (workspaceID, journalCode, fiscalYear), starting at 1. Inside a
	// transaction the counter row stays locked until commit.
	NextSequence(ctx context.Context, workspaceID string, journalCode string, fiscalYear int) (int64, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
