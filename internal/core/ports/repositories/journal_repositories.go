package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// JournalReader defines read operations for journals (books).
type JournalReader interface {
	// FindJournalByID returns apperrors.ErrJournalNotFound when absent.
	FindJournalByID(ctx context.Context, workspaceID string, journalID string) (*domain.Journal, error)

	// FindJournalByCode returns apperrors.ErrJournalNotFound when absent.
	FindJournalByCode(ctx context.Context, workspaceID string, code string) (*domain.Journal, error)

	// ListJournals retrieves the journals of a workspace ordered by code.
	ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journals.
type JournalWriter interface {
	// SaveJournal persists a new journal. A code already used in the
	// workspace yields apperrors.ErrDuplicateJournal.
	SaveJournal(ctx context.Context, journal domain.Journal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
