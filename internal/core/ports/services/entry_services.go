package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry header.
	GetEntryByID(ctx context.Context, workspaceID string, entryID string) (*domain.JournalEntry, error)

	// GetEntryLines retrieves the lines of an entry ordered by line number.
	GetEntryLines(ctx context.Context, workspaceID string, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a page of entries, newest entry date first.
	ListEntries(ctx context.Context, workspaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines the entry lifecycle.
type EntryWriterSvc interface {
	// CreateEntry validates, numbers and persists a DRAFT entry with its lines.
	CreateEntry(ctx context.Context, workspaceID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateEntry changes description or external reference while DRAFT or POSTED.
	UpdateEntry(ctx context.Context, workspaceID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry moves a DRAFT entry to POSTED.
	PostEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ValidateEntry moves a POSTED entry to VALIDATED. This is irreversible.
	ValidateEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error)

	// CancelEntry moves a DRAFT or POSTED entry to CANCELLED.
	CancelEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// EntryNumberer allocates entry numbers.
type EntryNumberer interface {
	// Allocate returns the next entry number for a journal and fiscal year.
	Allocate(ctx context.Context, workspaceID string, journalCode string, fiscalYear int) (string, int64, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
