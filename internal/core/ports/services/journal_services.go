package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations for journals (books).
type JournalReaderSvc interface {
	GetJournalByID(ctx context.Context, workspaceID string, journalID string) (*domain.Journal, error)
	GetJournalByCode(ctx context.Context, workspaceID string, code string) (*domain.Journal, error)
	ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journals.
type JournalWriterSvc interface {
	CreateJournal(ctx context.Context, workspaceID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// InitializeDefaultJournals creates VT, AC, BQ, CA and OD. Existing codes are skipped.
	InitializeDefaultJournals(ctx context.Context, workspaceID string, userID string) (*dto.DefaultJournalsResult, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
