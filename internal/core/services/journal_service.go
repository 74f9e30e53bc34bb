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

// journalService manages the books entries are recorded in.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	reader      *CachedJournalReader
	now         func() time.Time
}

// NewJournalService creates the journal registry. reader must wrap journalRepo.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, reader *CachedJournalReader) portssvc.JournalSvcFacade {
	if reader == nil {
		reader = NewCachedJournalReader(journalRepo, 0)
	}
	return &journalService{
		journalRepo: journalRepo,
		reader:      reader,
		now:         time.Now,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, workspaceID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	if !domain.IsValidJournalCode(req.Code) {
		return nil, fmt.Errorf("%w: journal code %q must be 2 to 4 uppercase letters or digits", apperrors.ErrValidation, req.Code)
	}
	if !req.JournalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown journal type %q", apperrors.ErrValidation, req.JournalType)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: journal name is required", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		Code:        req.Code,
		Name:        req.Name,
		JournalType: req.JournalType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save journal", slog.String("journal_code", req.Code))
		}
		return nil, err
	}
	s.reader.Remember(journal)

	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_code", journal.Code))
	return &journal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, workspaceID string, journalID string) (*domain.Journal, error) {
	return s.reader.FindJournalByID(ctx, workspaceID, journalID)
}

func (s *journalService) GetJournalByCode(ctx context.Context, workspaceID string, code string) (*domain.Journal, error) {
	return s.reader.FindJournalByCode(ctx, workspaceID, code)
}

func (s *journalService) ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error) {
	journals, err := s.reader.ListJournals(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, err
	}
	return journals, nil
}

func (s *journalService) InitializeDefaultJournals(ctx context.Context, workspaceID string, userID string) (*dto.DefaultJournalsResult, error) {
	defaults, err := DefaultJournals()
	if err != nil {
		return nil, err
	}

	result := &dto.DefaultJournalsResult{}
	for _, j := range defaults {
		req := dto.CreateJournalRequest{Code: j.Code, Name: j.Name, JournalType: j.JournalType}
		if _, err := s.CreateJournal(ctx, workspaceID, req, userID); err != nil {
			result.Skipped++
			if !errors.Is(err, apperrors.ErrDuplicate) {
				s.LogWarn(ctx, "Default journal not created",
					slog.String("journal_code", j.Code),
					slog.String("error", err.Error()))
			}
			continue
		}
		result.Created++
	}

	s.LogInfo(ctx, "Default journals initialized",
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped))
	return result, nil
}
