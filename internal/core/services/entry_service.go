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

const (
	defaultEntryPageSize   = 20
	defaultCreateAttempts  = 5
	defaultCreateBaseDelay = 10 * time.Millisecond
)

// entryService implements the journal entry lifecycle.
type entryService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountReader
	journals    portsrepo.JournalReader
	numberer    portssvc.EntryNumberer
	retry       retryPolicy
	now         func() time.Time
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithCreateRetry sets how many times entry creation is attempted and the
// base delay of the exponential backoff between attempts.
func WithCreateRetry(maxAttempts int, baseDelay time.Duration) EntryServiceOption {
	return func(s *entryService) {
		if maxAttempts > 0 {
			s.retry.maxAttempts = maxAttempts
		}
		if baseDelay >= 0 {
			s.retry.baseDelay = baseDelay
		}
	}
}

// WithEntryClock overrides the time source, for tests.
func WithEntryClock(now func() time.Time) EntryServiceOption {
	return func(s *entryService) {
		s.now = now
	}
}

// NewEntryService creates the entry lifecycle manager.
func NewEntryService(
	txManager portsrepo.TransactionManager,
	entryRepo portsrepo.EntryRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	journals portsrepo.JournalReader,
	numberer portssvc.EntryNumberer,
	options ...EntryServiceOption,
) portssvc.EntrySvcFacade {
	svc := &entryService{
		txManager:   txManager,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		journals:    journals,
		numberer:    numberer,
		retry:       retryPolicy{maxAttempts: defaultCreateAttempts, baseDelay: defaultCreateBaseDelay},
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// toLineInputs converts request lines to minor units. It returns every line it
// could convert along with the first conversion error.
func toLineInputs(reqLines []dto.EntryLineRequest) ([]domain.LineInput, error) {
	lines := make([]domain.LineInput, len(reqLines))
	var firstErr error
	for i, l := range reqLines {
		debit, err := domain.ParseAmount(l.Debit)
		if err == nil {
			var credit domain.Amount
			credit, err = domain.ParseAmount(l.Credit)
			lines[i].Credit = credit
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%w: line %d: %v", apperrors.ErrInvalidLine, i+1, err)
		}
		lines[i].AccountID = l.AccountID
		lines[i].AccountNumber = l.AccountNumber
		lines[i].Label = l.Label
		lines[i].Debit = debit
		lines[i].CostCenter = l.CostCenter
		lines[i].AnalyticTags = l.AnalyticTags
	}
	return lines, firstErr
}

func (s *entryService) CreateEntry(ctx context.Context, workspaceID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	inputs, convErr := toLineInputs(req.Lines)
	if convErr != nil && len(inputs) >= 2 {
		return nil, convErr
	}
	if err := ValidateLines(inputs); err != nil {
		s.LogDebug(ctx, "Entry rejected by validator", slog.String("error", err.Error()))
		return nil, err
	}

	entryDate, err := time.Parse(dto.DateLayout, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: entry date %q must be formatted as %s", apperrors.ErrValidation, req.EntryDate, dto.DateLayout)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}

	journal, err := s.journals.FindJournalByID(ctx, workspaceID, req.JournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrJournalNotFound, req.JournalID)
		}
		s.LogError(ctx, err, "Failed to resolve journal", slog.String("journal_id", req.JournalID))
		return nil, err
	}
	if !journal.IsActive {
		return nil, fmt.Errorf("%w: journal %s is inactive", apperrors.ErrValidation, journal.Code)
	}

	accounts, err := s.resolveAccounts(ctx, workspaceID, inputs)
	if err != nil {
		return nil, err
	}

	fiscalYear, fiscalPeriod := domain.FiscalCalendar(entryDate)
	total := totalDebit(inputs)

	var created domain.JournalEntry
	err = s.retry.run(ctx, func(int) error {
		return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
			number, seq, err := s.numberer.Allocate(txCtx, workspaceID, journal.Code, fiscalYear)
			if err != nil {
				return err
			}

			now := s.now().UTC()
			entry := domain.JournalEntry{
				EntryID:           uuid.NewString(),
				WorkspaceID:       workspaceID,
				EntryNumber:       number,
				JournalID:         journal.JournalID,
				JournalCode:       journal.Code,
				EntryDate:         entryDate,
				Description:       req.Description,
				ExternalReference: req.ExternalReference,
				Status:            domain.Draft,
				FiscalYear:        fiscalYear,
				FiscalPeriod:      fiscalPeriod,
				FiscalSequence:    seq,
				TotalAmount:       total,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}

			lines := make([]domain.JournalEntryLine, len(inputs))
			for i, in := range inputs {
				account := accounts[i]
				lines[i] = domain.JournalEntryLine{
					EntryID:       entry.EntryID,
					LineNumber:    i + 1,
					AccountID:     account.AccountID,
					AccountNumber: account.Number,
					Label:         in.Label,
					Debit:         in.Debit,
					Credit:        in.Credit,
					CostCenter:    in.CostCenter,
					AnalyticTags:  in.AnalyticTags,
				}
			}

			if err := s.entryRepo.SaveEntry(txCtx, entry, lines); err != nil {
				return err
			}
			created = entry
			return nil
		})
	}, func(attempt int, err error) {
		s.LogWarn(ctx, "Retrying entry creation",
			slog.Int("attempt", attempt+1),
			slog.String("journal_code", journal.Code),
			slog.String("error", err.Error()))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create entry", slog.String("journal_code", journal.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Entry created",
		slog.String("entry_id", created.EntryID),
		slog.String("entry_number", created.EntryNumber),
		slog.String("total", created.TotalAmount.String()))
	return &created, nil
}

// resolveAccounts returns, per input line, the account it posts to.
func (s *entryService) resolveAccounts(ctx context.Context, workspaceID string, inputs []domain.LineInput) ([]domain.Account, error) {
	var ids, numbers []string
	for _, in := range inputs {
		if in.AccountID != "" {
			// malformed ids stay out of the lookup and surface as unknown accounts
			if _, err := uuid.Parse(in.AccountID); err == nil {
				ids = append(ids, in.AccountID)
			}
		} else {
			numbers = append(numbers, in.AccountNumber)
		}
	}

	byID, err := s.accountRepo.FindAccountsByIDs(ctx, workspaceID, uniqueStrings(ids))
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts by id")
		return nil, err
	}
	byNumber, err := s.accountRepo.FindAccountsByNumbers(ctx, workspaceID, uniqueStrings(numbers))
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts by number")
		return nil, err
	}

	resolved := make([]domain.Account, len(inputs))
	for i, in := range inputs {
		var (
			account domain.Account
			ok      bool
			ref     string
		)
		if in.AccountID != "" {
			account, ok = byID[in.AccountID]
			ref = in.AccountID
		} else {
			account, ok = byNumber[in.AccountNumber]
			ref = in.AccountNumber
		}
		switch {
		case !ok:
			return nil, fmt.Errorf("%w: line %d references unknown account %q", apperrors.ErrAccountNotFound, i+1, ref)
		case in.AccountID != "" && in.AccountNumber != "" && in.AccountNumber != account.Number:
			return nil, fmt.Errorf("%w: line %d account id and number disagree", apperrors.ErrInvalidLine, i+1)
		case !account.IsActive:
			return nil, fmt.Errorf("%w: line %d posts to inactive account %s", apperrors.ErrValidation, i+1, account.Number)
		case !account.AllowDirectPosting:
			return nil, fmt.Errorf("%w: account %s does not allow direct posting", apperrors.ErrValidation, account.Number)
		}
		resolved[i] = account
	}
	return resolved, nil
}

func (s *entryService) GetEntryByID(ctx context.Context, workspaceID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, workspaceID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) GetEntryLines(ctx context.Context, workspaceID string, entryID string) ([]domain.JournalEntryLine, error) {
	if _, err := s.GetEntryByID(ctx, workspaceID, entryID); err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get entry lines", slog.String("entry_id", entryID))
		return nil, err
	}
	return lines, nil
}

func (s *entryService) ListEntries(ctx context.Context, workspaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := domain.EntryFilter{
		JournalID: params.JournalID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultEntryPageSize
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}
	var err error
	if filter.DateFrom, err = parseOptionalDate(params.DateFrom); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseOptionalDate(params.DateTo); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, workspaceID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q must be formatted as %s", apperrors.ErrValidation, *value, dto.DateLayout)
	}
	return &t, nil
}

func (s *entryService) UpdateEntry(ctx context.Context, workspaceID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, workspaceID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.IsEditable() {
		return nil, fmt.Errorf("%w: %s entries cannot be edited", apperrors.ErrInvalidTransition, entry.Status)
	}

	description := entry.Description
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: entry description cannot be empty", apperrors.ErrValidation)
		}
		description = *req.Description
	}
	externalReference := entry.ExternalReference
	if req.ExternalReference != nil {
		externalReference = req.ExternalReference
	}

	if err := s.entryRepo.UpdateEntryDetails(ctx, workspaceID, entryID, description, externalReference, userID, s.now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry updated", slog.String("entry_id", entryID))
	return s.GetEntryByID(ctx, workspaceID, entryID)
}

func (s *entryService) PostEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, workspaceID, entryID, domain.Posted, userID)
}

func (s *entryService) ValidateEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, workspaceID, entryID, domain.Validated, userID)
}

func (s *entryService) CancelEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, workspaceID, entryID, domain.Cancelled, userID)
}

// transition applies a status change conditioned on the status observed
// here. A concurrent change in between makes the store refuse it.
func (s *entryService) transition(ctx context.Context, workspaceID, entryID string, to domain.EntryStatus, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, workspaceID, entryID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(entry.Status, to) {
		return nil, fmt.Errorf("%w: %s cannot move from %s to %s",
			apperrors.ErrInvalidTransition, entry.EntryNumber, entry.Status, to)
	}

	change := domain.StatusChange{
		EntryID:     entryID,
		WorkspaceID: workspaceID,
		From:        entry.Status,
		To:          to,
		UserID:      userID,
		At:          s.now().UTC(),
	}
	if err := s.entryRepo.TransitionStatus(ctx, change); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogWarn(ctx, "Entry status changed concurrently",
				slog.String("entry_id", entryID),
				slog.String("from", string(entry.Status)),
				slog.String("to", string(to)))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to change entry status", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry status changed",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("from", string(entry.Status)),
		slog.String("to", string(to)))
	return s.GetEntryByID(ctx, workspaceID, entryID)
}

func uniqueStrings(input []string) []string {
	if len(input) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
