package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

// DefaultTrialBalanceStatuses are the entry statuses folded into a trial balance
// unless configured otherwise.
var DefaultTrialBalanceStatuses = []domain.EntryStatus{domain.Posted, domain.Validated}

// reportingService computes the trial balance from entries and lines.
type reportingService struct {
	BaseService
	entryRepo   portsrepo.EntryReader
	accountRepo portsrepo.AccountReader
	statuses    []domain.EntryStatus
	now         func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithTrialBalanceStatuses sets which entry statuses count towards the trial balance.
func WithTrialBalanceStatuses(statuses []domain.EntryStatus) ReportingServiceOption {
	return func(s *reportingService) {
		if len(statuses) > 0 {
			s.statuses = statuses
		}
	}
}

// NewReportingService creates the trial balance aggregator.
func NewReportingService(entryRepo portsrepo.EntryReader, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		statuses:    DefaultTrialBalanceStatuses,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, workspaceID string, fiscalYear int, fiscalPeriod *int) (*domain.TrialBalance, error) {
	if fiscalPeriod != nil && (*fiscalPeriod < 1 || *fiscalPeriod > 12) {
		return nil, fmt.Errorf("%w: fiscal period %d is outside 1..12", apperrors.ErrValidation, *fiscalPeriod)
	}

	entries, err := s.entryRepo.FindEntriesForPeriod(ctx, domain.PeriodQuery{
		WorkspaceID: workspaceID,
		FiscalYear:  fiscalYear,
		MaxPeriod:   fiscalPeriod,
		Statuses:    s.statuses,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for trial balance", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesByEntry, err := s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load lines for trial balance")
		return nil, err
	}

	type totals struct {
		accountID     string
		debit, credit domain.Amount
	}
	byNumber := make(map[string]*totals)
	var accountIDs []string
	for _, entryID := range entryIDs {
		for _, line := range linesByEntry[entryID] {
			t, ok := byNumber[line.AccountNumber]
			if !ok {
				t = &totals{accountID: line.AccountID}
				byNumber[line.AccountNumber] = t
				accountIDs = append(accountIDs, line.AccountID)
			}
			t.debit += line.Debit
			t.credit += line.Credit
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, workspaceID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for trial balance")
		return nil, err
	}

	report := &domain.TrialBalance{
		WorkspaceID:  workspaceID,
		FiscalYear:   fiscalYear,
		FiscalPeriod: fiscalPeriod,
		Statuses:     s.statuses,
		EntryCount:   len(entries),
		Rows:         make([]domain.TrialBalanceRow, 0, len(byNumber)),
		GeneratedAt:  s.now().UTC(),
	}
	for number, t := range byNumber {
		row := domain.TrialBalanceRow{
			AccountNumber: number,
			PeriodDebit:   t.debit,
			PeriodCredit:  t.credit,
			ClosingDebit:  t.debit,
			ClosingCredit: t.credit,
		}
		// Lines keep their account number even if the account later disappears.
		if account, ok := accounts[t.accountID]; ok {
			row.AccountLabel = account.Label
			row.AccountType = account.AccountType
		}
		report.Rows = append(report.Rows, row)
		report.Totals.PeriodDebit += t.debit
		report.Totals.PeriodCredit += t.credit
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountNumber < report.Rows[j].AccountNumber
	})
	report.Totals.Balanced = report.Totals.PeriodDebit == report.Totals.PeriodCredit

	if !report.Totals.Balanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.Int("fiscal_year", fiscalYear),
			slog.String("debit", report.Totals.PeriodDebit.String()),
			slog.String("credit", report.Totals.PeriodCredit.String()))
	}
	return report, nil
}
