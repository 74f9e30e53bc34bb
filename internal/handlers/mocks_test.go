package handlers_test

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, workspaceID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByNumber(ctx context.Context, workspaceID string, number string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, workspaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, workspaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ReparentAccount(ctx context.Context, workspaceID string, accountID string, parentAccountID *string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, accountID, parentAccountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string) error {
	args := m.Called(ctx, workspaceID, accountID, userID)
	return args.Error(0)
}
func (m *MockAccountService) InitializeDefaultChart(ctx context.Context, workspaceID string, userID string) (*dto.DefaultChartResult, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DefaultChartResult), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateJournal(ctx context.Context, workspaceID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) GetJournalByID(ctx context.Context, workspaceID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, workspaceID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) GetJournalByCode(ctx context.Context, workspaceID string, code string) (*domain.Journal, error) {
	args := m.Called(ctx, workspaceID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}
func (m *MockJournalService) InitializeDefaultJournals(ctx context.Context, workspaceID string, userID string) (*dto.DefaultJournalsResult, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DefaultJournalsResult), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, workspaceID string, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, workspaceID, entryID))
}
func (m *MockEntryService) GetEntryLines(ctx context.Context, workspaceID string, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, workspaceID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}
func (m *MockEntryService) ListEntries(ctx context.Context, workspaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockEntryService) CreateEntry(ctx context.Context, workspaceID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, workspaceID, req, userID))
}
func (m *MockEntryService) UpdateEntry(ctx context.Context, workspaceID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, workspaceID, entryID, req, userID))
}
func (m *MockEntryService) PostEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, workspaceID, entryID, userID))
}
func (m *MockEntryService) ValidateEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, workspaceID, entryID, userID))
}
func (m *MockEntryService) CancelEntry(ctx context.Context, workspaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, workspaceID, entryID, userID))
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, workspaceID string, fiscalYear int, fiscalPeriod *int) (*domain.TrialBalance, error) {
	args := m.Called(ctx, workspaceID, fiscalYear, fiscalPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
