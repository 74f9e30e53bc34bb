package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockJournalReader is a mock type for the JournalReader interface
type MockJournalReader struct {
	mock.Mock
}

func (m *MockJournalReader) FindJournalByID(ctx context.Context, workspaceID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, workspaceID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalReader) FindJournalByCode(ctx context.Context, workspaceID string, code string) (*domain.Journal, error) {
	args := m.Called(ctx, workspaceID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalReader) ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

type JournalServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memory.Store
	workspaceID string
	userID      string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.workspaceID, suite.userID = newWorkspace()
}

func (suite *JournalServiceTestSuite) newService() portssvc.JournalSvcFacade {
	return services.NewJournalService(suite.store, services.NewCachedJournalReader(suite.store, time.Minute))
}

func (suite *JournalServiceTestSuite) TestCreateJournal() {
	svc := suite.newService()

	journal, err := svc.CreateJournal(suite.ctx, suite.workspaceID, dto.CreateJournalRequest{
		Code: "VT", Name: "Ventes", JournalType: domain.SalesJournal,
	}, suite.userID)
	suite.Require().NoError(err)
	suite.True(journal.IsActive)

	found, err := svc.GetJournalByCode(suite.ctx, suite.workspaceID, "VT")
	suite.Require().NoError(err)
	suite.Equal(journal.JournalID, found.JournalID)

	_, err = svc.CreateJournal(suite.ctx, suite.workspaceID, dto.CreateJournalRequest{
		Code: "VT", Name: "Ventes bis", JournalType: domain.SalesJournal,
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicateJournal)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Invalid() {
	svc := suite.newService()
	for _, req := range []dto.CreateJournalRequest{
		{Code: "vt", Name: "Ventes", JournalType: domain.SalesJournal},
		{Code: "VENTE", Name: "Ventes", JournalType: domain.SalesJournal},
		{Code: "VT", Name: "Ventes", JournalType: "PAYROLL"},
		{Code: "VT", JournalType: domain.SalesJournal},
	} {
		_, err := svc.CreateJournal(suite.ctx, suite.workspaceID, req, suite.userID)
		suite.ErrorIs(err, apperrors.ErrValidation, req.Code)
	}
}

func (suite *JournalServiceTestSuite) TestInitializeDefaultJournals_Idempotent() {
	svc := suite.newService()

	first, err := svc.InitializeDefaultJournals(suite.ctx, suite.workspaceID, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(5, first.Created)

	second, err := svc.InitializeDefaultJournals(suite.ctx, suite.workspaceID, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(0, second.Created)
	suite.Equal(5, second.Skipped)

	journals, err := svc.ListJournals(suite.ctx, suite.workspaceID)
	suite.Require().NoError(err)
	codes := make([]string, len(journals))
	for i, j := range journals {
		codes[i] = j.Code
	}
	suite.Equal([]string{"AC", "BQ", "CA", "OD", "VT"}, codes)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func TestCachedJournalReader(t *testing.T) {
	ctx := context.Background()
	ws := uuid.NewString()
	journal := &domain.Journal{JournalID: uuid.NewString(), WorkspaceID: ws, Code: "BQ", Name: "Banque", JournalType: domain.BankJournal}

	t.Run("hits are served from cache under id and code", func(t *testing.T) {
		next := new(MockJournalReader)
		next.On("FindJournalByID", mock.Anything, ws, journal.JournalID).Return(journal, nil).Once()
		reader := services.NewCachedJournalReader(next, time.Minute)

		for i := 0; i < 3; i++ {
			j, err := reader.FindJournalByID(ctx, ws, journal.JournalID)
			require.NoError(t, err)
			assert.Equal(t, "BQ", j.Code)
		}
		j, err := reader.FindJournalByCode(ctx, ws, "BQ")
		require.NoError(t, err)
		assert.Equal(t, journal.JournalID, j.JournalID)
		next.AssertExpectations(t)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		next := new(MockJournalReader)
		next.On("FindJournalByCode", mock.Anything, ws, "XX").Return(nil, apperrors.ErrJournalNotFound).Twice()
		reader := services.NewCachedJournalReader(next, time.Minute)

		for i := 0; i < 2; i++ {
			_, err := reader.FindJournalByCode(ctx, ws, "XX")
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		}
		next.AssertExpectations(t)
	})

	t.Run("zero ttl disables caching", func(t *testing.T) {
		next := new(MockJournalReader)
		next.On("FindJournalByID", mock.Anything, ws, journal.JournalID).Return(journal, nil).Twice()
		reader := services.NewCachedJournalReader(next, 0)

		for i := 0; i < 2; i++ {
			_, err := reader.FindJournalByID(ctx, ws, journal.JournalID)
			require.NoError(t, err)
		}
		next.AssertExpectations(t)
	})

	t.Run("cached journals are copies", func(t *testing.T) {
		fresh := *journal
		next := new(MockJournalReader)
		next.On("FindJournalByID", mock.Anything, ws, journal.JournalID).Return(&fresh, nil).Once()
		reader := services.NewCachedJournalReader(next, time.Minute)

		first, err := reader.FindJournalByID(ctx, ws, journal.JournalID)
		require.NoError(t, err)
		first.Name = "changed"

		second, err := reader.FindJournalByID(ctx, ws, journal.JournalID)
		require.NoError(t, err)
		assert.Equal(t, "Banque", second.Name)
	})
}
