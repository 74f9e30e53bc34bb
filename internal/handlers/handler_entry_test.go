package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) sampleEntry(status domain.EntryStatus) *domain.JournalEntry {
	now := time.Now().UTC()
	return &domain.JournalEntry{
		EntryID:      uuid.NewString(),
		WorkspaceID:  suite.workspaceID,
		EntryNumber:  "VT-2024-0001",
		JournalID:    uuid.NewString(),
		JournalCode:  "VT",
		EntryDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Invoice 42",
		Status:       status,
		FiscalYear:   2024,
		FiscalPeriod: 3,
		TotalAmount:  10000,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     suite.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: suite.userID,
		},
	}
}

func balancedEntryRequest(journalID string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		JournalID:   journalID,
		EntryDate:   "2024-03-15",
		Description: "Invoice 42",
		Lines: []dto.EntryLineRequest{
			{AccountNumber: "411000", Debit: decimal.RequireFromString("100")},
			{AccountNumber: "701000", Credit: decimal.RequireFromString("100")},
		},
	}
}

func (suite *HandlerTestSuite) TestCreateEntry_Success() {
	entry := suite.sampleEntry(domain.Draft)
	req := balancedEntryRequest(entry.JournalID)
	suite.entries.On("CreateEntry", mock.Anything, suite.workspaceID, mock.MatchedBy(func(r dto.CreateEntryRequest) bool {
		return r.JournalID == entry.JournalID && len(r.Lines) == 2 && r.Lines[0].Debit.Equal(decimal.NewFromInt(100))
	}), suite.userID).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/entries", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("VT-2024-0001", resp.EntryNumber)
	suite.Equal(domain.Draft, resp.Status)
	suite.Equal("2024-03-15", resp.EntryDate)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("100.00")))
}

func (suite *HandlerTestSuite) TestCreateEntry_LedgerErrors() {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: debits sum is 100.00 and credits sum is 90.00", apperrors.ErrUnbalancedEntry), http.StatusBadRequest, "UNBALANCED_ENTRY"},
		{fmt.Errorf("%w: got 1", apperrors.ErrInsufficientLines), http.StatusBadRequest, "INSUFFICIENT_LINES"},
		{fmt.Errorf("%w: line 2 has both debit and credit", apperrors.ErrInvalidLine), http.StatusBadRequest, "INVALID_LINE"},
		{apperrors.ErrJournalNotFound, http.StatusNotFound, "JOURNAL_NOT_FOUND"},
		{fmt.Errorf("gave up after 5 attempts: %w", apperrors.ErrEntryNumberConflict), http.StatusConflict, "ENTRY_NUMBER_CONFLICT"},
		{fmt.Errorf("gave up after 5 attempts: %w", apperrors.ErrTransient), http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
	}
	for _, tc := range cases {
		suite.Run(tc.code, func() {
			journalID := uuid.NewString()
			suite.entries.On("CreateEntry", mock.Anything, suite.workspaceID,
				mock.MatchedBy(func(r dto.CreateEntryRequest) bool { return r.JournalID == journalID }), suite.userID).
				Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/entries", balancedEntryRequest(journalID))

			suite.Equal(tc.status, w.Code)
			_, code := suite.decodeError(w)
			suite.Equal(tc.code, code)
		})
	}
}

func (suite *HandlerTestSuite) TestCreateEntry_BindErrors() {
	missingAccount := balancedEntryRequest(uuid.NewString())
	missingAccount.Lines[1].AccountNumber = ""

	badDate := balancedEntryRequest(uuid.NewString())
	badDate.EntryDate = "15/03/2024"

	noDescription := balancedEntryRequest(uuid.NewString())
	noDescription.Description = ""

	journalNotUUID := balancedEntryRequest("journal-1")

	accountNotUUID := balancedEntryRequest(uuid.NewString())
	accountNotUUID.Lines[0] = dto.EntryLineRequest{AccountID: "1;drop", Debit: decimal.NewFromInt(100)}

	tooManyLines := balancedEntryRequest(uuid.NewString())
	tooManyLines.Lines = nil
	for i := 0; i < domain.MaxEntryLines+1; i++ {
		tooManyLines.Lines = append(tooManyLines.Lines, dto.EntryLineRequest{AccountNumber: "411000", Debit: decimal.NewFromInt(1)})
	}

	for name, body := range map[string]any{
		"line without account":  missingAccount,
		"bad date":              badDate,
		"no description":        noDescription,
		"journal id not a uuid": journalNotUUID,
		"account id not a uuid": accountNotUUID,
		"too many lines":        tooManyLines,
		"amount not a number":   `{"journalID":"j","entryDate":"2024-03-15","description":"x","lines":[{"accountNumber":"411000","debit":"abc"}]}`,
	} {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/entries", body)
			suite.Equal(http.StatusBadRequest, w.Code)
			_, code := suite.decodeError(w)
			suite.Equal("VALIDATION_ERROR", code)
		})
	}
	suite.entries.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListEntries_Pagination() {
	next := "token-2"
	suite.entries.On("ListEntries", mock.Anything, suite.workspaceID, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 5 && p.Status != nil && *p.Status == "POSTED" && p.NextToken != nil && *p.NextToken == "token-1"
	})).Return(&dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses([]domain.JournalEntry{*suite.sampleEntry(domain.Posted)}),
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/entries?limit=5&status=POSTED&nextToken=token-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListEntries_InvalidQuery() {
	for _, query := range []string{"?status=OPEN", "?limit=500", "?dateFrom=2024-13-01", "?journalID=VT"} {
		w := suite.do(http.MethodGet, "/entries"+query, nil)
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
}

func (suite *HandlerTestSuite) TestGetEntryLines() {
	entryID := uuid.NewString()
	suite.entries.On("GetEntryLines", mock.Anything, suite.workspaceID, entryID).Return([]domain.JournalEntryLine{
		{EntryID: entryID, LineNumber: 1, AccountNumber: "411000", Debit: 10000},
		{EntryID: entryID, LineNumber: 2, AccountNumber: "701000", Credit: 10000},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/entries/"+entryID+"/lines", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntryLinesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)
	suite.Require().Len(resp.Lines, 2)
	suite.True(resp.Lines[0].Debit.Equal(decimal.NewFromInt(100)))
	suite.True(resp.Lines[1].Credit.Equal(decimal.NewFromInt(100)))
}

func (suite *HandlerTestSuite) TestMalformedIDsAreNotFound() {
	cases := []struct {
		method string
		path   string
		body   any
		code   string
	}{
		{http.MethodGet, "/entries/abc", nil, "ENTRY_NOT_FOUND"},
		{http.MethodGet, "/entries/abc/lines", nil, "ENTRY_NOT_FOUND"},
		{http.MethodPatch, "/entries/42", dto.UpdateEntryRequest{}, "ENTRY_NOT_FOUND"},
		{http.MethodPost, "/entries/abc/post", nil, "ENTRY_NOT_FOUND"},
		{http.MethodPost, "/entries/abc/cancel", nil, "ENTRY_NOT_FOUND"},
		{http.MethodGet, "/accounts/411000", nil, "ACCOUNT_NOT_FOUND"},
		{http.MethodPatch, "/accounts/abc", dto.UpdateAccountRequest{}, "ACCOUNT_NOT_FOUND"},
		{http.MethodPut, "/accounts/abc/parent", dto.ReparentAccountRequest{}, "ACCOUNT_NOT_FOUND"},
		{http.MethodPost, "/accounts/abc/deactivate", nil, "ACCOUNT_NOT_FOUND"},
		{http.MethodGet, "/journals/VT", nil, "JOURNAL_NOT_FOUND"},
	}
	for _, tc := range cases {
		suite.Run(tc.method+" "+tc.path, func() {
			w := suite.do(tc.method, tc.path, tc.body)
			suite.Equal(http.StatusNotFound, w.Code)
			_, code := suite.decodeError(w)
			suite.Equal(tc.code, code)
		})
	}
	suite.entries.AssertNotCalled(suite.T(), "GetEntryByID", mock.Anything, mock.Anything, mock.Anything)
	suite.accounts.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything, mock.Anything)
	suite.journals.AssertNotCalled(suite.T(), "GetJournalByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReparentAccount_ParentNotUUID() {
	parent := "401000"
	w := suite.do(http.MethodPut, "/accounts/"+uuid.NewString()+"/parent", dto.ReparentAccountRequest{ParentAccountID: &parent})
	suite.Equal(http.StatusBadRequest, w.Code)
	_, code := suite.decodeError(w)
	suite.Equal("VALIDATION_ERROR", code)
}

func (suite *HandlerTestSuite) TestTransitions() {
	posted := suite.sampleEntry(domain.Posted)
	suite.entries.On("PostEntry", mock.Anything, suite.workspaceID, posted.EntryID, suite.userID).Return(posted, nil).Once()

	w := suite.do(http.MethodPost, "/entries/"+posted.EntryID+"/post", nil)
	suite.Equal(http.StatusOK, w.Code)

	validated := suite.sampleEntry(domain.Validated)
	suite.entries.On("ValidateEntry", mock.Anything, suite.workspaceID, validated.EntryID, suite.userID).Return(validated, nil).Once()

	w = suite.do(http.MethodPost, "/entries/"+validated.EntryID+"/validate", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Validated, resp.Status)
}

func (suite *HandlerTestSuite) TestCancelValidatedEntry_Conflict() {
	entryID := uuid.NewString()
	suite.entries.On("CancelEntry", mock.Anything, suite.workspaceID, entryID, suite.userID).
		Return(nil, fmt.Errorf("%w: VT-2024-0001 cannot move from VALIDATED to CANCELLED", apperrors.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPost, "/entries/"+entryID+"/cancel", nil)

	suite.Equal(http.StatusConflict, w.Code)
	msg, code := suite.decodeError(w)
	suite.Equal("INVALID_TRANSITION", code)
	suite.Contains(msg, "VALIDATED")
}

func (suite *HandlerTestSuite) TestUpdateEntry() {
	entry := suite.sampleEntry(domain.Posted)
	description := "Invoice 42 (corrected)"
	suite.entries.On("UpdateEntry", mock.Anything, suite.workspaceID, entry.EntryID,
		mock.MatchedBy(func(r dto.UpdateEntryRequest) bool {
			return r.Description != nil && *r.Description == description
		}), suite.userID).Return(entry, nil).Once()

	w := suite.do(http.MethodPatch, "/entries/"+entry.EntryID, dto.UpdateEntryRequest{Description: &description})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCreateJournal() {
	req := dto.CreateJournalRequest{Code: "VT", Name: "Ventes", JournalType: domain.SalesJournal}
	suite.journals.On("CreateJournal", mock.Anything, suite.workspaceID, req, suite.userID).Return(&domain.Journal{
		JournalID:   uuid.NewString(),
		WorkspaceID: suite.workspaceID,
		Code:        "VT",
		Name:        "Ventes",
		JournalType: domain.SalesJournal,
		IsActive:    true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/journals", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("VT", resp.Code)
}

func (suite *HandlerTestSuite) TestCreateJournal_InvalidCode() {
	w := suite.do(http.MethodPost, "/journals", dto.CreateJournalRequest{Code: "vente", Name: "Ventes", JournalType: domain.SalesJournal})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance() {
	period := 3
	suite.reporting.On("TrialBalance", mock.Anything, suite.workspaceID, 2024,
		mock.MatchedBy(func(p *int) bool { return p != nil && *p == period })).
		Return(&domain.TrialBalance{
			WorkspaceID:  suite.workspaceID,
			FiscalYear:   2024,
			FiscalPeriod: &period,
			Statuses:     []domain.EntryStatus{domain.Posted, domain.Validated},
			EntryCount:   1,
			Rows: []domain.TrialBalanceRow{
				{AccountNumber: "411000", AccountLabel: "Clients", AccountType: domain.Asset, PeriodDebit: 10000, ClosingDebit: 10000},
				{AccountNumber: "701000", AccountLabel: "Ventes", AccountType: domain.Revenue, PeriodCredit: 10000, ClosingCredit: 10000},
			},
			Totals: domain.TrialBalanceTotals{PeriodDebit: 10000, PeriodCredit: 10000, Balanced: true},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/reports/trial-balance?fiscalYear=2024&fiscalPeriod=3", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Rows, 2)
	suite.Equal("411000", resp.Rows[0].AccountNumber)
	suite.Equal("100", resp.Rows[0].Balance.String())
	suite.Equal("100", resp.Rows[1].Balance.String(), "revenue balances on the credit side")
	suite.True(resp.Totals.Balanced)
	suite.True(resp.Totals.Debit.Equal(resp.Totals.Credit))
}

func (suite *HandlerTestSuite) TestTrialBalance_RequiresYear() {
	w := suite.do(http.MethodGet, "/reports/trial-balance?fiscalPeriod=13", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
