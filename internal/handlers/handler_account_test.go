package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/handlers"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	accounts      *MockAccountService
	journals      *MockJournalService
	entries       *MockEntryService
	reporting     *MockReportingService
	jwtSecret     string
	userID        string
	workspaceID   string
	authorization string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.workspaceID = uuid.NewString()

	token, err := middleware.SignToken(suite.jwtSecret, suite.userID, time.Hour)
	suite.Require().NoError(err)
	suite.authorization = "Bearer " + token

	suite.accounts = new(MockAccountService)
	suite.journals = new(MockJournalService)
	suite.entries = new(MockEntryService)
	suite.reporting = new(MockReportingService)

	suite.router = gin.New()
	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	err = handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:   suite.accounts,
		Journal:   suite.journals,
		Entry:     suite.entries,
		Reporting: suite.reporting,
	})
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.accounts.AssertExpectations(suite.T())
	suite.journals.AssertExpectations(suite.T())
	suite.entries.AssertExpectations(suite.T())
	suite.reporting.AssertExpectations(suite.T())
}

// do sends an authorized request below the test workspace.
func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return suite.doAs(method, fmt.Sprintf("/api/v1/workspaces/%s%s", suite.workspaceID, path), body, suite.authorization)
}

func (suite *HandlerTestSuite) doAs(method, url string, body any, authorization string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) (msg, code string) {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error, body.Code
}

func (suite *HandlerTestSuite) sampleAccount(number string) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		AccountID:          uuid.NewString(),
		WorkspaceID:        suite.workspaceID,
		Number:             number,
		Label:              "Clients",
		AccountType:        domain.Asset,
		Class:              domain.ClassOfNumber(number),
		AllowDirectPosting: true,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     suite.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: suite.userID,
		},
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.doAs(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w := suite.doAs(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/accounts", suite.workspaceID), nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	_, code := suite.decodeError(w)
	suite.Equal("UNAUTHORIZED", code)
}

func (suite *HandlerTestSuite) TestTokenSignedWithOtherSecret() {
	token, err := middleware.SignToken("some-other-secret", suite.userID, time.Hour)
	suite.Require().NoError(err)
	w := suite.doAs(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/accounts", suite.workspaceID), nil, "Bearer "+token)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestWorkspaceMustBeUUID() {
	w := suite.doAs(http.MethodGet, "/api/v1/workspaces/acme/accounts", nil, suite.authorization)
	suite.Equal(http.StatusBadRequest, w.Code)
	_, code := suite.decodeError(w)
	suite.Equal("VALIDATION_ERROR", code)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Number:      "411000",
		Label:       "Clients",
		AccountType: domain.Asset,
		Class:       4,
	}
	suite.accounts.On("CreateAccount", mock.Anything, suite.workspaceID, req, suite.userID).
		Return(suite.sampleAccount("411000"), nil).Once()

	w := suite.do(http.MethodPost, "/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("411000", resp.Number)
	suite.Equal(4, resp.Class)
	suite.True(resp.IsActive)
}

func (suite *HandlerTestSuite) TestCreateAccount_BindErrors() {
	cases := map[string]any{
		"malformed json":   `{"number": `,
		"number too short": dto.CreateAccountRequest{Number: "41", Label: "x", AccountType: domain.Asset, Class: 4},
		"number not digits": dto.CreateAccountRequest{
			Number: "41A000", Label: "x", AccountType: domain.Asset, Class: 4,
		},
		"unknown type": dto.CreateAccountRequest{Number: "411000", Label: "x", AccountType: "CASHFLOW", Class: 4},
		"class zero":   dto.CreateAccountRequest{Number: "411000", Label: "x", AccountType: domain.Asset},
	}
	for name, body := range cases {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/accounts", body)
			suite.Equal(http.StatusBadRequest, w.Code)
			_, code := suite.decodeError(w)
			suite.Equal("VALIDATION_ERROR", code)
		})
	}
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	req := dto.CreateAccountRequest{Number: "411000", Label: "Clients", AccountType: domain.Asset, Class: 4}
	suite.accounts.On("CreateAccount", mock.Anything, suite.workspaceID, req, suite.userID).
		Return(nil, fmt.Errorf("%w: 411000", apperrors.ErrDuplicateAccount)).Once()

	w := suite.do(http.MethodPost, "/accounts", req)

	suite.Equal(http.StatusConflict, w.Code)
	_, code := suite.decodeError(w)
	suite.Equal("DUPLICATE_ACCOUNT", code)
}

func (suite *HandlerTestSuite) TestListAccounts_Filter() {
	accounts := []domain.Account{*suite.sampleAccount("411000"), *suite.sampleAccount("445000")}
	suite.accounts.On("ListAccounts", mock.Anything, suite.workspaceID, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return f.Class != nil && *f.Class == 4 && f.Active != nil && *f.Active
	})).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/accounts?class=4&active=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
}

func (suite *HandlerTestSuite) TestGetAccountByNumber() {
	suite.accounts.On("GetAccountByNumber", mock.Anything, suite.workspaceID, "571000").
		Return(suite.sampleAccount("571000"), nil).Once()

	w := suite.do(http.MethodGet, "/accounts/by-number/571000", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.accounts.On("GetAccountByID", mock.Anything, suite.workspaceID, accountID).
		Return(nil, apperrors.ErrAccountNotFound).Once()

	w := suite.do(http.MethodGet, "/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	_, code := suite.decodeError(w)
	suite.Equal("ACCOUNT_NOT_FOUND", code)
}

func (suite *HandlerTestSuite) TestReparentAccount_Cycle() {
	accountID, parentID := uuid.NewString(), uuid.NewString()
	suite.accounts.On("ReparentAccount", mock.Anything, suite.workspaceID, accountID,
		mock.MatchedBy(func(p *string) bool { return p != nil && *p == parentID }), suite.userID).
		Return(nil, apperrors.ErrAccountCycle).Once()

	w := suite.do(http.MethodPut, "/accounts/"+accountID+"/parent", dto.ReparentAccountRequest{ParentAccountID: &parentID})

	suite.Equal(http.StatusBadRequest, w.Code)
	_, code := suite.decodeError(w)
	suite.Equal("ACCOUNT_CYCLE", code)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	accountID := uuid.NewString()
	suite.accounts.On("DeactivateAccount", mock.Anything, suite.workspaceID, accountID, suite.userID).Return(nil).Once()

	w := suite.do(http.MethodPost, "/accounts/"+accountID+"/deactivate", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestInternalErrorIsNotLeaked() {
	suite.accounts.On("ListAccounts", mock.Anything, suite.workspaceID, mock.Anything).
		Return(nil, errors.New("pq: password authentication failed")).Once()

	w := suite.do(http.MethodGet, "/accounts", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	msg, code := suite.decodeError(w)
	suite.Equal("INTERNAL_ERROR", code)
	suite.Equal("Failed to list accounts", msg)
}

func (suite *HandlerTestSuite) TestInitializeDefaultChart() {
	suite.accounts.On("InitializeDefaultChart", mock.Anything, suite.workspaceID, suite.userID).
		Return(&dto.DefaultChartResult{Created: 19}, nil).Once()

	w := suite.do(http.MethodPost, "/accounts/default-chart", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"created":19,"skipped":0}`, w.Body.String())
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
