package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts under a workspace group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/default-chart", h.initializeDefaultChart)
		accounts.GET("/by-number/:number", h.getAccountByNumber)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PATCH("/:account_id", h.updateAccount)
		accounts.PUT("/:account_id/parent", h.reparentAccount)
		accounts.POST("/:account_id/deactivate", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the workspace chart. The first digit of the number must match the class.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} errorResponse "Invalid input format or validation error"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 409 {object} errorResponse "Account number already used"
// @Failure 500 {object} errorResponse "Failed to create account"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger.Info("Received request to create account", slog.String("account_number", req.Number))

	account, err := h.accountService.CreateAccount(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the accounts of a workspace ordered by number
// @Tags accounts
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   class query int false "Account class (1-9)"
// @Param   active query bool false "Only active or only inactive accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} errorResponse "Invalid query parameters"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	filter := domain.AccountFilter{Active: params.Active}
	if params.Class != nil {
		class := domain.AccountClass(*params.Class)
		filter.Class = &class
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), workspaceID, filter)
	if err != nil {
		respondError(c, logger, err, "list accounts")
		return
	}

	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 404 {object} errorResponse "Account not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	accountID, ok := pathID(c, logger, "account_id", apperrors.ErrAccountNotFound)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), workspaceID, accountID)
	if err != nil {
		respondError(c, logger, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByNumber godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   number path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} errorResponse "Account not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts/by-number/{number} [get]
func (h *accountHandler) getAccountByNumber(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByNumber(c.Request.Context(), workspaceID, c.Param("number"))
	if err != nil {
		respondError(c, logger, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes the label, description or direct posting flag. Number, type and class are immutable.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   account_id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 404 {object} errorResponse "Account not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts/{account_id} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	accountID, ok := pathID(c, logger, "account_id", apperrors.ErrAccountNotFound)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), workspaceID, accountID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// reparentAccount godoc
// @Summary Move an account in the hierarchy
// @Description Sets or clears the parent account. Moves that would create a cycle are rejected.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   account_id path string true "Account ID"
// @Param   parent body dto.ReparentAccountRequest true "New parent, null to detach"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} errorResponse "Unknown parent or cycle"
// @Failure 404 {object} errorResponse "Account not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts/{account_id}/parent [put]
func (h *accountHandler) reparentAccount(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	accountID, ok := pathID(c, logger, "account_id", apperrors.ErrAccountNotFound)
	if !ok {
		return
	}

	var req dto.ReparentAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	account, err := h.accountService.ReparentAccount(c.Request.Context(), workspaceID, accountID, req.ParentAccountID, userID)
	if err != nil {
		respondError(c, logger, err, "reparent account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive. Existing entries keep referencing it.
// @Tags accounts
// @Param   workspace_id path string true "Workspace ID"
// @Param   account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} errorResponse "Account not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts/{account_id}/deactivate [post]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	accountID, ok := pathID(c, logger, "account_id", apperrors.ErrAccountNotFound)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), workspaceID, accountID, userID); err != nil {
		respondError(c, logger, err, "deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// initializeDefaultChart godoc
// @Summary Seed the default chart of accounts
// @Description Creates the standard accounts. Accounts whose number already exists are skipped.
// @Tags accounts
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.DefaultChartResult
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/accounts/default-chart [post]
func (h *accountHandler) initializeDefaultChart(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	result, err := h.accountService.InitializeDefaultChart(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, logger, err, "initialize default chart")
		return
	}
	c.JSON(http.StatusOK, result)
}
