package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests for journal entries and their lifecycle.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.GET("/:entry_id/lines", h.getEntryLines)
		entries.PATCH("/:entry_id", h.updateEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/cancel", h.cancelEntry)
	}
}

// createEntry godoc
// @Summary Record a journal entry
// @Description Validates balance, allocates the next number of the journal and fiscal year, and stores the entry as DRAFT.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry body dto.CreateEntryRequest true "Entry with its lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} errorResponse "UNBALANCED_ENTRY, INSUFFICIENT_LINES, INVALID_LINE or VALIDATION_ERROR"
// @Failure 404 {object} errorResponse "Journal not found"
// @Failure 503 {object} errorResponse "Store unavailable after retries"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger.Info("Received request to create entry",
		slog.String("journal_id", req.JournalID),
		slog.Int("line_count", len(req.Lines)))

	entry, err := h.entryService.CreateEntry(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with token based pagination.
// @Tags entries
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   journalID query string false "Journal ID"
// @Param   status query string false "DRAFT, POSTED, VALIDATED or CANCELLED"
// @Param   dateFrom query string false "First entry date (YYYY-MM-DD)"
// @Param   dateTo query string false "Last entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} errorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), workspaceID, params)
	if err != nil {
		respondError(c, logger, err, "list entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags entries
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} errorResponse "Entry not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, logger, "entry_id", apperrors.ErrEntryNotFound)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), workspaceID, entryID)
	if err != nil {
		respondError(c, logger, err, "retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// getEntryLines godoc
// @Summary Get the lines of a journal entry
// @Tags entries
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.ListEntryLinesResponse
// @Failure 404 {object} errorResponse "Entry not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries/{entry_id}/lines [get]
func (h *entryHandler) getEntryLines(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, logger, "entry_id", apperrors.ErrEntryNotFound)
	if !ok {
		return
	}
	lines, err := h.entryService.GetEntryLines(c.Request.Context(), workspaceID, entryID)
	if err != nil {
		respondError(c, logger, err, "retrieve entry lines")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntryLinesResponse{EntryID: entryID, Lines: dto.ToEntryLineResponses(lines)})
}

// updateEntry godoc
// @Summary Edit an entry header
// @Description Changes description or external reference while the entry is DRAFT or POSTED.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to change"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} errorResponse "Entry is validated or cancelled"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries/{entry_id} [patch]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, logger, "entry_id", apperrors.ErrEntryNotFound)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), workspaceID, entryID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

type transitionFunc func(ctx context.Context, workspaceID, entryID, userID string) (*domain.JournalEntry, error)

func (h *entryHandler) applyTransition(c *gin.Context, fn transitionFunc, action string) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, logger, "entry_id", apperrors.ErrEntryNotFound)
	if !ok {
		return
	}
	logger.Info("Received request to "+action, slog.String("entry_id", entryID))

	entry, err := fn(c.Request.Context(), workspaceID, entryID, userID)
	if err != nil {
		respondError(c, logger, err, action)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Tags entries
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} errorResponse "INVALID_TRANSITION"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries/{entry_id}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	h.applyTransition(c, h.entryService.PostEntry, "post entry")
}

// validateEntry godoc
// @Summary Validate a posted entry
// @Description Validation is final. The entry can no longer change.
// @Tags entries
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} errorResponse "INVALID_TRANSITION"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries/{entry_id}/validate [post]
func (h *entryHandler) validateEntry(c *gin.Context) {
	h.applyTransition(c, h.entryService.ValidateEntry, "validate entry")
}

// cancelEntry godoc
// @Summary Cancel a draft or posted entry
// @Tags entries
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} errorResponse "INVALID_TRANSITION"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/entries/{entry_id}/cancel [post]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	h.applyTransition(c, h.entryService.CancelEntry, "cancel entry")
}
