package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals (books).
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.POST("/defaults", h.initializeDefaultJournals)
		journals.GET("/:journal_id", h.getJournal)
	}
}

// createJournal godoc
// @Summary Create a journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 409 {object} errorResponse "Journal code already used"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger.Info("Received request to create journal", slog.String("journal_code", req.Code))

	journal, err := h.journalService.CreateJournal(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Tags journals
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.ListJournalsResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, logger, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalsResponse(journals))
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   journal_id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} errorResponse "Journal not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/journals/{journal_id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	journalID, ok := pathID(c, logger, "journal_id", apperrors.ErrJournalNotFound)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), workspaceID, journalID)
	if err != nil {
		respondError(c, logger, err, "retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// initializeDefaultJournals godoc
// @Summary Seed the default journals
// @Description Creates VT, AC, BQ, CA and OD. Codes already present are skipped.
// @Tags journals
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.DefaultJournalsResult
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/journals/defaults [post]
func (h *journalHandler) initializeDefaultJournals(c *gin.Context) {
	logger, workspaceID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	result, err := h.journalService.InitializeDefaultJournals(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, logger, err, "initialize default journals")
		return
	}
	c.JSON(http.StatusOK, result)
}
