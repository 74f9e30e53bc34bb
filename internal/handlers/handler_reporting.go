package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance godoc
// @Summary Generate a trial balance
// @Description Sums debits and credits per account for a fiscal year, up to a period when given.
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param fiscalYear query int true "Fiscal year"
// @Param fiscalPeriod query int false "Last period to include (1-12)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "Failed to generate trial balance"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger, workspaceID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger.Info("Received request to generate trial balance", slog.Int("fiscal_year", params.FiscalYear))

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), workspaceID, params.FiscalYear, params.FiscalPeriod)
	if err != nil {
		respondError(c, logger, err, "generate trial balance")
		return
	}

	logger.Info("Trial balance generated", slog.Int("row_count", len(tb.Rows)), slog.Bool("balanced", tb.Totals.Balanced))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}
