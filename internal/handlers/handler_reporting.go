package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs, now: time.Now}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/general-ledger/:accountID", h.getGeneralLedger)
		reports.GET("/dashboard", h.getDashboard)
	}
}

// asOf reads the asOf query parameter, defaulting to today.
func (h *reportingHandler) asOf(c *gin.Context) (time.Time, bool) {
	var params dto.AsOfParams
	if !bindQuery(c, &params) {
		return time.Time{}, false
	}
	if params.AsOf == nil {
		return h.now().UTC(), true
	}
	return *params.AsOf, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account with a non-zero balance as of a date in debit and credit columns. Inactive accounts still holding a balance on that date are included; zero-balance accounts are omitted.
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	tb, err := h.reportingService.GetTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance report")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Trial balance report generated", slog.Int("row_count", len(tb.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Revenue and expense activity for a period, both dates inclusive
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	pl, err := h.reportingService.GetProfitAndLoss(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(pl))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Assets, liabilities, equity and retained earnings as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	bs, err := h.reportingService.GetBalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet report")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(bs))
}

// getGeneralLedger godoc
// @Summary Generate general ledger for an account
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/general-ledger/{accountID} [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	gl, err := h.reportingService.GetGeneralLedger(c.Request.Context(), c.Param("accountID"), params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate general ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(gl))
}

// getDashboard godoc
// @Summary Ledger dashboard
// @Description Totals, month-to-date income, cash and receivables, drafts and overdue invoices
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.Dashboard
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	asOf, ok := h.asOf(c)
	if !ok {
		return
	}
	d, err := h.reportingService.GetDashboard(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate dashboard")
		return
	}
	c.JSON(http.StatusOK, d)
}
