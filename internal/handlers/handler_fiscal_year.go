package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

// RegisterFiscalYearRoutes registers fiscal year routes.
func RegisterFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := &fiscalYearHandler{fiscalYearService: fiscalYearService}

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/for-date", h.findForDate)
		years.GET("/:id", h.getFiscalYear)
		years.POST("/:id/close", h.closeFiscalYear)
	}
}

// createFiscalYear godoc
// @Summary Open a fiscal year
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   fiscalYear body dto.CreateFiscalYearRequest true "Name and date range"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Overlapping or duplicate year"
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create fiscal year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce  json
// @Success 200 {array} dto.FiscalYearResponse
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list fiscal years")
		return
	}
	out := make([]dto.FiscalYearResponse, len(years))
	for i := range years {
		out[i] = dto.ToFiscalYearResponse(&years[i])
	}
	c.JSON(http.StatusOK, out)
}

// findForDate godoc
// @Summary Find the fiscal year containing a date
// @Tags fiscal-years
// @Produce  json
// @Param   asOf query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "No fiscal year contains the date"
// @Security BearerAuth
// @Router /fiscal-years/for-date [get]
func (h *fiscalYearHandler) findForDate(c *gin.Context) {
	var params dto.AsOfParams
	if !bindQuery(c, &params) {
		return
	}
	if params.AsOf == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf is required"})
		return
	}
	fy, err := h.fiscalYearService.FindFiscalYearForDate(c.Request.Context(), *params.AsOf)
	if err != nil {
		respondError(c, err, "Failed to find fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	fy, err := h.fiscalYearService.GetFiscalYear(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closed years reject postings when the fiscal year guard is enabled
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 422 {object} map[string]string "Already closed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	fy, err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}
