package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// bankHandler handles HTTP requests for bank accounts and statement reconciliation.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

// RegisterBankRoutes registers bank account and reconciliation routes.
func RegisterBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := &bankHandler{bankService: bankService}

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:id", h.getBankAccount)
		accounts.PUT("/:id", h.updateBankAccount)
		accounts.POST("/:id/statements", h.importStatement)
		accounts.GET("/:id/statements", h.listStatementLines)
		accounts.GET("/:id/reconciliation", h.getReconciliationSummary)
	}

	statements := rg.Group("/bank-statements")
	{
		statements.GET("/:id/matches", h.findPotentialMatches)
		statements.POST("/:id/reconcile", h.reconcile)
		statements.POST("/:id/unreconcile", h.unreconcile)
	}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description The bank account mirrors an active ASSET account of the ledger
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Unknown or unsuitable GL account"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankHandler) createBankAccount(c *gin.Context) {
	var req dto.CreateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	account, err := h.bankService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank
// @Produce  json
// @Param   active query bool false "Only active accounts"
// @Success 200 {object} dto.ListBankAccountsResponse
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *bankHandler) listBankAccounts(c *gin.Context) {
	var params dto.ListBankAccountsParams
	if !bindQuery(c, &params) {
		return
	}
	accounts, err := h.bankService.ListBankAccounts(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankAccountsResponse(accounts))
}

// getBankAccount godoc
// @Summary Get a bank account
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id} [get]
func (h *bankHandler) getBankAccount(c *gin.Context) {
	account, err := h.bankService.GetBankAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// updateBankAccount godoc
// @Summary Update a bank account
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   account body dto.UpdateBankAccountRequest true "Fields to change"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 422 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id} [put]
func (h *bankHandler) updateBankAccount(c *gin.Context) {
	var req dto.UpdateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	account, err := h.bankService.UpdateBankAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// importStatement godoc
// @Summary Import bank statement lines
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   statement body dto.ImportStatementRequest true "Statement lines"
// @Success 201 {object} dto.ListStatementLinesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Unknown or inactive bank account"
// @Security BearerAuth
// @Router /bank-accounts/{id}/statements [post]
func (h *bankHandler) importStatement(c *gin.Context) {
	var req dto.ImportStatementRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	lines, err := h.bankService.ImportStatement(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to import statement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListStatementLinesResponse(lines))
}

// listStatementLines godoc
// @Summary List statement lines of a bank account
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   startDate query string false "First statement date (YYYY-MM-DD)"
// @Param   endDate query string false "Last statement date (YYYY-MM-DD)"
// @Param   unreconciled query bool false "Only unreconciled lines"
// @Success 200 {object} dto.ListStatementLinesResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/statements [get]
func (h *bankHandler) listStatementLines(c *gin.Context) {
	var params dto.ListStatementLinesParams
	if !bindQuery(c, &params) {
		return
	}
	lines, err := h.bankService.ListStatementLines(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list statement lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStatementLinesResponse(lines))
}

// getReconciliationSummary godoc
// @Summary Compare the GL balance with the reconciled bank balance
// @Tags bank
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} domain.ReconciliationSummary
// @Failure 422 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/reconciliation [get]
func (h *bankHandler) getReconciliationSummary(c *gin.Context) {
	summary, err := h.bankService.GetReconciliationSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build reconciliation summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// findPotentialMatches godoc
// @Summary List journal lines a statement line could match
// @Description Posted lines of the bank's GL account within 7 days of the transaction date
// @Tags bank
// @Produce  json
// @Param   id path string true "Statement line ID"
// @Success 200 {object} dto.ListMatchCandidatesResponse
// @Failure 422 {object} map[string]string "Statement line not found"
// @Security BearerAuth
// @Router /bank-statements/{id}/matches [get]
func (h *bankHandler) findPotentialMatches(c *gin.Context) {
	line, candidates, err := h.bankService.FindPotentialMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to find matches")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMatchCandidatesResponse(line, candidates))
}

// reconcile godoc
// @Summary Reconcile a statement line against a journal line
// @Tags bank
// @Accept  json
// @Produce  json
// @Param   id path string true "Statement line ID"
// @Param   match body dto.ReconcileRequest true "Journal line to match"
// @Success 200 {object} dto.StatementLineResponse
// @Failure 422 {object} map[string]string "Amount mismatch or line already reconciled"
// @Security BearerAuth
// @Router /bank-statements/{id}/reconcile [post]
func (h *bankHandler) reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	line, err := h.bankService.ReconcileStatementLine(c.Request.Context(), c.Param("id"), req.JournalLineID, userID)
	if err != nil {
		respondError(c, err, "Failed to reconcile statement line")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementLineResponse(line))
}

// unreconcile godoc
// @Summary Clear the match of a statement line
// @Tags bank
// @Produce  json
// @Param   id path string true "Statement line ID"
// @Success 200 {object} dto.StatementLineResponse
// @Failure 422 {object} map[string]string "Statement line not found"
// @Security BearerAuth
// @Router /bank-statements/{id}/unreconcile [post]
func (h *bankHandler) unreconcile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	line, err := h.bankService.UnreconcileStatementLine(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to unreconcile statement line")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementLineResponse(line))
}
