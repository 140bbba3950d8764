package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// RegisterCurrencyRoutes registers routes related to currencies.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := &currencyHandler{currencyService: currencyService}

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/convert", h.convert)
		currencies.GET("/:code", h.getCurrencyByCode)
		currencies.PUT("/:code/exchange-rate", h.updateExchangeRate)
		currencies.POST("/:code/base", h.setBaseCurrency)
	}
}

// createCurrency godoc
// @Summary Register a currency
// @Description Registering a base currency demotes the previous base and fixes the new rate at 1
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Currency code already exists"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(currencies))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No base currency"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Description The rate is units of the currency per one unit of the base currency
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   code path string true "Currency code"
// @Param   rate body dto.UpdateExchangeRateRequest true "New rate"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid rate"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 422 {object} map[string]string "Base currency"
// @Security BearerAuth
// @Router /currencies/{code}/exchange-rate [put]
func (h *currencyHandler) updateExchangeRate(c *gin.Context) {
	var req dto.UpdateExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	currency, err := h.currencyService.GetCurrencyByCode(ctx, c.Param("code"))
	if err == nil {
		currency, err = h.currencyService.UpdateExchangeRate(ctx, currency.CurrencyID, req.ExchangeRate, userID)
	}
	if err != nil {
		respondError(c, err, "Failed to update exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// setBaseCurrency godoc
// @Summary Make a currency the base currency
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{code}/base [post]
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	currency, err := h.currencyService.GetCurrencyByCode(ctx, c.Param("code"))
	if err == nil {
		currency, err = h.currencyService.SetBaseCurrency(ctx, currency.CurrencyID, userID)
	}
	if err != nil {
		respondError(c, err, "Failed to set base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from query string true "Source currency code"
// @Param   to query string false "Target currency code, base when omitted"
// @Success 200 {object} dto.ConversionResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if !bindQuery(c, &params) {
		return
	}
	ctx := c.Request.Context()
	var (
		converted decimal.Decimal
		err       error
	)
	if params.To == "" {
		converted, err = h.currencyService.ConvertToBase(ctx, params.Amount, params.From)
		if err == nil {
			var base *domain.Currency
			if base, err = h.currencyService.GetBaseCurrency(ctx); err == nil {
				params.To = base.Code
			}
		}
	} else {
		converted, err = h.currencyService.Convert(ctx, params.Amount, params.From, params.To)
	}
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConversionResponse{
		Amount:    params.Amount,
		From:      params.From,
		To:        params.To,
		Converted: converted,
	})
}
