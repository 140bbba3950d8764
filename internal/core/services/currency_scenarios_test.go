package services_test

import (
	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

func (s *LedgerScenarioSuite) currency(code, rate string, isBase bool) *domain.Currency {
	c, err := s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{
		Code:         code,
		Name:         code + " currency",
		ExchangeRate: amount(rate),
		IsBase:       isBase,
	}, testUser)
	s.Require().NoError(err)
	return c
}

func (s *LedgerScenarioSuite) TestCurrencyCodeIsUnique() {
	s.currency("USD", "1", true)

	_, err := s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{Code: "USD", Name: "Again"}, testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Currency code already exists: USD")

	all, err := s.svc.Currency.ListCurrencies(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *LedgerScenarioSuite) TestCurrencyRequestValidation() {
	_, err := s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{Code: "usd", Name: "Lower"}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{Code: "EUR", Name: "Euro", ExchangeRate: amount("-1")}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioSuite) TestOnlyOneBaseCurrency() {
	usd := s.currency("USD", "1", true)
	eur := s.currency("EUR", "0.8", true)

	s.True(eur.IsBase)
	s.equalAmount("1", eur.ExchangeRate, "a base currency always has rate 1")

	base, err := s.svc.Currency.GetBaseCurrency(s.ctx)
	s.Require().NoError(err)
	s.Equal(eur.CurrencyID, base.CurrencyID)

	demoted, err := s.svc.Currency.GetCurrency(s.ctx, usd.CurrencyID)
	s.Require().NoError(err)
	s.False(demoted.IsBase)

	// switching back leaves the other rates untouched
	back, err := s.svc.Currency.SetBaseCurrency(s.ctx, usd.CurrencyID, testUser)
	s.Require().NoError(err)
	s.True(back.IsBase)
	s.equalAmount("1", back.ExchangeRate)
	again, err := s.svc.Currency.GetCurrencyByCode(s.ctx, "EUR")
	s.Require().NoError(err)
	s.False(again.IsBase)
}

func (s *LedgerScenarioSuite) TestExchangeRateUpdates() {
	usd := s.currency("USD", "1", true)
	eur := s.currency("EUR", "0.8", false)

	updated, err := s.svc.Currency.UpdateExchangeRate(s.ctx, eur.CurrencyID, amount("0.9"), testUser)
	s.Require().NoError(err)
	s.equalAmount("0.9", updated.ExchangeRate)

	_, err = s.svc.Currency.UpdateExchangeRate(s.ctx, usd.CurrencyID, amount("2"), testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Cannot change exchange rate of base currency")

	_, err = s.svc.Currency.UpdateExchangeRate(s.ctx, "missing", amount("2"), testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Currency not found: missing")

	_, err = s.svc.Currency.UpdateExchangeRate(s.ctx, eur.CurrencyID, amount("0"), testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioSuite) TestEnsureCurrencyIsIdempotent() {
	req := dto.CreateCurrencyRequest{Code: "GBP", Name: "Pound Sterling", Symbol: "£", ExchangeRate: amount("0.75")}
	first, err := s.svc.Currency.EnsureCurrency(s.ctx, req, testUser)
	s.Require().NoError(err)

	req.ExchangeRate = amount("0.5")
	second, err := s.svc.Currency.EnsureCurrency(s.ctx, req, testUser)
	s.Require().NoError(err)
	s.Equal(first.CurrencyID, second.CurrencyID)
	s.equalAmount("0.75", second.ExchangeRate, "an existing currency is returned unchanged")
}

func (s *LedgerScenarioSuite) TestCurrencyConversion() {
	s.currency("USD", "1", true)
	s.currency("EUR", "0.8", false)

	eur, err := s.svc.Currency.Convert(s.ctx, amount("100"), "USD", "EUR")
	s.Require().NoError(err)
	s.equalAmount("80", eur)

	usd, err := s.svc.Currency.ConvertToBase(s.ctx, amount("100"), "EUR")
	s.Require().NoError(err)
	s.equalAmount("125", usd)

	_, err = s.svc.Currency.Convert(s.ctx, amount("1"), "USD", "XXX")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerScenarioSuite) TestAccountCurrencyMustBeRegistered() {
	s.currency("USD", "1", true)

	_, err := s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code: "1010", Name: "Euro Cash", AccountType: domain.Asset, CurrencyCode: "EUR",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Currency not found: EUR")

	s.currency("EUR", "0.8", false)
	a, err := s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code: "1010", Name: "Euro Cash", AccountType: domain.Asset, CurrencyCode: "EUR",
	}, testUser)
	s.Require().NoError(err)
	s.Equal("EUR", a.CurrencyCode)
}

func (s *LedgerScenarioSuite) TestInvoiceCurrencyMustBeRegistered() {
	c := s.customer()
	req := dto.CreateInvoiceRequest{
		CustomerID:   c.CustomerID,
		CurrencyCode: "EUR",
		InvoiceDate:  day(2026, 3, 1),
		DueDate:      day(2026, 3, 31),
		Items:        []dto.InvoiceItemRequest{{Description: "Consulting", Quantity: amount("1"), UnitPrice: amount("500")}},
	}

	_, err := s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Currency not found: EUR")

	s.currency("EUR", "0.8", false)
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.Require().NoError(err)
	s.Equal("EUR", inv.CurrencyCode)

	// without a code the invoice is in the base currency
	req.CurrencyCode = ""
	plain, err := s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.Require().NoError(err)
	s.Empty(plain.CurrencyCode)
}
