package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// currencyService keeps the currency registry and its single base currency.
type currencyService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// CurrencyOption configures the currency service.
type CurrencyOption func(*currencyService)

// WithCurrencyClock overrides the audit clock.
func WithCurrencyClock(now func() time.Time) CurrencyOption {
	return func(s *currencyService) {
		s.now = now
	}
}

// NewCurrencyService creates the currency registry service.
func NewCurrencyService(txManager portsrepo.TransactionManager, repo portsrepo.CurrencyRepositoryFacade, options ...CurrencyOption) portssvc.CurrencySvcFacade {
	svc := &currencyService{txManager: txOrDirect(txManager), currencyRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// checkCurrencyCode accepts an empty code or one present in the registry.
// A nil repo disables the check.
func checkCurrencyCode(ctx context.Context, repo portsrepo.CurrencyReader, code string) error {
	if code == "" || repo == nil {
		return nil
	}
	if _, err := repo.FindCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewDomainError("Currency not found: %s", code)
		}
		return err
	}
	return nil
}

// demoteBase clears the base flag of the current base unless it is keepID.
func (s *currencyService) demoteBase(ctx context.Context, keepID string, userID string) error {
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if base.CurrencyID == keepID {
		return nil
	}
	base.IsBase = false
	base.Touch(s.Now(), userID)
	return s.currencyRepo.UpdateCurrency(ctx, *base)
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.ExchangeRate.IsNegative() {
		return nil, apperrors.NewValidationError("exchangeRate", "must be greater than zero")
	}

	currency := domain.Currency{
		CurrencyID:   uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		Symbol:       strings.TrimSpace(req.Symbol),
		ExchangeRate: req.ExchangeRate,
		IsBase:       req.IsBase,
		AuditFields:  domain.NewAuditFields(s.Now(), userID),
	}
	if currency.IsBase || currency.ExchangeRate.IsZero() {
		currency.ExchangeRate = decimal.NewFromInt(1)
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.Code); err == nil {
			return apperrors.NewDomainError("Currency code already exists: %s", req.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if currency.IsBase {
			if err := s.demoteBase(ctx, currency.CurrencyID, userID); err != nil {
				return err
			}
		}
		if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewDomainError("Currency code already exists: %s", req.Code)
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create currency", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Currency created",
		slog.String("currency_id", currency.CurrencyID),
		slog.String("code", currency.Code),
		slog.Bool("is_base", currency.IsBase))
	return &currency, nil
}

func (s *currencyService) EnsureCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.TrimSpace(req.Code))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.CreateCurrency(ctx, req, userID)
}

func (s *currencyService) findForChange(ctx context.Context, currencyID string) (*domain.Currency, error) {
	c, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewDomainError("Currency not found: %s", currencyID)
	}
	return c, err
}

func (s *currencyService) UpdateExchangeRate(ctx context.Context, currencyID string, rate decimal.Decimal, userID string) (*domain.Currency, error) {
	if !rate.IsPositive() {
		return nil, apperrors.NewValidationError("exchangeRate", "must be greater than zero")
	}

	var currency *domain.Currency
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		currency, err = s.findForChange(ctx, currencyID)
		if err != nil {
			return err
		}
		if currency.IsBase {
			return apperrors.NewDomainError("Cannot change exchange rate of base currency")
		}
		currency.ExchangeRate = rate
		currency.Touch(s.Now(), userID)
		return s.currencyRepo.UpdateCurrency(ctx, *currency)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update exchange rate", slog.String("currency_id", currencyID))
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rate updated",
		slog.String("code", currency.Code),
		slog.String("rate", rate.String()))
	return currency, nil
}

func (s *currencyService) SetBaseCurrency(ctx context.Context, currencyID string, userID string) (*domain.Currency, error) {
	var currency *domain.Currency
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		currency, err = s.findForChange(ctx, currencyID)
		if err != nil {
			return err
		}
		if currency.IsBase {
			return nil
		}
		if err := s.demoteBase(ctx, currency.CurrencyID, userID); err != nil {
			return err
		}
		currency.IsBase = true
		currency.ExchangeRate = decimal.NewFromInt(1)
		currency.Touch(s.Now(), userID)
		return s.currencyRepo.UpdateCurrency(ctx, *currency)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to set base currency", slog.String("currency_id", currencyID))
		return nil, err
	}

	s.LogInfo(ctx, "Base currency set", slog.String("code", currency.Code))
	return currency, nil
}

func (s *currencyService) GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByID(ctx, currencyID)
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, code)
}

func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	return s.currencyRepo.FindBaseCurrency(ctx)
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}

func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	from, err := s.currencyRepo.FindCurrencyByCode(ctx, fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := s.currencyRepo.FindCurrencyByCode(ctx, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.Convert(amount, *from, *to), nil
}

func (s *currencyService) ConvertToBase(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error) {
	c, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return c.ToBase(amount), nil
}
