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
)

// accountService owns the chart of accounts.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	balanceRepo  portsrepo.BalanceReader
	currencyRepo portsrepo.CurrencyReader
	txManager    portsrepo.TransactionManager
}

// AccountOption is a functional option for configuring the account service
type AccountOption func(*accountService)

// WithAccountBalances lets DeactivateAccount check that the balance is zero.
func WithAccountBalances(repo portsrepo.BalanceReader) AccountOption {
	return func(s *accountService) {
		s.balanceRepo = repo
	}
}

// WithAccountCurrencies checks account currency codes against the registry.
func WithAccountCurrencies(repo portsrepo.CurrencyReader) AccountOption {
	return func(s *accountService) {
		s.currencyRepo = repo
	}
}

// WithAccountTxManager runs multi-step account mutations in one transaction.
func WithAccountTxManager(tm portsrepo.TransactionManager) AccountOption {
	return func(s *accountService) {
		s.txManager = tm
	}
}

// WithAccountClock overrides the audit clock.
func WithAccountClock(now func() time.Time) AccountOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	svc.txManager = txOrDirect(svc.txManager)
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func duplicateAccountCode(code string) error {
	return apperrors.NewDomainError("Account code already exists: %s", code)
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var account domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil {
			return duplicateAccountCode(req.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if req.ParentAccountID != "" {
			if _, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.NewDomainError("Parent account not found: %s", req.ParentAccountID)
				}
				return err
			}
		}

		if err := checkCurrencyCode(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
			return err
		}

		account = domain.Account{
			AccountID:       uuid.NewString(),
			Code:            req.Code,
			Name:            req.Name,
			AccountType:     req.AccountType,
			ParentAccountID: req.ParentAccountID,
			Description:     req.Description,
			CurrencyCode:    req.CurrencyCode,
			IsActive:        true,
			AuditFields:     domain.NewAuditFields(s.Now(), userID),
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return duplicateAccountCode(req.Code)
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

// EnsureAccount returns the account with req.Code, creating it when absent.
func (s *accountService) EnsureAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByCode(ctx, strings.TrimSpace(req.Code))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.CreateAccount(ctx, req, userID)
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListActiveAccounts returns active accounts ordered by code, optionally of one type.
func (s *accountService) ListActiveAccounts(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if accountType != "" && !accountType.IsValid() {
		return nil, apperrors.NewValidationError("type", "must be one of ASSET LIABILITY EQUITY REVENUE EXPENSE")
	}
	return s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{AccountType: accountType, ActiveOnly: true})
}

// UpdateAccount renames an account. Code and type are immutable.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var account *domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			account.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			account.Description = *req.Description
		}
		account.Touch(s.Now(), userID)
		return s.accountRepo.UpdateAccount(ctx, *account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount flips the active flag after reading a fresh balance in the same transaction.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return nil
		}
		if s.balanceRepo != nil {
			bal, err := accountBalance(ctx, s.balanceRepo, *account, nil, nil)
			if err != nil {
				return err
			}
			if !bal.IsZero() {
				return apperrors.NewDomainError("Cannot deactivate account with non-zero balance")
			}
		}
		return s.accountRepo.SetAccountActive(ctx, accountID, false, userID, s.Now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) ActivateAccount(ctx context.Context, accountID string, userID string) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		return s.accountRepo.SetAccountActive(ctx, accountID, true, userID, s.Now())
	})
}
