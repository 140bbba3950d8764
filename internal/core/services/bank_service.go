package services

import (
	"context"
	"errors"
	"fmt"
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

// bankService keeps bank accounts and reconciles their statements with the ledger.
type bankService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	bankRepo     portsrepo.BankRepositoryFacade
	accountRepo  portsrepo.AccountReader
	journalRepo  portsrepo.JournalRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// BankOption configures the bank service.
type BankOption func(*bankService)

// WithBankClock overrides the audit clock.
func WithBankClock(now func() time.Time) BankOption {
	return func(s *bankService) {
		s.now = now
	}
}

// WithBankCurrencies checks bank account currency codes against the registry.
func WithBankCurrencies(repo portsrepo.CurrencyReader) BankOption {
	return func(s *bankService) {
		s.currencyRepo = repo
	}
}

// NewBankService creates the bank reconciliation service.
func NewBankService(
	txManager portsrepo.TransactionManager,
	bankRepo portsrepo.BankRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	journalRepo portsrepo.JournalRepositoryFacade,
	options ...BankOption,
) portssvc.BankSvcFacade {
	svc := &bankService{
		txManager:   txOrDirect(txManager),
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

func (s *bankService) findBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	a, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewDomainError("Bank account not found: %s", bankAccountID)
	}
	return a, err
}

func (s *bankService) findStatementLine(ctx context.Context, statementLineID string, lock bool) (*domain.BankStatementLine, error) {
	var (
		l   *domain.BankStatementLine
		err error
	)
	if lock {
		l, err = s.bankRepo.FindStatementLineForUpdate(ctx, statementLineID)
	} else {
		l, err = s.bankRepo.FindStatementLineByID(ctx, statementLineID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewDomainError("Bank statement not found: %s", statementLineID)
	}
	return l, err
}

func (s *bankService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	req.AccountName = strings.TrimSpace(req.AccountName)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		AccountName:    req.AccountName,
		BankName:       strings.TrimSpace(req.BankName),
		AccountNumber:  strings.TrimSpace(req.AccountNumber),
		CurrencyCode:   req.CurrencyCode,
		GLAccountID:    req.GLAccountID,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(s.Now(), userID),
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		gl, err := s.accountRepo.FindAccountByID(ctx, req.GLAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewDomainError("GL account not found: %s", req.GLAccountID)
			}
			return err
		}
		if gl.AccountType != domain.Asset {
			return apperrors.NewDomainError("Bank account must be linked to an asset account: %s", gl.Code)
		}
		if !gl.IsActive {
			return apperrors.NewDomainError("Account is not active: %s", gl.Code)
		}
		if err := checkCurrencyCode(ctx, s.currencyRepo, req.CurrencyCode); err != nil {
			return err
		}
		return s.bankRepo.SaveBankAccount(ctx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create bank account", slog.String("name", req.AccountName))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("gl_account_id", account.GLAccountID))
	return &account, nil
}

func (s *bankService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var account *domain.BankAccount
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.findBankAccount(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if req.AccountName != nil {
			account.AccountName = strings.TrimSpace(*req.AccountName)
		}
		if req.BankName != nil {
			account.BankName = strings.TrimSpace(*req.BankName)
		}
		if req.AccountNumber != nil {
			account.AccountNumber = strings.TrimSpace(*req.AccountNumber)
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}
		account.Touch(s.Now(), userID)
		return s.bankRepo.UpdateBankAccount(ctx, *account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update bank account", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}
	return account, nil
}

func (s *bankService) GetBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
}

func (s *bankService) ListBankAccounts(ctx context.Context, activeOnly bool) ([]domain.BankAccount, error) {
	return s.bankRepo.ListBankAccounts(ctx, activeOnly)
}

func checkStatementLine(i int, l dto.StatementLineRequest) error {
	field := func(name string) string { return fmt.Sprintf("lines[%d].%s", i, name) }
	if l.DebitAmount.IsNegative() {
		return apperrors.NewValidationError(field("debitAmount"), "must not be negative")
	}
	if l.CreditAmount.IsNegative() {
		return apperrors.NewValidationError(field("creditAmount"), "must not be negative")
	}
	if l.DebitAmount.IsPositive() == l.CreditAmount.IsPositive() {
		return apperrors.NewValidationError(field("debitAmount"), "exactly one of debitAmount or creditAmount must be greater than zero")
	}
	return nil
}

func (s *bankService) ImportStatement(ctx context.Context, bankAccountID string, req dto.ImportStatementRequest, userID string) ([]domain.BankStatementLine, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	now := s.Now()
	lines := make([]domain.BankStatementLine, len(req.Lines))
	for i, l := range req.Lines {
		if err := checkStatementLine(i, l); err != nil {
			return nil, err
		}
		txDate := l.StatementDate
		if l.TransactionDate != nil {
			txDate = *l.TransactionDate
		}
		// import order breaks ties between lines of the same day
		lines[i] = domain.BankStatementLine{
			StatementLineID: uuid.NewString(),
			BankAccountID:   bankAccountID,
			StatementDate:   domain.DateOnly(l.StatementDate),
			TransactionDate: domain.DateOnly(txDate),
			Description:     strings.TrimSpace(l.Description),
			Reference:       strings.TrimSpace(l.Reference),
			DebitAmount:     l.DebitAmount,
			CreditAmount:    l.CreditAmount,
			AuditFields:     domain.NewAuditFields(now.Add(time.Duration(i)*time.Microsecond), userID),
		}
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.findBankAccount(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return apperrors.NewDomainError("Bank account is not active: %s", account.AccountName)
		}
		return s.bankRepo.SaveStatementLines(ctx, lines)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to import statement", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Statement imported",
		slog.String("bank_account_id", bankAccountID),
		slog.Int("lines", len(lines)))
	return lines, nil
}

func (s *bankService) ListStatementLines(ctx context.Context, bankAccountID string, params dto.ListStatementLinesParams) ([]domain.BankStatementLine, error) {
	if _, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, err
	}
	return s.bankRepo.ListStatementLines(ctx, domain.StatementLineFilter{
		BankAccountID:    bankAccountID,
		From:             params.StartDate,
		To:               params.EndDate,
		UnreconciledOnly: params.UnreconciledOnly,
	})
}

func (s *bankService) ReconcileStatementLine(ctx context.Context, statementLineID, journalLineID string, userID string) (*domain.BankStatementLine, error) {
	var line *domain.BankStatementLine
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		line, err = s.findStatementLine(ctx, statementLineID, true)
		if err != nil {
			return err
		}
		if line.IsReconciled {
			return apperrors.NewDomainError("Bank statement is already reconciled: %s", statementLineID)
		}
		account, err := s.findBankAccount(ctx, line.BankAccountID)
		if err != nil {
			return err
		}

		posted, err := s.journalRepo.FindPostedLine(ctx, journalLineID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewDomainError("Journal entry line not found: %s", journalLineID)
			}
			return err
		}
		if posted.AccountID != account.GLAccountID {
			return apperrors.NewDomainError("Journal entry line is not on the bank's GL account: %s", journalLineID)
		}
		if !line.Matches(*posted) {
			return apperrors.NewDomainError("Statement amount does not match journal entry amount")
		}
		matched, err := s.bankRepo.IsJournalLineMatched(ctx, journalLineID)
		if err != nil {
			return err
		}
		if matched {
			return apperrors.NewDomainError("Journal entry line is already reconciled: %s", journalLineID)
		}

		line.IsReconciled = true
		line.MatchedLineID = journalLineID
		line.Touch(s.Now(), userID)
		return s.bankRepo.UpdateStatementMatch(ctx, *line)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile statement line",
			slog.String("statement_line_id", statementLineID),
			slog.String("journal_line_id", journalLineID))
		return nil, err
	}

	s.LogInfo(ctx, "Statement line reconciled",
		slog.String("statement_line_id", statementLineID),
		slog.String("journal_line_id", journalLineID))
	return line, nil
}

func (s *bankService) UnreconcileStatementLine(ctx context.Context, statementLineID string, userID string) (*domain.BankStatementLine, error) {
	var line *domain.BankStatementLine
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		line, err = s.findStatementLine(ctx, statementLineID, true)
		if err != nil {
			return err
		}
		line.IsReconciled = false
		line.MatchedLineID = ""
		line.Touch(s.Now(), userID)
		return s.bankRepo.UpdateStatementMatch(ctx, *line)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to unreconcile statement line", slog.String("statement_line_id", statementLineID))
		return nil, err
	}
	s.LogInfo(ctx, "Statement line unreconciled", slog.String("statement_line_id", statementLineID))
	return line, nil
}

func (s *bankService) reconciledBalance(ctx context.Context, account *domain.BankAccount) (decimal.Decimal, error) {
	sum, err := s.bankRepo.SumReconciled(ctx, account.BankAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.OpeningBalance.Add(sum), nil
}

func (s *bankService) GetReconciledBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	account, err := s.findBankAccount(ctx, bankAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.reconciledBalance(ctx, account)
}

func (s *bankService) GetReconciliationSummary(ctx context.Context, bankAccountID string) (*domain.ReconciliationSummary, error) {
	account, err := s.findBankAccount(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	reconciled, err := s.reconciledBalance(ctx, account)
	if err != nil {
		return nil, err
	}
	debit, credit, err := s.journalRepo.SumPostedLines(ctx, account.GLAccountID, nil, nil)
	if err != nil {
		return nil, err
	}
	open, err := s.bankRepo.CountUnreconciled(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	gl := debit.Sub(credit)
	return &domain.ReconciliationSummary{
		BankAccountID:     bankAccountID,
		OpeningBalance:    account.OpeningBalance,
		ReconciledBalance: reconciled,
		GLBalance:         gl,
		Difference:        gl.Sub(reconciled),
		UnreconciledCount: open,
	}, nil
}

func (s *bankService) FindPotentialMatches(ctx context.Context, statementLineID string) (*domain.BankStatementLine, []domain.PostedLine, error) {
	line, err := s.findStatementLine(ctx, statementLineID, false)
	if err != nil {
		return nil, nil, err
	}
	account, err := s.findBankAccount(ctx, line.BankAccountID)
	if err != nil {
		return nil, nil, err
	}
	from, to := line.MatchWindow()
	candidates, err := s.journalRepo.ListPostedLines(ctx, account.GLAccountID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return line, candidates, nil
}
