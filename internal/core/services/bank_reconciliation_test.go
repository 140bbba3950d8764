package services_test

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
)

func (s *LedgerScenarioSuite) bankAccount(opening string) *domain.BankAccount {
	b, err := s.svc.Bank.CreateBankAccount(s.ctx, dto.CreateBankAccountRequest{
		AccountName:    "Operating",
		BankName:       "First Bank",
		AccountNumber:  "0001",
		GLAccountID:    s.id("1000"),
		OpeningBalance: amount(opening),
	}, testUser)
	s.Require().NoError(err)
	return b
}

// deposit is a bank credit; withdrawals come through as debits.
func deposit(date time.Time, amt string) dto.StatementLineRequest {
	return dto.StatementLineRequest{StatementDate: date, Description: "Deposit", CreditAmount: amount(amt), DebitAmount: decimal.Zero}
}

func withdrawal(date time.Time, amt string) dto.StatementLineRequest {
	return dto.StatementLineRequest{StatementDate: date, Description: "Withdrawal", DebitAmount: amount(amt), CreditAmount: decimal.Zero}
}

func (s *LedgerScenarioSuite) importLines(bankAccountID string, lines ...dto.StatementLineRequest) []domain.BankStatementLine {
	imported, err := s.svc.Bank.ImportStatement(s.ctx, bankAccountID, dto.ImportStatementRequest{Lines: lines}, testUser)
	s.Require().NoError(err)
	s.Require().Len(imported, len(lines))
	return imported
}

// cashLine returns the ID of the cash line of a posted two-line entry.
func (s *LedgerScenarioSuite) cashLine(entry *domain.JournalEntry) string {
	for _, l := range entry.Lines {
		if l.AccountID == s.id("1000") {
			return l.LineID
		}
	}
	s.FailNow("entry has no cash line")
	return ""
}

func (s *LedgerScenarioSuite) TestBankAccountNeedsActiveAssetGLAccount() {
	_, err := s.svc.Bank.CreateBankAccount(s.ctx, dto.CreateBankAccountRequest{AccountName: "Ops", GLAccountID: s.id("4000")}, testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Bank account must be linked to an asset account: 4000")

	_, err = s.svc.Bank.CreateBankAccount(s.ctx, dto.CreateBankAccountRequest{AccountName: "Ops", GLAccountID: "missing"}, testUser)
	s.EqualError(err, "GL account not found: missing")

	_, err = s.svc.Bank.CreateBankAccount(s.ctx, dto.CreateBankAccountRequest{AccountName: "Ops", GLAccountID: s.id("1000"), CurrencyCode: "EUR"}, testUser)
	s.EqualError(err, "Currency not found: EUR")

	_, err = s.svc.Bank.CreateBankAccount(s.ctx, dto.CreateBankAccountRequest{GLAccountID: s.id("1000")}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	b := s.bankAccount("250")
	s.True(b.IsActive)
	listed, err := s.svc.Bank.ListBankAccounts(s.ctx, true)
	s.Require().NoError(err)
	s.Len(listed, 1)
}

func (s *LedgerScenarioSuite) TestImportStatementValidatesAmounts() {
	b := s.bankAccount("0")

	both := deposit(day(2026, 4, 1), "10")
	both.DebitAmount = amount("10")
	_, err := s.svc.Bank.ImportStatement(s.ctx, b.BankAccountID, dto.ImportStatementRequest{Lines: []dto.StatementLineRequest{deposit(day(2026, 4, 1), "5"), both}}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorContains(err, "lines[1].debitAmount")

	neither := dto.StatementLineRequest{StatementDate: day(2026, 4, 1)}
	_, err = s.svc.Bank.ImportStatement(s.ctx, b.BankAccountID, dto.ImportStatementRequest{Lines: []dto.StatementLineRequest{neither}}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Bank.ImportStatement(s.ctx, "missing", dto.ImportStatementRequest{Lines: []dto.StatementLineRequest{deposit(day(2026, 4, 1), "5")}}, testUser)
	s.EqualError(err, "Bank account not found: missing")

	// nothing from the rejected batches was stored
	lines, err := s.svc.Bank.ListStatementLines(s.ctx, b.BankAccountID, dto.ListStatementLinesParams{})
	s.Require().NoError(err)
	s.Empty(lines)

	inactive := false
	_, err = s.svc.Bank.UpdateBankAccount(s.ctx, b.BankAccountID, dto.UpdateBankAccountRequest{IsActive: &inactive}, testUser)
	s.Require().NoError(err)
	_, err = s.svc.Bank.ImportStatement(s.ctx, b.BankAccountID, dto.ImportStatementRequest{Lines: []dto.StatementLineRequest{deposit(day(2026, 4, 1), "5")}}, testUser)
	s.EqualError(err, "Bank account is not active: Operating")
}

func (s *LedgerScenarioSuite) TestImportedLinesDefaultTransactionDate() {
	b := s.bankAccount("0")
	cleared := day(2026, 4, 2)
	late := deposit(day(2026, 4, 5), "40")
	late.TransactionDate = &cleared

	imported := s.importLines(b.BankAccountID, deposit(day(2026, 4, 3).Add(15*time.Hour), "10"), late)

	s.Equal(day(2026, 4, 3), imported[0].TransactionDate)
	s.Equal(day(2026, 4, 3), imported[0].StatementDate)
	s.Equal(cleared, imported[1].TransactionDate)
	s.False(imported[0].IsReconciled)
	s.equalAmount("10", imported[0].NetAmount())
}

func (s *LedgerScenarioSuite) TestPotentialMatchesStayWithinSevenDays() {
	b := s.bankAccount("0")
	inside := s.post(day(2026, 5, 3), "1000", "4000", "120")
	edge := s.post(day(2026, 5, 17), "1000", "4000", "80")
	s.post(day(2026, 5, 18), "1000", "4000", "120") // eight days out
	s.post(day(2026, 5, 10), "5000", "2000", "120") // not on the bank's account

	line := s.importLines(b.BankAccountID, deposit(day(2026, 5, 10), "120"))[0]

	got, candidates, err := s.svc.Bank.FindPotentialMatches(s.ctx, line.StatementLineID)
	s.Require().NoError(err)
	s.Equal(line.StatementLineID, got.StatementLineID)
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.LineID
	}
	s.ElementsMatch([]string{s.cashLine(inside), s.cashLine(edge)}, ids)

	resp := dto.ToListMatchCandidatesResponse(got, candidates)
	for _, c := range resp.Candidates {
		s.Equal(c.JournalLineID == s.cashLine(inside), c.AmountMatches)
	}
}

func (s *LedgerScenarioSuite) TestReconcileRequiresMatchingAmount() {
	b := s.bankAccount("0")
	sale := s.post(day(2026, 6, 1), "1000", "4000", "300")
	line := s.importLines(b.BankAccountID, deposit(day(2026, 6, 2), "299.99"))[0]

	_, err := s.svc.Bank.ReconcileStatementLine(s.ctx, line.StatementLineID, s.cashLine(sale), testUser)
	s.ErrorIs(err, apperrors.ErrDomain)
	s.EqualError(err, "Statement amount does not match journal entry amount")

	// a withdrawal of the same size moves the bank the other way
	out := s.importLines(b.BankAccountID, withdrawal(day(2026, 6, 2), "300"))[0]
	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, out.StatementLineID, s.cashLine(sale), testUser)
	s.EqualError(err, "Statement amount does not match journal entry amount")

	revenueLine := sale.Lines[1].LineID
	if sale.Lines[1].AccountID == s.id("1000") {
		revenueLine = sale.Lines[0].LineID
	}
	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, line.StatementLineID, revenueLine, testUser)
	s.EqualError(err, "Journal entry line is not on the bank's GL account: "+revenueLine)

	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, line.StatementLineID, "missing", testUser)
	s.EqualError(err, "Journal entry line not found: missing")

	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, "missing", s.cashLine(sale), testUser)
	s.EqualError(err, "Bank statement not found: missing")
}

func (s *LedgerScenarioSuite) TestReconcileAndUnreconcile() {
	b := s.bankAccount("1000")
	sale := s.post(day(2026, 7, 1), "1000", "4000", "500")
	rent := s.post(day(2026, 7, 3), "5000", "1000", "200")
	lines := s.importLines(b.BankAccountID,
		deposit(day(2026, 7, 2), "500"),
		withdrawal(day(2026, 7, 4), "200"),
		deposit(day(2026, 7, 5), "500"),
	)

	summary, err := s.svc.Bank.GetReconciliationSummary(s.ctx, b.BankAccountID)
	s.Require().NoError(err)
	s.equalAmount("1000", summary.ReconciledBalance)
	s.equalAmount("300", summary.GLBalance)
	s.equalAmount("-700", summary.Difference)
	s.Equal(3, summary.UnreconciledCount)

	matched, err := s.svc.Bank.ReconcileStatementLine(s.ctx, lines[0].StatementLineID, s.cashLine(sale), testUser)
	s.Require().NoError(err)
	s.True(matched.IsReconciled)
	s.Equal(s.cashLine(sale), matched.MatchedLineID)
	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, lines[1].StatementLineID, s.cashLine(rent), testUser)
	s.Require().NoError(err)

	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, lines[0].StatementLineID, s.cashLine(sale), testUser)
	s.EqualError(err, "Bank statement is already reconciled: "+lines[0].StatementLineID)
	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, lines[2].StatementLineID, s.cashLine(sale), testUser)
	s.EqualError(err, "Journal entry line is already reconciled: "+s.cashLine(sale))

	bal, err := s.svc.Bank.GetReconciledBalance(s.ctx, b.BankAccountID)
	s.Require().NoError(err)
	s.equalAmount("1300", bal)

	summary, err = s.svc.Bank.GetReconciliationSummary(s.ctx, b.BankAccountID)
	s.Require().NoError(err)
	s.equalAmount("1000", summary.OpeningBalance)
	s.equalAmount("-1000", summary.Difference)
	s.Equal(1, summary.UnreconciledCount)

	open, err := s.svc.Bank.ListStatementLines(s.ctx, b.BankAccountID, dto.ListStatementLinesParams{UnreconciledOnly: true})
	s.Require().NoError(err)
	s.Require().Len(open, 1)
	s.Equal(lines[2].StatementLineID, open[0].StatementLineID)

	from, to := day(2026, 7, 4), day(2026, 7, 5)
	window, err := s.svc.Bank.ListStatementLines(s.ctx, b.BankAccountID, dto.ListStatementLinesParams{StartDate: &from, EndDate: &to})
	s.Require().NoError(err)
	s.Len(window, 2)

	cleared, err := s.svc.Bank.UnreconcileStatementLine(s.ctx, lines[0].StatementLineID, testUser)
	s.Require().NoError(err)
	s.False(cleared.IsReconciled)
	s.Empty(cleared.MatchedLineID)

	bal, err = s.svc.Bank.GetReconciledBalance(s.ctx, b.BankAccountID)
	s.Require().NoError(err)
	s.equalAmount("800", bal)

	// the freed journal line can back the other deposit now
	_, err = s.svc.Bank.ReconcileStatementLine(s.ctx, lines[2].StatementLineID, s.cashLine(sale), testUser)
	s.Require().NoError(err)
}
