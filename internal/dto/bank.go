package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	AccountName    string          `json:"accountName" binding:"required,max=100"`
	BankName       string          `json:"bankName" binding:"max=100"`
	AccountNumber  string          `json:"accountNumber" binding:"max=50"`
	CurrencyCode   string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	GLAccountID    string          `json:"glAccountID" binding:"required"` // Active ASSET account
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateBankAccountRequest defines the fields of a bank account that may change.
type UpdateBankAccountRequest struct {
	AccountName   *string `json:"accountName" binding:"omitempty,min=1,max=100"`
	BankName      *string `json:"bankName" binding:"omitempty,max=100"`
	AccountNumber *string `json:"accountNumber" binding:"omitempty,max=50"`
	IsActive      *bool   `json:"isActive"`
}

// ListBankAccountsParams defines the query parameters for listing bank accounts.
type ListBankAccountsParams struct {
	ActiveOnly bool `form:"active"`
}

// StatementLineRequest is one bank transaction to import. Exactly one of the
// amounts must be positive.
type StatementLineRequest struct {
	StatementDate   time.Time       `json:"statementDate" binding:"required"`
	TransactionDate *time.Time      `json:"transactionDate"` // Defaults to statementDate
	Description     string          `json:"description" binding:"max=255"`
	Reference       string          `json:"reference" binding:"max=100"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
}

// ImportStatementRequest carries a batch of statement lines.
type ImportStatementRequest struct {
	Lines []StatementLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListStatementLinesParams defines the query parameters for listing statement lines.
type ListStatementLinesParams struct {
	StartDate        *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate          *time.Time `form:"endDate" time_format:"2006-01-02"`
	UnreconciledOnly bool       `form:"unreconciled"`
}

// ReconcileRequest names the journal line a statement line is matched with.
type ReconcileRequest struct {
	JournalLineID string `json:"journalLineID" binding:"required"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	AccountName    string          `json:"accountName"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	CurrencyCode   string          `json:"currencyCode,omitempty"`
	GLAccountID    string          `json:"glAccountID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ListBankAccountsResponse wraps a list of bank accounts.
type ListBankAccountsResponse struct {
	BankAccounts []BankAccountResponse `json:"bankAccounts"`
}

// StatementLineResponse defines the data returned for a statement line.
type StatementLineResponse struct {
	StatementLineID string          `json:"statementLineID"`
	BankAccountID   string          `json:"bankAccountID"`
	StatementDate   time.Time       `json:"statementDate"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	IsReconciled    bool            `json:"isReconciled"`
	MatchedLineID   string          `json:"matchedLineID,omitempty"`
	ImportedAt      time.Time       `json:"importedAt"`
}

// ListStatementLinesResponse wraps a list of statement lines.
type ListStatementLinesResponse struct {
	Lines []StatementLineResponse `json:"lines"`
}

// MatchCandidateResponse is a posted journal line offered as a match.
type MatchCandidateResponse struct {
	JournalLineID string          `json:"journalLineID"`
	EntryID       string          `json:"entryID"`
	EntryNumber   string          `json:"entryNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	AmountMatches bool            `json:"amountMatches"`
}

// ListMatchCandidatesResponse wraps the candidates for one statement line.
type ListMatchCandidatesResponse struct {
	StatementLineID string                   `json:"statementLineID"`
	Candidates      []MatchCandidateResponse `json:"candidates"`
}

// ToBankAccountResponse converts a domain.BankAccount.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  a.BankAccountID,
		AccountName:    a.AccountName,
		BankName:       a.BankName,
		AccountNumber:  a.AccountNumber,
		CurrencyCode:   a.CurrencyCode,
		GLAccountID:    a.GLAccountID,
		OpeningBalance: a.OpeningBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
}

// ToListBankAccountsResponse converts a slice of domain.BankAccount.
func ToListBankAccountsResponse(accounts []domain.BankAccount) ListBankAccountsResponse {
	out := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToBankAccountResponse(&accounts[i])
	}
	return ListBankAccountsResponse{BankAccounts: out}
}

// ToStatementLineResponse converts a domain.BankStatementLine.
func ToStatementLineResponse(l *domain.BankStatementLine) StatementLineResponse {
	return StatementLineResponse{
		StatementLineID: l.StatementLineID,
		BankAccountID:   l.BankAccountID,
		StatementDate:   l.StatementDate,
		TransactionDate: l.TransactionDate,
		Description:     l.Description,
		Reference:       l.Reference,
		DebitAmount:     l.DebitAmount,
		CreditAmount:    l.CreditAmount,
		NetAmount:       l.NetAmount(),
		IsReconciled:    l.IsReconciled,
		MatchedLineID:   l.MatchedLineID,
		ImportedAt:      l.CreatedAt,
	}
}

// ToListStatementLinesResponse converts a slice of statement lines.
func ToListStatementLinesResponse(lines []domain.BankStatementLine) ListStatementLinesResponse {
	out := make([]StatementLineResponse, len(lines))
	for i := range lines {
		out[i] = ToStatementLineResponse(&lines[i])
	}
	return ListStatementLinesResponse{Lines: out}
}

// ToListMatchCandidatesResponse flags which candidates carry the statement line's amount.
func ToListMatchCandidatesResponse(line *domain.BankStatementLine, candidates []domain.PostedLine) ListMatchCandidatesResponse {
	out := make([]MatchCandidateResponse, len(candidates))
	for i, p := range candidates {
		desc := p.LineDescription
		if desc == "" {
			desc = p.EntryDescription
		}
		out[i] = MatchCandidateResponse{
			JournalLineID: p.LineID,
			EntryID:       p.EntryID,
			EntryNumber:   p.EntryNumber,
			EntryDate:     p.EntryDate,
			Description:   desc,
			DebitAmount:   p.DebitAmount,
			CreditAmount:  p.CreditAmount,
			AmountMatches: line.Matches(p),
		}
	}
	return ListMatchCandidatesResponse{StatementLineID: line.StatementLineID, Candidates: out}
}
