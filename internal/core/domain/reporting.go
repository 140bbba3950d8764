package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the line item shared by every statement.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// NewAccountBalance pairs an account with a computed balance.
func NewAccountBalance(a Account, balance decimal.Decimal) AccountBalance {
	return AccountBalance{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: a.AccountType,
		Balance:     balance,
	}
}

// TrialBalanceRow places an account balance in the debit or credit column.
type TrialBalanceRow struct {
	AccountBalance
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalance lists non-zero account balances as of a date.
type TrialBalance struct {
	AsOfDate    time.Time         `json:"asOfDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// ProfitAndLoss covers revenue and expense activity within a date range.
type ProfitAndLoss struct {
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	Revenue       []AccountBalance `json:"revenue"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}

// BalanceSheet reports the accounting equation as of a date.
// RetainedEarnings is PriorPeriodEarnings plus CurrentPeriodEarnings.
type BalanceSheet struct {
	AsOfDate              time.Time        `json:"asOfDate"`
	Assets                []AccountBalance `json:"assets"`
	Liabilities           []AccountBalance `json:"liabilities"`
	Equity                []AccountBalance `json:"equity"`
	TotalAssets           decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal  `json:"totalEquity"`
	PriorPeriodEarnings   decimal.Decimal  `json:"priorPeriodEarnings"`
	CurrentPeriodEarnings decimal.Decimal  `json:"currentPeriodEarnings"`
	RetainedEarnings      decimal.Decimal  `json:"retainedEarnings"`
	IsBalanced            bool             `json:"isBalanced"`
}

// GeneralLedgerLine is one posted line with the account balance after it.
type GeneralLedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedger is the posted activity of one account within a date range.
type GeneralLedger struct {
	Account        AccountBalance      `json:"account"` // Balance holds the closing balance
	StartDate      time.Time           `json:"startDate"`
	EndDate        time.Time           `json:"endDate"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Lines          []GeneralLedgerLine `json:"lines"`
	TotalDebit     decimal.Decimal     `json:"totalDebit"`
	TotalCredit    decimal.Decimal     `json:"totalCredit"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}

// Dashboard is a one-screen summary of the ledger.
type Dashboard struct {
	AsOfDate            time.Time       `json:"asOfDate"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	TotalEquity         decimal.Decimal `json:"totalEquity"`
	MonthRevenue        decimal.Decimal `json:"monthRevenue"`
	MonthExpenses       decimal.Decimal `json:"monthExpenses"`
	MonthNetIncome      decimal.Decimal `json:"monthNetIncome"`
	CashBalance         decimal.Decimal `json:"cashBalance"`
	ReceivablesBalance  decimal.Decimal `json:"receivablesBalance"`
	PendingDraftEntries int             `json:"pendingDraftEntries"`
	OverdueInvoices     int             `json:"overdueInvoices"`
	OverdueAmount       decimal.Decimal `json:"overdueAmount"`
}
