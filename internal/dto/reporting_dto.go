package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

const reportDateFormat = "2006-01-02"

// AsOfParams is the query for point-in-time reports.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// DateRangeParams is the query for ranged reports.
type DateRangeParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets           decimal.Decimal `json:"totalAssets"`
		TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
		TotalEquity           decimal.Decimal `json:"totalEquity"`
		PriorPeriodEarnings   decimal.Decimal `json:"priorPeriodEarnings"`
		CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`
		RetainedEarnings      decimal.Decimal `json:"retainedEarnings"`
	} `json:"summary"`
	IsBalanced bool `json:"isBalanced"`
}

// GeneralLedgerResponse represents one account's ledger over a date range.
type GeneralLedgerResponse struct {
	Account        AccountAmountResponse      `json:"account"`
	FromDate       string                     `json:"fromDate"`
	ToDate         string                     `json:"toDate"`
	OpeningBalance decimal.Decimal            `json:"openingBalance"`
	Lines          []domain.GeneralLedgerLine `json:"lines"`
	TotalDebit     decimal.Decimal            `json:"totalDebit"`
	TotalCredit    decimal.Decimal            `json:"totalCredit"`
	ClosingBalance decimal.Decimal            `json:"closingBalance"`
}

func toAccountAmounts(items []domain.AccountBalance) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(items))
	for i, it := range items {
		out[i] = AccountAmountResponse{AccountID: it.AccountID, Code: it.Code, Name: it.Name, Amount: it.Balance}
	}
	return out
}

// ToTrialBalanceResponse converts a domain.TrialBalance.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:       tb.AsOfDate.Format(reportDateFormat),
		Rows:       make([]TrialBalanceRowResponse, len(tb.Rows)),
		IsBalanced: tb.IsBalanced,
	}
	for i, r := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			Code:        r.Code,
			AccountName: r.Name,
			AccountType: string(r.AccountType),
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	resp.Totals.Debit = tb.TotalDebit
	resp.Totals.Credit = tb.TotalCredit
	return resp
}

// ToProfitAndLossResponse converts a domain.ProfitAndLoss.
func ToProfitAndLossResponse(pl *domain.ProfitAndLoss) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: pl.StartDate.Format(reportDateFormat),
		ToDate:   pl.EndDate.Format(reportDateFormat),
		Revenue:  toAccountAmounts(pl.Revenue),
		Expenses: toAccountAmounts(pl.Expenses),
	}
	resp.Summary.TotalRevenue = pl.TotalRevenue
	resp.Summary.TotalExpenses = pl.TotalExpenses
	resp.Summary.NetIncome = pl.NetIncome
	return resp
}

// ToBalanceSheetResponse converts a domain.BalanceSheet.
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        bs.AsOfDate.Format(reportDateFormat),
		Assets:      toAccountAmounts(bs.Assets),
		Liabilities: toAccountAmounts(bs.Liabilities),
		Equity:      toAccountAmounts(bs.Equity),
		IsBalanced:  bs.IsBalanced,
	}
	resp.Summary.TotalAssets = bs.TotalAssets
	resp.Summary.TotalLiabilities = bs.TotalLiabilities
	resp.Summary.TotalEquity = bs.TotalEquity
	resp.Summary.PriorPeriodEarnings = bs.PriorPeriodEarnings
	resp.Summary.CurrentPeriodEarnings = bs.CurrentPeriodEarnings
	resp.Summary.RetainedEarnings = bs.RetainedEarnings
	return resp
}

// ToGeneralLedgerResponse converts a domain.GeneralLedger.
func ToGeneralLedgerResponse(gl *domain.GeneralLedger) GeneralLedgerResponse {
	return GeneralLedgerResponse{
		Account: AccountAmountResponse{
			AccountID: gl.Account.AccountID,
			Code:      gl.Account.Code,
			Name:      gl.Account.Name,
			Amount:    gl.ClosingBalance,
		},
		FromDate:       gl.StartDate.Format(reportDateFormat),
		ToDate:         gl.EndDate.Format(reportDateFormat),
		OpeningBalance: gl.OpeningBalance,
		Lines:          gl.Lines,
		TotalDebit:     gl.TotalDebit,
		TotalCredit:    gl.TotalCredit,
		ClosingBalance: gl.ClosingBalance,
	}
}
