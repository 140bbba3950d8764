package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance returns DebitNormal for assets and expenses, CreditNormal otherwise.
func (t AccountType) NormalBalance() NormalBalance {
	if t == Asset || t == Expense {
		return DebitNormal
	}
	return CreditNormal
}

// IsDebitNormal is shorthand for t.NormalBalance() == DebitNormal.
func (t AccountType) IsDebitNormal() bool {
	return t.NormalBalance() == DebitNormal
}

// IsBalanceSheet reports whether the type belongs on the balance sheet.
func (t AccountType) IsBalanceSheet() bool {
	return t == Asset || t == Liability || t == Equity
}

// IsIncomeStatement reports whether the type belongs on the profit and loss statement.
func (t AccountType) IsIncomeStatement() bool {
	return t == Revenue || t == Expense
}

// OrientedBalance turns raw debit and credit sums into a balance expressed
// on the type's normal side. A negative result is an abnormal balance.
func (t AccountType) OrientedBalance(debit, credit decimal.Decimal) decimal.Decimal {
	if t.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// Account represents a ledger account in the chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique, immutable
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Empty when top level
	Description     string      `json:"description"`
	CurrencyCode    string      `json:"currencyCode,omitempty"` // Empty means the base currency
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// NormalBalance returns the account's normal side.
func (a Account) NormalBalance() NormalBalance {
	return a.AccountType.NormalBalance()
}
