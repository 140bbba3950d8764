package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountMappingNullableParent(t *testing.T) {
	top := domain.Account{AccountID: "a1", Code: "1000", AccountType: domain.Asset}
	m := ToModelAccount(top)
	assert.False(t, m.ParentAccountID.Valid)

	child := domain.Account{AccountID: "a2", Code: "1010", AccountType: domain.Asset, ParentAccountID: "a1"}
	m = ToModelAccount(child)
	assert.True(t, m.ParentAccountID.Valid)
	assert.Equal(t, "a1", ToDomainAccount(m).ParentAccountID)
}

func TestInvoiceMappingOptionalFields(t *testing.T) {
	paid := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inv := domain.Invoice{
		InvoiceID:      "i1",
		Status:         domain.InvoicePaid,
		TotalAmount:    decimal.NewFromInt(100),
		PaidDate:       &paid,
		JournalEntryID: "e1",
	}

	m := ToModelInvoice(inv)
	assert.True(t, m.PaidDate.Valid)
	assert.True(t, m.JournalEntryID.Valid)
	assert.False(t, m.PaymentEntryID.Valid)

	back := ToDomainInvoice(m, nil)
	assert.Equal(t, paid, *back.PaidDate)
	assert.Equal(t, "", back.PaymentEntryID)
	assert.Empty(t, back.Items)
}

func TestStatementLineMappingMatchedLine(t *testing.T) {
	open := domain.BankStatementLine{StatementLineID: "s1", CreditAmount: decimal.NewFromInt(50)}
	m := ToModelStatementLine(open)
	assert.False(t, m.MatchedLineID.Valid)

	open.IsReconciled = true
	open.MatchedLineID = "l1"
	m = ToModelStatementLine(open)
	assert.True(t, m.MatchedLineID.Valid)
	back := ToDomainStatementLine(m)
	assert.Equal(t, "l1", back.MatchedLineID)
	assert.True(t, back.NetAmount().Equal(decimal.NewFromInt(50)))
}

func TestCurrencyCodeIsNullableOnAccounts(t *testing.T) {
	m := ToModelAccount(domain.Account{AccountID: "a1", Code: "1000"})
	assert.False(t, m.CurrencyCode.Valid)

	m = ToModelAccount(domain.Account{AccountID: "a1", Code: "1000", CurrencyCode: "EUR"})
	assert.True(t, m.CurrencyCode.Valid)
	assert.Equal(t, "EUR", ToDomainAccount(m).CurrencyCode)
}
