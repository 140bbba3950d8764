package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_RecalculateTotals(t *testing.T) {
	inv := domain.Invoice{
		TaxAmount: decimal.NewFromInt(100),
		Items: []domain.InvoiceItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
			{Description: "Support", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	inv.RecalculateTotals()

	assert.True(t, inv.Items[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(1300)))
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(1400)))
}

func TestInvoice_IsOverdue(t *testing.T) {
	today := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	due := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status domain.InvoiceStatus
		due    time.Time
		want   bool
	}{
		{"sent and past due", domain.InvoiceSent, due, true},
		{"sent and due today", domain.InvoiceSent, domain.DateOnly(today), false},
		{"draft past due", domain.InvoiceDraft, due, false},
		{"paid past due", domain.InvoicePaid, due, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Invoice{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, inv.IsOverdue(today))
		})
	}
}

func TestFiscalYear_Contains(t *testing.T) {
	fy := domain.FiscalYear{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, fy.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, fy.Contains(time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))

	next := domain.FiscalYear{
		StartDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 12, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, fy.Overlaps(next))
	next.StartDate = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, fy.Overlaps(next))
}

func TestPeriodOf(t *testing.T) {
	assert.Equal(t, "202601", domain.PeriodOf(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
}
