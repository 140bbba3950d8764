package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks an invoice through billing and collection.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// InvoicePrefix is the numbering prefix for invoices.
const InvoicePrefix = "INV"

// PaymentReferencePrefix prefixes the reference of payment entries.
const PaymentReferencePrefix = "PMT"

// Invoice bills a customer. Its ledger effect lives in the linked journal entries.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	InvoiceNumber  string          `json:"invoiceNumber"` // INV-yyyyMM-0001
	CustomerID     string          `json:"customerID"`
	CurrencyCode   string          `json:"currencyCode,omitempty"` // Empty means the base currency
	InvoiceDate    time.Time       `json:"invoiceDate"`
	DueDate        time.Time       `json:"dueDate"`
	Status         InvoiceStatus   `json:"status"`
	Items          []InvoiceItem   `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PaidDate       *time.Time      `json:"paidDate,omitempty"`
	Notes          string          `json:"notes"`
	JournalEntryID string          `json:"journalEntryID,omitempty"` // set on send
	PaymentEntryID string          `json:"paymentEntryID,omitempty"` // set on payment
	AuditFields
}

// InvoiceItem is one billed line. Amount is always Quantity * UnitPrice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	LineNumber  int             `json:"lineNumber"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// RecalculateTotals derives item amounts, subtotal and total from quantities, prices and tax.
func (i *Invoice) RecalculateTotals() {
	subtotal := decimal.Zero
	for idx := range i.Items {
		i.Items[idx].Amount = i.Items[idx].Quantity.Mul(i.Items[idx].UnitPrice)
		subtotal = subtotal.Add(i.Items[idx].Amount)
	}
	i.Subtotal = subtotal
	i.TotalAmount = subtotal.Add(i.TaxAmount)
}

// IsOverdue reports whether a sent invoice is past due on the given day.
func (i Invoice) IsOverdue(today time.Time) bool {
	return i.Status == InvoiceSent && DateOnly(i.DueDate).Before(DateOnly(today))
}

// Outstanding is the amount still owed.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// InvoiceFilter narrows invoice listings. Zero values mean no constraint.
type InvoiceFilter struct {
	Status     InvoiceStatus
	CustomerID string
}
