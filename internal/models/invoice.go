package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	InvoiceNumber  string          `db:"invoice_number"`
	CustomerID     string          `db:"customer_id"`
	CurrencyCode   sql.NullString  `db:"currency_code"`
	InvoiceDate    time.Time       `db:"invoice_date"`
	DueDate        time.Time       `db:"due_date"`
	Status         string          `db:"status"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	PaidDate       sql.NullTime    `db:"paid_date"`
	Notes          string          `db:"notes"`
	JournalEntryID sql.NullString  `db:"journal_entry_id"`
	PaymentEntryID sql.NullString  `db:"payment_entry_id"`
	AuditFields
}

// InvoiceItem is a row of the invoice_items table.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	LineNumber  int             `db:"line_number"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
}

// Customer is a row of the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Code       string `db:"code"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Address    string `db:"address"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
