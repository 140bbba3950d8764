package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one billed line.
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
type CreateInvoiceRequest struct {
	CustomerID   string               `json:"customerID" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	InvoiceDate  time.Time            `json:"invoiceDate" binding:"required"`
	DueDate      time.Time            `json:"dueDate" binding:"required"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxAmount    decimal.Decimal      `json:"taxAmount"`
	Notes        string               `json:"notes" binding:"max=1000"`
}

// UpdateInvoiceRequest replaces the fields and items of a draft invoice.
type UpdateInvoiceRequest struct {
	CustomerID   string               `json:"customerID" binding:"required"`
	CurrencyCode string               `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	InvoiceDate  time.Time            `json:"invoiceDate" binding:"required"`
	DueDate      time.Time            `json:"dueDate" binding:"required"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxAmount    decimal.Decimal      `json:"taxAmount"`
	Notes        string               `json:"notes" binding:"max=1000"`
}

// MarkInvoicePaidRequest carries the payment date.
type MarkInvoicePaidRequest struct {
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
}

// ListInvoicesParams defines the query parameters for listing invoices.
type ListInvoicesParams struct {
	Status     domain.InvoiceStatus `form:"status" binding:"omitempty,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
	CustomerID string               `form:"customerID"`
}

// InvoiceItemResponse defines the data returned for an invoice item.
type InvoiceItemResponse struct {
	LineNumber  int             `json:"lineNumber"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	InvoiceNumber  string                `json:"invoiceNumber"`
	CustomerID     string                `json:"customerID"`
	CurrencyCode   string                `json:"currencyCode,omitempty"`
	InvoiceDate    time.Time             `json:"invoiceDate"`
	DueDate        time.Time             `json:"dueDate"`
	Status         domain.InvoiceStatus  `json:"status"`
	Items          []InvoiceItemResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	PaidAmount     decimal.Decimal       `json:"paidAmount"`
	PaidDate       *time.Time            `json:"paidDate,omitempty"`
	Notes          string                `json:"notes"`
	JournalEntryID string                `json:"journalEntryID,omitempty"`
	PaymentEntryID string                `json:"paymentEntryID,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ListInvoicesResponse wraps a list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// MarkOverdueResponse reports how many invoices were reclassified.
type MarkOverdueResponse struct {
	Updated int `json:"updated"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			LineNumber:  it.LineNumber,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		}
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerID:     inv.CustomerID,
		CurrencyCode:   inv.CurrencyCode,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		Status:         inv.Status,
		Items:          items,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		TotalAmount:    inv.TotalAmount,
		PaidAmount:     inv.PaidAmount,
		PaidDate:       inv.PaidDate,
		Notes:          inv.Notes,
		JournalEntryID: inv.JournalEntryID,
		PaymentEntryID: inv.PaymentEntryID,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
}

// ToListInvoicesResponse converts a slice of invoices.
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: out}
}

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Code    string `json:"code" binding:"required,max=20"`
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"max=500"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Code:       c.Code,
		Name:       c.Name,
		Email:      c.Email,
		Address:    c.Address,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}
