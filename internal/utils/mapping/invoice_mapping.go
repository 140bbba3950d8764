package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelInvoice converts the header of a domain Invoice.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		InvoiceNumber:  d.InvoiceNumber,
		CustomerID:     d.CustomerID,
		CurrencyCode:   nullString(d.CurrencyCode),
		InvoiceDate:    d.InvoiceDate,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		TotalAmount:    d.TotalAmount,
		PaidAmount:     d.PaidAmount,
		PaidDate:       nullTime(d.PaidDate),
		Notes:          d.Notes,
		JournalEntryID: nullString(d.JournalEntryID),
		PaymentEntryID: nullString(d.PaymentEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts an invoice row and its items.
func ToDomainInvoice(m models.Invoice, items []models.InvoiceItem) domain.Invoice {
	ds := make([]domain.InvoiceItem, len(items))
	for i, it := range items {
		ds[i] = ToDomainInvoiceItem(it)
	}
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		InvoiceNumber:  m.InvoiceNumber,
		CustomerID:     m.CustomerID,
		CurrencyCode:   m.CurrencyCode.String,
		InvoiceDate:    m.InvoiceDate,
		DueDate:        m.DueDate,
		Status:         domain.InvoiceStatus(m.Status),
		Items:          ds,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		TotalAmount:    m.TotalAmount,
		PaidAmount:     m.PaidAmount,
		PaidDate:       timePtr(m.PaidDate),
		Notes:          m.Notes,
		JournalEntryID: m.JournalEntryID.String,
		PaymentEntryID: m.PaymentEntryID.String,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:      d.ItemID,
		InvoiceID:   d.InvoiceID,
		LineNumber:  d.LineNumber,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      d.Amount,
	}
}

func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		LineNumber:  m.LineNumber,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Code:        d.Code,
		Name:        d.Name,
		Email:       d.Email,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Code:        m.Code,
		Name:        m.Name,
		Email:       m.Email,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
