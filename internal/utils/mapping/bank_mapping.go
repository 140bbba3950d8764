package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		AccountName:    d.AccountName,
		BankName:       d.BankName,
		AccountNumber:  d.AccountNumber,
		CurrencyCode:   nullString(d.CurrencyCode),
		GLAccountID:    d.GLAccountID,
		OpeningBalance: d.OpeningBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		AccountName:    m.AccountName,
		BankName:       m.BankName,
		AccountNumber:  m.AccountNumber,
		CurrencyCode:   m.CurrencyCode.String,
		GLAccountID:    m.GLAccountID,
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelStatementLine(d domain.BankStatementLine) models.BankStatementLine {
	return models.BankStatementLine{
		StatementLineID: d.StatementLineID,
		BankAccountID:   d.BankAccountID,
		StatementDate:   d.StatementDate,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Reference:       d.Reference,
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		IsReconciled:    d.IsReconciled,
		MatchedLineID:   nullString(d.MatchedLineID),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainStatementLine(m models.BankStatementLine) domain.BankStatementLine {
	return domain.BankStatementLine{
		StatementLineID: m.StatementLineID,
		BankAccountID:   m.BankAccountID,
		StatementDate:   m.StatementDate,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Reference:       m.Reference,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		IsReconciled:    m.IsReconciled,
		MatchedLineID:   m.MatchedLineID.String,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
