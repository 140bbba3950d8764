package models

import "database/sql"

// Account is a row of the accounts table.
type Account struct {
	AccountID       string         `db:"account_id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	AccountType     string         `db:"account_type"`
	ParentAccountID sql.NullString `db:"parent_account_id"`
	Description     string         `db:"description"`
	CurrencyCode    sql.NullString `db:"currency_code"`
	IsActive        bool           `db:"is_active"`
	AuditFields
}
