package models

import "github.com/shopspring/decimal"

// Account is the persistence model for a ledger account.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	ParentAccountID *string         `db:"parent_account_id"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	OpeningBalance  decimal.Decimal `db:"opening_balance"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}

// AccountMapping binds a translator account role to an account.
type AccountMapping struct {
	Role      string `db:"role"`
	AccountID string `db:"account_id"`
	AuditFields
}
