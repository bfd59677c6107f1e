package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting classification of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account of a given type normally carries its balance.
type NormalSide string

const (
	NormalDebit  NormalSide = "DEBIT"
	NormalCredit NormalSide = "CREDIT"
)

// NormalBalanceSide returns the normal balance side for the account type.
// Asset and Expense accounts are debit-normal; Liability, Equity and Income are credit-normal.
func (t AccountType) NormalBalanceSide() NormalSide {
	switch t {
	case Asset, Expense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// IsValid reports whether t is one of the five known classifications.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a ledger account in the chart of accounts.
// Accounts form a tree via ParentAccountID; the tree is held as an arena of
// records keyed by AccountID, never as live parent/child pointers.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique user-facing account code
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc. Immutable once the account has postings.
	ParentAccountID *string         `json:"parentAccountID"` // Nullable self-reference
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	Balance         decimal.Decimal `json:"balance"` // Persisted balance, maintained by the posting engine
	HasChildren     bool            `json:"hasChildren"`
	AuditFields
}

// AccountNode is an entry in a depth-first traversal of the chart of accounts,
// parent before children.
type AccountNode struct {
	Account Account       `json:"account"`
	Depth   int           `json:"depth"`
	Children []AccountNode `json:"children,omitempty"`
}

// AccountRole names a business meaning the source-document translator must
// resolve to a concrete ledger account.
type AccountRole string

const (
	RoleAccountsReceivable AccountRole = "ACCOUNTS_RECEIVABLE"
	RoleAccountsPayable    AccountRole = "ACCOUNTS_PAYABLE"
	RoleSalesRevenue       AccountRole = "SALES_REVENUE"
	RolePurchases          AccountRole = "PURCHASES"
	RoleGSTOutput          AccountRole = "GST_OUTPUT"
	RoleGSTInput           AccountRole = "GST_INPUT"
	RoleGSTClearing        AccountRole = "GST_CLEARING"
)

// AccountMapping binds an AccountRole to a ledger account.
type AccountMapping struct {
	Role      AccountRole `json:"role"`
	AccountID string      `json:"accountID"`
	AuditFields
}
