package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance as of a date.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// GeneralLedgerLine is one posted line in an account's ledger view, ordered
// by posting sequence for deterministic display.
type GeneralLedgerLine struct {
	JournalID      string          `json:"journalID"`
	JournalDate    time.Time       `json:"journalDate"`
	Description    string          `json:"description"`
	PostingSeq     int64           `json:"postingSeq"`
	LineNo         int             `json:"lineNo"`
	Side           EntrySide       `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Memo           string          `json:"memo"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report over a date range.
type PAndLReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Income    []AccountAmount `json:"income"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet as of a date.
// Warning is populated, never raised as an error, when the accounting
// identity Assets = Liabilities + Equity does not hold: a violation points
// at an upstream bug, not at the caller.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Warning          *ConsistencyWarning `json:"warning,omitempty"`
}

// ConsistencyWarning surfaces a violated internal invariant without failing
// the request.
type ConsistencyWarning struct {
	Message    string          `json:"message"`
	Difference decimal.Decimal `json:"difference"`
}

// TaxedLineTotal is an aggregate over posted, tax-coded lines, used by the
// GST return preparer.
type TaxedLineTotal struct {
	TaxKind     TaxKind         `json:"taxKind"`
	AccountType AccountType     `json:"accountType"`
	Side        EntrySide       `json:"side"`
	Total       decimal.Decimal `json:"total"`
}

// AccountMovement is the debit/credit activity of one account over a range.
type AccountMovement struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}
