package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// EntrySide indicates whether a journal line is a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// SourceType identifies the business document a journal entry was derived from.
type SourceType string

const (
	SourceManual          SourceType = "MANUAL"
	SourceSalesInvoice    SourceType = "SALES_INVOICE"
	SourcePurchaseInvoice SourceType = "PURCHASE_INVOICE"
	SourceTaxSettlement   SourceType = "TAX_SETTLEMENT"
)

// Journal represents a single, balanced financial event composed of multiple lines.
// A Draft is freely editable and discardable; a Posted journal is immutable and
// may only be corrected by posting a reversing journal that references it.
type Journal struct {
	JournalID    string        `json:"journalID"` // Primary Key (UUID)
	JournalDate  time.Time     `json:"journalDate"`
	Description  string        `json:"description"`
	CurrencyCode string        `json:"currencyCode"`
	Status       JournalStatus `json:"status"`
	SourceType   SourceType    `json:"sourceType"`
	SourceID     *string       `json:"sourceID"` // Document id; nil for manual entries
	Amount       decimal.Decimal `json:"amount"` // Economic value: the debit-side total

	// Posting facts, set exactly once by the posting engine.
	FiscalPeriodID *string    `json:"fiscalPeriodID"`
	PostingSeq     *int64     `json:"postingSeq"` // Gapless, monotonic within a period
	PostedAt       *time.Time `json:"postedAt"`
	PostedBy       *string    `json:"postedBy"`

	// Reversal linkage.
	OriginalJournalID  *string `json:"originalJournalID"`  // Set on the reversing journal
	ReversingJournalID *string `json:"reversingJournalID"` // Set on the reversed journal

	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// IsPosted reports whether the journal has been committed to the ledger.
func (j Journal) IsPosted() bool {
	return j.Status == Posted || j.Status == Reversed
}

// JournalLine represents a single line item within a journal, affecting one account.
// Exactly one of debit/credit applies: Side carries which, Amount is always positive.
type JournalLine struct {
	LineID    string          `json:"lineID"` // Primary Key (UUID)
	JournalID string          `json:"journalID"`
	LineNo    int             `json:"lineNo"` // 1-based sequence within the journal
	AccountID string          `json:"accountID"`
	Side      EntrySide       `json:"side"`
	Amount    decimal.Decimal `json:"amount"` // Positive, exact decimal
	TaxCodeID *string         `json:"taxCodeID"`
	Memo      string          `json:"memo"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this line, set at posting time
	AuditFields
}
