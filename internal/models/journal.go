package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the persistence model for a journal entry.
type Journal struct {
	JournalID    string          `db:"journal_id"`
	JournalDate  time.Time       `db:"journal_date"`
	Description  string          `db:"description"`
	CurrencyCode string          `db:"currency_code"`
	Status       string          `db:"status"`
	SourceType   string          `db:"source_type"`
	SourceID     *string         `db:"source_id"`
	Amount       decimal.Decimal `db:"amount"`

	FiscalPeriodID *string    `db:"fiscal_period_id"`
	PostingSeq     *int64     `db:"posting_seq"`
	PostedAt       *time.Time `db:"posted_at"`
	PostedBy       *string    `db:"posted_by"`

	OriginalJournalID  *string `db:"original_journal_id"`
	ReversingJournalID *string `db:"reversing_journal_id"`
	AuditFields
}

// JournalLine is the persistence model for a journal line.
type JournalLine struct {
	LineID         string          `db:"line_id"`
	JournalID      string          `db:"journal_id"`
	LineNo         int             `db:"line_no"`
	AccountID      string          `db:"account_id"`
	Side           string          `db:"side"`
	Amount         decimal.Decimal `db:"amount"`
	TaxCodeID      *string         `db:"tax_code_id"`
	Memo           string          `db:"memo"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	AuditFields
}
