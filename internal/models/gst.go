package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTReturn is the persistence model for a GST return.
type GSTReturn struct {
	ReturnID    string    `db:"return_id"`
	PeriodStart time.Time `db:"period_start"`
	PeriodEnd   time.Time `db:"period_end"`
	Status      string    `db:"status"`

	StandardRatedSupplies decimal.Decimal `db:"standard_rated_supplies"`
	ZeroRatedSupplies     decimal.Decimal `db:"zero_rated_supplies"`
	ExemptSupplies        decimal.Decimal `db:"exempt_supplies"`
	TaxablePurchases      decimal.Decimal `db:"taxable_purchases"`
	OutputTax             decimal.Decimal `db:"output_tax"`
	InputTax              decimal.Decimal `db:"input_tax"`
	NetTax                decimal.Decimal `db:"net_tax"`

	SettlementJournalID *string    `db:"settlement_journal_id"`
	FinalizedAt         *time.Time `db:"finalized_at"`
	FinalizedBy         *string    `db:"finalized_by"`
	AuditFields
}
