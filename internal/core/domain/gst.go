package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus is the lifecycle state of a GST return.
type ReturnStatus string

const (
	ReturnDraft     ReturnStatus = "DRAFT"
	ReturnFinalized ReturnStatus = "FINALIZED"
)

// GSTReturn is a periodic aggregation of tax-coded postings. A Draft return
// is a pure read model and may be recomputed at will; a Finalized return is
// immutable and linked to exactly one settlement journal entry.
type GSTReturn struct {
	ReturnID    string       `json:"returnID"` // Primary Key (UUID)
	PeriodStart time.Time    `json:"periodStart"`
	PeriodEnd   time.Time    `json:"periodEnd"`
	Status      ReturnStatus `json:"status"`

	// Return boxes.
	StandardRatedSupplies decimal.Decimal `json:"standardRatedSupplies"`
	ZeroRatedSupplies     decimal.Decimal `json:"zeroRatedSupplies"`
	ExemptSupplies        decimal.Decimal `json:"exemptSupplies"`
	TaxablePurchases      decimal.Decimal `json:"taxablePurchases"`
	OutputTax             decimal.Decimal `json:"outputTax"`
	InputTax              decimal.Decimal `json:"inputTax"`
	NetTax                decimal.Decimal `json:"netTax"` // Positive: payable; negative: claimable

	SettlementJournalID *string    `json:"settlementJournalID"` // Set on finalization
	FinalizedAt         *time.Time `json:"finalizedAt"`
	FinalizedBy         *string    `json:"finalizedBy"`
	AuditFields
}
