package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PrepareReturnRequest selects the period range a GST return covers.
type PrepareReturnRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required" time_format:"2006-01-02"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required" time_format:"2006-01-02"`
}

// GSTReturnResponse defines the data returned for a GST return.
type GSTReturnResponse struct {
	ReturnID    string    `json:"returnID"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	Status      string    `json:"status"`

	StandardRatedSupplies decimal.Decimal `json:"standardRatedSupplies"`
	ZeroRatedSupplies     decimal.Decimal `json:"zeroRatedSupplies"`
	ExemptSupplies        decimal.Decimal `json:"exemptSupplies"`
	TaxablePurchases      decimal.Decimal `json:"taxablePurchases"`
	OutputTax             decimal.Decimal `json:"outputTax"`
	InputTax              decimal.Decimal `json:"inputTax"`
	NetTax                decimal.Decimal `json:"netTax"`

	SettlementJournalID *string    `json:"settlementJournalID,omitempty"`
	FinalizedAt         *time.Time `json:"finalizedAt,omitempty"`
}

// ToGSTReturnResponse converts a domain.GSTReturn to GSTReturnResponse.
func ToGSTReturnResponse(r *domain.GSTReturn) GSTReturnResponse {
	return GSTReturnResponse{
		ReturnID:              r.ReturnID,
		PeriodStart:           r.PeriodStart,
		PeriodEnd:             r.PeriodEnd,
		Status:                string(r.Status),
		StandardRatedSupplies: r.StandardRatedSupplies,
		ZeroRatedSupplies:     r.ZeroRatedSupplies,
		ExemptSupplies:        r.ExemptSupplies,
		TaxablePurchases:      r.TaxablePurchases,
		OutputTax:             r.OutputTax,
		InputTax:              r.InputTax,
		NetTax:                r.NetTax,
		SettlementJournalID:   r.SettlementJournalID,
		FinalizedAt:           r.FinalizedAt,
	}
}
