package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxKind classifies a tax code for return bucketing.
type TaxKind string

const (
	TaxStandard  TaxKind = "STANDARD"   // Standard-rated supply/purchase
	TaxZeroRated TaxKind = "ZERO_RATED" // Rated at 0%
	TaxExempt    TaxKind = "EXEMPT"     // Outside the scope of GST
)

// TaxCode is a named, dated, rated rule for computing a line's tax amount.
// At most one code is effective for a given code string at any date.
type TaxCode struct {
	TaxCodeID         string          `json:"taxCodeID"` // Primary Key (UUID)
	Code              string          `json:"code"`      // e.g. "SR", "ZR", "EX"
	Description       string          `json:"description"`
	Kind              TaxKind         `json:"kind"`
	RatePercent       decimal.Decimal `json:"ratePercent"` // e.g. 9 for 9%; exact decimal, never a float
	AffectedAccountID string          `json:"affectedAccountID"`
	EffectiveFrom     time.Time       `json:"effectiveFrom"`
	EffectiveTo       *time.Time      `json:"effectiveTo"` // Nil while the code remains current
	AuditFields
}

// EffectiveAt reports whether the tax code applies at the given date.
func (t TaxCode) EffectiveAt(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	if d.Before(t.EffectiveFrom.Truncate(24 * time.Hour)) {
		return false
	}
	if t.EffectiveTo != nil && d.After(t.EffectiveTo.Truncate(24*time.Hour)) {
		return false
	}
	return true
}
