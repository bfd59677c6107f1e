package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxCodeRequest defines the payload for creating a tax code.
type CreateTaxCodeRequest struct {
	Code              string          `json:"code" binding:"required"`
	Description       string          `json:"description"`
	Kind              domain.TaxKind  `json:"kind" binding:"required,oneof=STANDARD ZERO_RATED EXEMPT"`
	RatePercent       decimal.Decimal `json:"ratePercent" binding:"required"`
	AffectedAccountID string          `json:"affectedAccountID" binding:"required"`
	EffectiveFrom     time.Time       `json:"effectiveFrom" binding:"required" time_format:"2006-01-02"`
	EffectiveTo       *time.Time      `json:"effectiveTo" time_format:"2006-01-02"`
}

// TaxCodeResponse defines the data returned for a tax code.
type TaxCodeResponse struct {
	TaxCodeID         string          `json:"taxCodeID"`
	Code              string          `json:"code"`
	Description       string          `json:"description"`
	Kind              string          `json:"kind"`
	RatePercent       decimal.Decimal `json:"ratePercent"`
	AffectedAccountID string          `json:"affectedAccountID"`
	EffectiveFrom     time.Time       `json:"effectiveFrom"`
	EffectiveTo       *time.Time      `json:"effectiveTo"`
}

// ComputeTaxRequest asks for a tax amount for a base amount under a code.
type ComputeTaxRequest struct {
	BaseAmount decimal.Decimal `json:"baseAmount" binding:"required"`
	TaxCode    string          `json:"taxCode" binding:"required"`
	AsOfDate   time.Time       `json:"asOfDate" binding:"required" time_format:"2006-01-02"`
}

// ComputeTaxResponse carries a computed line tax.
type ComputeTaxResponse struct {
	TaxCode    string          `json:"taxCode"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
}

// ToTaxCodeResponse converts a domain.TaxCode to TaxCodeResponse.
func ToTaxCodeResponse(t *domain.TaxCode) TaxCodeResponse {
	return TaxCodeResponse{
		TaxCodeID:         t.TaxCodeID,
		Code:              t.Code,
		Description:       t.Description,
		Kind:              string(t.Kind),
		RatePercent:       t.RatePercent,
		AffectedAccountID: t.AffectedAccountID,
		EffectiveFrom:     t.EffectiveFrom,
		EffectiveTo:       t.EffectiveTo,
	}
}
