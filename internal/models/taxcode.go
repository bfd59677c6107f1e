package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxCode is the persistence model for a tax code.
type TaxCode struct {
	TaxCodeID         string          `db:"tax_code_id"`
	Code              string          `db:"code"`
	Description       string          `db:"description"`
	Kind              string          `db:"kind"`
	RatePercent       decimal.Decimal `db:"rate_percent"`
	AffectedAccountID string          `db:"affected_account_id"`
	EffectiveFrom     time.Time       `db:"effective_from"`
	EffectiveTo       *time.Time      `db:"effective_to"`
	AuditFields
}
