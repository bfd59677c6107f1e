package mapping

import (
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/models"
)

// ToModelTaxCode converts a domain TaxCode to a model TaxCode.
func ToModelTaxCode(d domain.TaxCode) models.TaxCode {
	return models.TaxCode{
		TaxCodeID:         d.TaxCodeID,
		Code:              d.Code,
		Description:       d.Description,
		Kind:              string(d.Kind),
		RatePercent:       d.RatePercent,
		AffectedAccountID: d.AffectedAccountID,
		EffectiveFrom:     d.EffectiveFrom,
		EffectiveTo:       d.EffectiveTo,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxCode converts a model TaxCode to a domain TaxCode.
func ToDomainTaxCode(m models.TaxCode) domain.TaxCode {
	return domain.TaxCode{
		TaxCodeID:         m.TaxCodeID,
		Code:              m.Code,
		Description:       m.Description,
		Kind:              domain.TaxKind(m.Kind),
		RatePercent:       m.RatePercent,
		AffectedAccountID: m.AffectedAccountID,
		EffectiveFrom:     m.EffectiveFrom,
		EffectiveTo:       m.EffectiveTo,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
