package mapping

import (
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/models"
)

// ToModelGSTReturn converts a domain GSTReturn to a model GSTReturn.
func ToModelGSTReturn(d domain.GSTReturn) models.GSTReturn {
	return models.GSTReturn{
		ReturnID:              d.ReturnID,
		PeriodStart:           d.PeriodStart,
		PeriodEnd:             d.PeriodEnd,
		Status:                string(d.Status),
		StandardRatedSupplies: d.StandardRatedSupplies,
		ZeroRatedSupplies:     d.ZeroRatedSupplies,
		ExemptSupplies:        d.ExemptSupplies,
		TaxablePurchases:      d.TaxablePurchases,
		OutputTax:             d.OutputTax,
		InputTax:              d.InputTax,
		NetTax:                d.NetTax,
		SettlementJournalID:   d.SettlementJournalID,
		FinalizedAt:           d.FinalizedAt,
		FinalizedBy:           d.FinalizedBy,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGSTReturn converts a model GSTReturn to a domain GSTReturn.
func ToDomainGSTReturn(m models.GSTReturn) domain.GSTReturn {
	return domain.GSTReturn{
		ReturnID:              m.ReturnID,
		PeriodStart:           m.PeriodStart,
		PeriodEnd:             m.PeriodEnd,
		Status:                domain.ReturnStatus(m.Status),
		StandardRatedSupplies: m.StandardRatedSupplies,
		ZeroRatedSupplies:     m.ZeroRatedSupplies,
		ExemptSupplies:        m.ExemptSupplies,
		TaxablePurchases:      m.TaxablePurchases,
		OutputTax:             m.OutputTax,
		InputTax:              m.InputTax,
		NetTax:                m.NetTax,
		SettlementJournalID:   m.SettlementJournalID,
		FinalizedAt:           m.FinalizedAt,
		FinalizedBy:           m.FinalizedBy,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
