package mapping

import (
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear.
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Closed:       d.Closed,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear.
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Closed:       m.Closed,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:     d.PeriodID,
		FiscalYearID: d.FiscalYearID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:     m.PeriodID,
		FiscalYearID: m.FiscalYearID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Status:       domain.PeriodStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
