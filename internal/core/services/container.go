package services

import (
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/platform/config"
	"github.com/brightbooks/bright_books_app/internal/platform/metrics"
)

// NewServiceContainer wires all services over the repository container.
func NewServiceContainer(repos *portsrepo.RepositoryContainer, cfg *config.Config, m *metrics.Metrics) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account, repos.AccountMapping)
	fiscalSvc := NewFiscalService(repos.Fiscal, m)
	taxSvc := NewTaxService(repos.TaxCode, repos.Account)
	journalSvc := NewJournalService(repos.Journal, repos.Account, cfg, m)
	translatorSvc := NewTranslatorService(accountSvc, taxSvc, journalSvc, cfg)
	reportingSvc := NewReportingService(repos.Reporting, repos.Account)
	gstSvc := NewGSTService(repos.GSTReturn, repos.Reporting, accountSvc, translatorSvc, m)
	auditSvc := NewAuditService(repos.Audit)

	return &portssvc.ServiceContainer{
		Account:    accountSvc,
		Fiscal:     fiscalSvc,
		Tax:        taxSvc,
		Journal:    journalSvc,
		Translator: translatorSvc,
		Reporting:  reportingSvc,
		GST:        gstSvc,
		Audit:      auditSvc,
	}
}
