package services

// ServiceContainer aggregates all service facades for route registration.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Fiscal     FiscalSvcFacade
	Tax        TaxSvcFacade
	Journal    JournalSvcFacade
	Translator TranslatorSvcFacade
	Reporting  ReportingSvcFacade
	GST        GSTSvcFacade
	Audit      AuditSvcFacade
}
