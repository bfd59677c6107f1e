package repositories

// RepositoryContainer aggregates all repository facades for dependency injection.
type RepositoryContainer struct {
	Account        AccountRepositoryFacade
	AccountMapping AccountMappingRepositoryFacade
	Fiscal         FiscalRepositoryFacade
	TaxCode        TaxCodeRepositoryFacade
	Journal        JournalRepositoryFacade
	Reporting      ReportingRepositoryFacade
	GSTReturn      GSTReturnRepositoryFacade
	Audit          AuditRepositoryFacade
}
