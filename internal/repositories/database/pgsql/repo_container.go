package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
)

// NewRepositoryContainer wires all PostgreSQL repositories. The retrier is
// shared so the posting engine's retry policy is configured in one place.
func NewRepositoryContainer(pool *pgxpool.Pool, retrier *Retrier) *portsrepo.RepositoryContainer {
	accountRepo := newPgxAccountRepository(pool)

	return &portsrepo.RepositoryContainer{
		Account:        accountRepo,
		AccountMapping: newPgxAccountMappingRepository(pool),
		Fiscal:         newPgxFiscalRepository(pool),
		TaxCode:        newPgxTaxCodeRepository(pool),
		Journal:        newPgxJournalRepository(pool, accountRepo, retrier),
		Reporting:      newReportingRepository(pool),
		GSTReturn:      newPgxGSTReturnRepository(pool),
		Audit:          newPgxAuditRepository(pool),
	}
}
