package pgsql_test

import (
	"context"
	"os"
	"testing"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	"github.com/brightbooks/bright_books_app/internal/repositories/database/pgsql"
)

// These tests run against a real PostgreSQL instance because the invariants
// they cover live in SQL: which journal statuses the statement aggregates
// admit, the partial unique source index, and the in-transaction audit trail.
// They skip under -short or when DATABASE_URL is not set.

const testActor = "integration-tester"

func newTestRepos(t *testing.T) (*portsrepo.RepositoryContainer, *pgxpool.Pool) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	m, err := migrate.New("file://../../../../migrations", dbURL)
	require.NoError(t, err, "failed to create migrate instance")
	if upErr := m.Up(); upErr != nil && upErr != migrate.ErrNoChange {
		t.Fatalf("failed to run migrations: %v", upErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "failed to ping test database")
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE audit_logs, journal_lines, journals, gst_returns,
			account_mappings, tax_codes, fiscal_periods, fiscal_years, accounts
		CASCADE;
	`)
	require.NoError(t, err, "failed to truncate tables")

	retrier := pgsql.NewRetrier(3, 10*time.Millisecond, func() {})
	return pgsql.NewRepositoryContainer(pool, retrier), pool
}

func testAudit() domain.AuditFields {
	now := time.Now().UTC()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     testActor,
		LastUpdatedAt: now,
		LastUpdatedBy: testActor,
	}
}

func seedAccount(t *testing.T, repos *portsrepo.RepositoryContainer, code, name string, accountType domain.AccountType) domain.Account {
	t.Helper()

	account := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           code,
		Name:           name,
		AccountType:    accountType,
		IsActive:       true,
		OpeningBalance: decimal.Zero,
		Balance:        decimal.Zero,
		AuditFields:    testAudit(),
	}
	require.NoError(t, repos.Account.SaveAccount(context.Background(), account))
	return account
}

func seedOpenPeriod(t *testing.T, repos *portsrepo.RepositoryContainer, start, end time.Time) domain.FiscalPeriod {
	t.Helper()

	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		StartDate:    start,
		EndDate:      end,
		AuditFields:  testAudit(),
	}
	period := domain.FiscalPeriod{
		PeriodID:     uuid.NewString(),
		FiscalYearID: year.FiscalYearID,
		Name:         start.Format("2006-01"),
		StartDate:    start,
		EndDate:      end,
		Status:       domain.PeriodOpen,
		AuditFields:  testAudit(),
	}
	require.NoError(t, repos.Fiscal.SaveFiscalYear(context.Background(), year, []domain.FiscalPeriod{period}))
	return period
}

type seedLine struct {
	accountID string
	side      domain.EntrySide
	amount    string
}

func seedDraft(t *testing.T, repos *portsrepo.RepositoryContainer, date time.Time, sourceType domain.SourceType, sourceID *string, lines ...seedLine) (domain.Journal, error) {
	t.Helper()

	journal := domain.Journal{
		JournalID:    uuid.NewString(),
		JournalDate:  date,
		Description:  "integration seed",
		CurrencyCode: "SGD",
		Status:       domain.Draft,
		SourceType:   sourceType,
		SourceID:     sourceID,
		AuditFields:  testAudit(),
	}

	journalLines := make([]domain.JournalLine, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		amount := decimal.RequireFromString(l.amount)
		journalLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journal.JournalID,
			LineNo:      i + 1,
			AccountID:   l.accountID,
			Side:        l.side,
			Amount:      amount,
			AuditFields: testAudit(),
		}
		if l.side == domain.Debit {
			total = total.Add(amount)
		}
	}
	journal.Amount = total

	return journal, repos.Journal.SaveDraft(context.Background(), journal, journalLines)
}

func TestTrialBalanceCountsOnlyPostedLines(t *testing.T) {
	repos, pool := newTestRepos(t)
	ctx := context.Background()

	cash := seedAccount(t, repos, "1000", "Cash", domain.Asset)
	revenue := seedAccount(t, repos, "4000", "Revenue", domain.Income)
	seedOpenPeriod(t, repos,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))

	entryDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	lateDate := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)

	// A draft that is never posted must not move any report.
	_, err := seedDraft(t, repos, entryDate, domain.SourceManual, nil,
		seedLine{cash.AccountID, domain.Debit, "100.00"},
		seedLine{revenue.AccountID, domain.Credit, "100.00"})
	require.NoError(t, err)

	posted, err := seedDraft(t, repos, entryDate, domain.SourceManual, nil,
		seedLine{cash.AccountID, domain.Debit, "40.00"},
		seedLine{revenue.AccountID, domain.Credit, "40.00"})
	require.NoError(t, err)
	_, err = repos.Journal.PostJournal(ctx, posted.JournalID, testActor, time.Now().UTC())
	require.NoError(t, err)

	// Posted, but after the report boundary.
	late, err := seedDraft(t, repos, lateDate, domain.SourceManual, nil,
		seedLine{cash.AccountID, domain.Debit, "7.00"},
		seedLine{revenue.AccountID, domain.Credit, "7.00"})
	require.NoError(t, err)
	_, err = repos.Journal.PostJournal(ctx, late.JournalID, testActor, time.Now().UTC())
	require.NoError(t, err)

	asOf := time.Date(2024, 6, 20, 23, 59, 59, 0, time.UTC)
	rows, err := repos.Reporting.GetTrialBalanceData(ctx, asOf)
	require.NoError(t, err)

	byCode := make(map[string]domain.TrialBalanceRow, len(rows))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, row := range rows {
		byCode[row.AccountCode] = row
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	assert.True(t, byCode["1000"].Debit.Equal(decimal.RequireFromString("40.00")),
		"cash debit = %s, want 40.00", byCode["1000"].Debit)
	assert.True(t, byCode["4000"].Credit.Equal(decimal.RequireFromString("40.00")),
		"revenue credit = %s, want 40.00", byCode["4000"].Credit)
	assert.True(t, totalDebit.Equal(totalCredit), "trial balance out of balance: %s vs %s", totalDebit, totalCredit)

	// The aggregate must agree with a naive scan of posted lines.
	var naiveDebit, naiveCredit decimal.Decimal
	err = pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0)
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.status IN ('POSTED', 'REVERSED') AND j.journal_date <= $1;
	`, asOf).Scan(&naiveDebit, &naiveCredit)
	require.NoError(t, err)
	assert.True(t, totalDebit.Equal(naiveDebit), "trial balance debit %s disagrees with posted lines %s", totalDebit, naiveDebit)
	assert.True(t, totalCredit.Equal(naiveCredit), "trial balance credit %s disagrees with posted lines %s", totalCredit, naiveCredit)

	// The balance sheet side uses the same join and must exclude the same rows.
	sheet, err := repos.Reporting.GetBalanceSheetData(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, sheet[domain.Asset], 1)
	assert.True(t, sheet[domain.Asset][0].NetAmount.Equal(decimal.RequireFromString("40.00")),
		"cash net = %s, want 40.00", sheet[domain.Asset][0].NetAmount)
}

func TestPostJournalRequiresCoveringPeriod(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	cash := seedAccount(t, repos, "1000", "Cash", domain.Asset)
	revenue := seedAccount(t, repos, "4000", "Revenue", domain.Income)
	// No fiscal calendar at all.

	draft, err := seedDraft(t, repos, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), domain.SourceManual, nil,
		seedLine{cash.AccountID, domain.Debit, "10.00"},
		seedLine{revenue.AccountID, domain.Credit, "10.00"})
	require.NoError(t, err)

	_, err = repos.Journal.PostJournal(ctx, draft.JournalID, testActor, time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPeriodClosedOrMissing)

	// Nothing leaked into the ledger from the failed post.
	refetched, err := repos.Journal.FindJournalByID(ctx, draft.JournalID)
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, refetched.Status)
}

func TestJournalSourceUniqueness(t *testing.T) {
	repos, _ := newTestRepos(t)

	cash := seedAccount(t, repos, "1000", "Cash", domain.Asset)
	revenue := seedAccount(t, repos, "4000", "Revenue", domain.Income)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	invoiceID := "INV-1001"

	_, err := seedDraft(t, repos, date, domain.SourceSalesInvoice, &invoiceID,
		seedLine{cash.AccountID, domain.Debit, "10.00"},
		seedLine{revenue.AccountID, domain.Credit, "10.00"})
	require.NoError(t, err)

	_, err = seedDraft(t, repos, date, domain.SourceSalesInvoice, &invoiceID,
		seedLine{cash.AccountID, domain.Debit, "10.00"},
		seedLine{revenue.AccountID, domain.Credit, "10.00"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Journals without a source id stay unconstrained.
	_, err = seedDraft(t, repos, date, domain.SourceManual, nil,
		seedLine{cash.AccountID, domain.Debit, "5.00"},
		seedLine{revenue.AccountID, domain.Credit, "5.00"})
	require.NoError(t, err)
	_, err = seedDraft(t, repos, date, domain.SourceManual, nil,
		seedLine{cash.AccountID, domain.Debit, "6.00"},
		seedLine{revenue.AccountID, domain.Credit, "6.00"})
	require.NoError(t, err)
}

func TestMutationsWriteAuditRecords(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	account := seedAccount(t, repos, "1000", "Cash", domain.Asset)

	records, err := repos.Audit.ListAuditRecords(ctx, "account", account.AccountID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.AuditCreate, records[0].Operation)
	assert.Equal(t, testActor, records[0].Actor)

	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC().Add(time.Second)
	require.NoError(t, repos.Account.UpdateAccount(ctx, account))

	records, err = repos.Audit.ListAuditRecords(ctx, "account", account.AccountID, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.AuditUpdate, records[0].Operation)
	assert.NotEmpty(t, records[0].Before)
	assert.NotEmpty(t, records[0].After)

	taxCode := domain.TaxCode{
		TaxCodeID:         uuid.NewString(),
		Code:              "SR",
		Description:       "Standard rated",
		Kind:              domain.TaxStandard,
		RatePercent:       decimal.NewFromInt(9),
		AffectedAccountID: account.AccountID,
		EffectiveFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		AuditFields:       testAudit(),
	}
	require.NoError(t, repos.TaxCode.SaveTaxCode(ctx, taxCode))

	records, err = repos.Audit.ListAuditRecords(ctx, "tax_code", taxCode.TaxCodeID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.AuditCreate, records[0].Operation)

	mapping := domain.AccountMapping{
		Role:        domain.RoleGSTOutput,
		AccountID:   account.AccountID,
		AuditFields: testAudit(),
	}
	require.NoError(t, repos.AccountMapping.UpsertMapping(ctx, mapping))
	require.NoError(t, repos.AccountMapping.UpsertMapping(ctx, mapping))

	records, err = repos.Audit.ListAuditRecords(ctx, "account_mapping", string(domain.RoleGSTOutput), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	ops := []domain.AuditOperation{records[0].Operation, records[1].Operation}
	assert.Contains(t, ops, domain.AuditCreate)
	assert.Contains(t, ops, domain.AuditUpdate)
}
