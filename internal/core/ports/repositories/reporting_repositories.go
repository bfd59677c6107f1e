package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// ReportingRepositoryFacade defines the read-only aggregation queries behind
// the financial statement aggregator and the GST return preparer. Only
// POSTED (and REVERSED, whose lines remain part of history) journals are
// visible to these queries.
type ReportingRepositoryFacade interface {
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	GetGeneralLedgerData(ctx context.Context, accountID string, from, to time.Time, limit int, nextToken *string) ([]domain.GeneralLedgerLine, *string, error)
	GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error)
	GetBalanceSheetData(ctx context.Context, asOf time.Time) (map[domain.AccountType][]domain.AccountAmount, error)

	// GetTaxedLineTotals aggregates posted tax-coded lines within the range,
	// grouped by tax kind, account type and side.
	GetTaxedLineTotals(ctx context.Context, from, to time.Time) ([]domain.TaxedLineTotal, error)
	// GetAccountMovement returns the debit and credit totals of one account
	// within the range.
	GetAccountMovement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountMovement, error)
}
