package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// FiscalRepositoryFacade defines persistence operations for fiscal years and periods.
// Period status transitions happen inside repository-owned transactions so that
// they serialize with the posting engine's period lock.
type FiscalRepositoryFacade interface {
	// SaveFiscalYear persists the year and its generated periods atomically.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.FiscalPeriod) error
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
	// FindOverlappingYear returns any fiscal year intersecting [start, end].
	FindOverlappingYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error)

	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)
	// FindPeriodByDate returns the unique period covering date, whatever its status.
	FindPeriodByDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
	ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error)

	// ClosePeriod transitions the period to CLOSED under a row lock and writes
	// the audit record in the same transaction.
	ClosePeriod(ctx context.Context, periodID string, actor string, now time.Time) error
	// ReopenPeriod is the privileged inverse of ClosePeriod; reason is recorded
	// in the audit trail.
	ReopenPeriod(ctx context.Context, periodID string, reason string, actor string, now time.Time) error
}
