package services

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// FiscalSvcFacade defines the fiscal calendar manager surface.
type FiscalSvcFacade interface {
	// CreateFiscalYear creates the year and deterministically generates its
	// periods for the requested granularity.
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, []domain.FiscalPeriod, error)
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, []domain.FiscalPeriod, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// ResolvePeriod returns the unique period covering date.
	ResolvePeriod(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
	ClosePeriod(ctx context.Context, periodID string, userID string) error
	// ReopenPeriod is a privileged override; the reason is mandatory and audited.
	ReopenPeriod(ctx context.Context, periodID string, reason string, userID string) error
}
