package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
	"github.com/brightbooks/bright_books_app/internal/platform/metrics"
)

type FiscalService struct {
	fiscalRepo portsrepo.FiscalRepositoryFacade
	metrics    *metrics.Metrics
}

func NewFiscalService(fiscalRepo portsrepo.FiscalRepositoryFacade, m *metrics.Metrics) *FiscalService {
	return &FiscalService{fiscalRepo: fiscalRepo, metrics: m}
}

var _ portssvc.FiscalSvcFacade = (*FiscalService)(nil)

// CreateFiscalYear creates the year and deterministically generates its
// periods for the requested granularity. When the range does not divide
// evenly, the final period is shortened to end exactly on the year's end date.
func (s *FiscalService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, []domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := truncateToDay(req.StartDate)
	end := truncateToDay(req.EndDate)

	if !end.After(start) {
		return nil, nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}
	if !req.Granularity.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown granularity %q", apperrors.ErrValidation, req.Granularity)
	}

	if existing, err := s.fiscalRepo.FindOverlappingYear(ctx, start, end); err == nil && existing != nil {
		return nil, nil, fmt.Errorf("%w: overlaps fiscal year %s", apperrors.ErrOverlappingFiscalYear, existing.FiscalYearID)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		StartDate:    start,
		EndDate:      end,
		Closed:       false,
		AuditFields:  audit,
	}

	periods, err := generatePeriods(year, req.Granularity, audit)
	if err != nil {
		return nil, nil, err
	}

	if err := s.fiscalRepo.SaveFiscalYear(ctx, year, periods); err != nil {
		logger.Error("Failed to save fiscal year", slog.String("error", err.Error()), slog.String("fiscal_year_id", year.FiscalYearID))
		return nil, nil, err
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.Int("periods", len(periods)))
	return &year, periods, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// generatePeriods partitions [year.StartDate, year.EndDate] into contiguous,
// non-overlapping periods. Generation is deterministic: the same inputs always
// produce the same period boundaries and names.
func generatePeriods(year domain.FiscalYear, granularity domain.PeriodGranularity, audit domain.AuditFields) ([]domain.FiscalPeriod, error) {
	var months int
	switch granularity {
	case domain.GranularityMonthly:
		months = 1
	case domain.GranularityQuarterly:
		months = 3
	case domain.GranularityYearly:
		months = 12
	default:
		return nil, fmt.Errorf("%w: granularity %q", apperrors.ErrNonDivisibleRange, granularity)
	}

	periods := []domain.FiscalPeriod{}
	cursor := year.StartDate
	for idx := 1; !cursor.After(year.EndDate); idx++ {
		next := cursor.AddDate(0, months, 0)
		periodEnd := next.AddDate(0, 0, -1)
		if periodEnd.After(year.EndDate) {
			// Short final period: the range did not divide evenly.
			periodEnd = year.EndDate
		}

		periods = append(periods, domain.FiscalPeriod{
			PeriodID:     uuid.NewString(),
			FiscalYearID: year.FiscalYearID,
			Name:         periodName(cursor, granularity, idx),
			StartDate:    cursor,
			EndDate:      periodEnd,
			Status:       domain.PeriodOpen,
			AuditFields:  audit,
		})

		cursor = periodEnd.AddDate(0, 0, 1)
	}

	return periods, nil
}

func periodName(start time.Time, granularity domain.PeriodGranularity, idx int) string {
	switch granularity {
	case domain.GranularityMonthly:
		return start.Format("2006-01")
	case domain.GranularityQuarterly:
		return fmt.Sprintf("%d-Q%d", start.Year(), idx)
	default:
		return fmt.Sprintf("FY%d", start.Year())
	}
}

func (s *FiscalService) GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, []domain.FiscalPeriod, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, nil, err
	}
	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		return nil, nil, err
	}
	return year, periods, nil
}

func (s *FiscalService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.fiscalRepo.ListFiscalYears(ctx)
}

// ResolvePeriod returns the unique period covering date.
func (s *FiscalService) ResolvePeriod(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodByDate(ctx, truncateToDay(date))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fiscal period covers %s", apperrors.ErrNoOpenPeriod, date.Format("2006-01-02"))
		}
		return nil, err
	}
	return period, nil
}

// ClosePeriod transitions a period to CLOSED. The repository takes the same
// row lock the posting engine uses, so a close never races an in-flight post.
func (s *FiscalService) ClosePeriod(ctx context.Context, periodID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.fiscalRepo.ClosePeriod(ctx, periodID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrPeriodAlreadyClosed) {
			logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		}
		return err
	}

	s.metrics.PeriodsClosed.Inc()
	logger.Info("Fiscal period closed", slog.String("period_id", periodID))
	return nil
}

// ReopenPeriod is a privileged override; the reason is mandatory and recorded
// in the audit trail.
func (s *FiscalService) ReopenPeriod(ctx context.Context, periodID string, reason string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return fmt.Errorf("%w: a reason is required to reopen a period", apperrors.ErrValidation)
	}

	if err := s.fiscalRepo.ReopenPeriod(ctx, periodID, reason, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrPeriodNotClosed) {
			logger.Error("Failed to reopen period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		}
		return err
	}

	s.metrics.PeriodsReopened.Inc()
	logger.Info("Fiscal period reopened", slog.String("period_id", periodID), slog.String("reason", reason))
	return nil
}
