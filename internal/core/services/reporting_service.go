package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// ReportingService is the read-only financial statement aggregator. Every
// report is computed from posted journal lines at request time; nothing here
// mutates ledger state.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *ReportingService {
	return &ReportingService{reportingRepo: reportingRepo, accountRepo: accountRepo}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// TrialBalance lists every account with its net debit or credit balance as of
// a date. Debit and credit totals are always equal for a consistent ledger;
// the totals are returned so callers can verify rather than trust.
func (s *ReportingService) TrialBalance(ctx context.Context, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, endOfDay(params.AsOf))
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:        params.AsOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		if params.ExcludeZeroBalances && row.Debit.IsZero() && row.Credit.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	return report, nil
}

// GeneralLedger returns the posted lines of one account over a range, ordered
// by posting sequence.
func (s *ReportingService) GeneralLedger(ctx context.Context, accountID string, params dto.GeneralLedgerParams) (*dto.GeneralLedgerResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	if params.To.Before(params.From) {
		return nil, fmt.Errorf("%w: to precedes from", apperrors.ErrValidation)
	}

	lines, nextToken, err := s.reportingRepo.GetGeneralLedgerData(ctx, accountID, params.From, endOfDay(params.To), params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.GeneralLedgerResponse{
		AccountID: accountID,
		From:      params.From,
		To:        params.To,
		Lines:     lines,
		NextToken: nextToken,
	}, nil
}

// ProfitAndLoss aggregates income and expense activity over a date range.
func (s *ReportingService) ProfitAndLoss(ctx context.Context, params dto.RangeParams) (*domain.PAndLReport, error) {
	if params.To.Before(params.From) {
		return nil, fmt.Errorf("%w: to precedes from", apperrors.ErrValidation)
	}

	income, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, params.From, endOfDay(params.To))
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		From:      params.From,
		To:        params.To,
		Income:    filterAmounts(income, params.ExcludeZeroBalances),
		Expenses:  filterAmounts(expenses, params.ExcludeZeroBalances),
		NetProfit: sumAmounts(income).Sub(sumAmounts(expenses)),
	}
	return report, nil
}

// ComparativeProfitAndLoss runs two P&L aggregations side by side.
func (s *ReportingService) ComparativeProfitAndLoss(ctx context.Context, params dto.ComparativeParams) (*dto.ComparativePAndLResponse, error) {
	current, err := s.ProfitAndLoss(ctx, dto.RangeParams{From: params.From, To: params.To, ReportOptions: params.ReportOptions})
	if err != nil {
		return nil, err
	}
	comparison, err := s.ProfitAndLoss(ctx, dto.RangeParams{From: params.CompareFrom, To: params.CompareTo, ReportOptions: params.ReportOptions})
	if err != nil {
		return nil, err
	}

	return &dto.ComparativePAndLResponse{
		Current:    *current,
		Comparison: *comparison,
		NetChange:  current.NetProfit.Sub(comparison.NetProfit),
	}, nil
}

// BalanceSheet reports assets, liabilities and equity as of a date. Life-to-
// date income and expense activity is folded into equity as a Current Year
// Earnings line so the statement balances without a closing entry.
func (s *ReportingService) BalanceSheet(ctx context.Context, params dto.TrialBalanceParams) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	byType, err := s.reportingRepo.GetBalanceSheetData(ctx, endOfDay(params.AsOf))
	if err != nil {
		return nil, err
	}

	assets := filterAmounts(byType[domain.Asset], params.ExcludeZeroBalances)
	liabilities := filterAmounts(byType[domain.Liability], params.ExcludeZeroBalances)
	equity := filterAmounts(byType[domain.Equity], params.ExcludeZeroBalances)

	earnings := sumAmounts(byType[domain.Income]).Sub(sumAmounts(byType[domain.Expense]))
	if !earnings.IsZero() || !params.ExcludeZeroBalances {
		equity = append(equity, domain.AccountAmount{
			Name:      "Current Year Earnings",
			NetAmount: earnings,
		})
	}

	report := &domain.BalanceSheetReport{
		AsOf:             params.AsOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumAmounts(assets),
		TotalLiabilities: sumAmounts(liabilities),
		TotalEquity:      sumAmounts(equity),
	}

	difference := report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	if !difference.IsZero() {
		report.Warning = &domain.ConsistencyWarning{
			Message:    "accounting identity violated: assets do not equal liabilities plus equity",
			Difference: difference,
		}
		logger.Error("Balance sheet identity violated",
			slog.String("as_of", params.AsOf.Format("2006-01-02")),
			slog.String("difference", difference.String()),
		)
	}

	return report, nil
}

// endOfDay widens a date-only boundary so same-day timestamps are included.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func filterAmounts(amounts []domain.AccountAmount, excludeZero bool) []domain.AccountAmount {
	if !excludeZero {
		if amounts == nil {
			return []domain.AccountAmount{}
		}
		return amounts
	}
	filtered := make([]domain.AccountAmount, 0, len(amounts))
	for _, a := range amounts {
		if !a.NetAmount.IsZero() {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}
