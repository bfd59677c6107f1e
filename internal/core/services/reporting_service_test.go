package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/core/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)
}

func amt(name, value string) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID: uuid.NewString(),
		Name:      name,
		NetAmount: decimal.RequireFromString(value),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Totals() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		{AccountName: "Cash", AccountType: domain.Asset, Debit: decimal.RequireFromString("500.00"), Credit: decimal.Zero},
		{AccountName: "Revenue", AccountType: domain.Income, Debit: decimal.Zero, Credit: decimal.RequireFromString("500.00")},
		{AccountName: "Dormant", AccountType: domain.Expense, Debit: decimal.Zero, Credit: decimal.Zero},
	}

	// The query boundary is widened to the end of the requested day.
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, mock.MatchedBy(func(t time.Time) bool {
		return t.Year() == 2024 && t.Month() == time.June && t.Day() == 30 && t.Hour() == 23
	})).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, dto.TrialBalanceParams{AsOf: asOf})

	suite.Require().NoError(err)
	suite.Len(report.Rows, 3)
	suite.True(report.TotalDebit.Equal(decimal.RequireFromString("500.00")))
	suite.True(report.TotalCredit.Equal(decimal.RequireFromString("500.00")))
	suite.Equal(asOf, report.AsOf)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ExcludeZeroBalances() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		{AccountName: "Cash", Debit: decimal.RequireFromString("500.00"), Credit: decimal.Zero},
		{AccountName: "Dormant", Debit: decimal.Zero, Credit: decimal.Zero},
	}

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, mock.AnythingOfType("time.Time")).Return(rows, nil).Once()

	params := dto.TrialBalanceParams{AsOf: asOf}
	params.ExcludeZeroBalances = true
	report, err := suite.service.TrialBalance(ctx, params)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal("Cash", report.Rows[0].AccountName)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GeneralLedger(ctx, accountID, dto.GeneralLedgerParams{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetGeneralLedgerData",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_InvertedRange() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	_, err := suite.service.GeneralLedger(ctx, accountID, dto.GeneralLedgerParams{
		From: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	income := []domain.AccountAmount{amt("Sales", "1000.00"), amt("Interest", "50.00")}
	expenses := []domain.AccountAmount{amt("Rent", "400.00")}

	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, from, mock.AnythingOfType("time.Time")).
		Return(income, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, dto.RangeParams{From: from, To: to})

	suite.Require().NoError(err)
	suite.True(report.NetProfit.Equal(decimal.RequireFromString("650.00")))
	suite.Len(report.Income, 2)
	suite.Len(report.Expenses, 1)
}

func (suite *ReportingServiceTestSuite) TestComparativeProfitAndLoss() {
	ctx := context.Background()
	params := dto.ComparativeParams{
		From:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		CompareFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CompareTo:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, params.From, mock.AnythingOfType("time.Time")).
		Return([]domain.AccountAmount{amt("Sales", "800.00")}, []domain.AccountAmount{amt("Rent", "300.00")}, nil).Once()
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, params.CompareFrom, mock.AnythingOfType("time.Time")).
		Return([]domain.AccountAmount{amt("Sales", "600.00")}, []domain.AccountAmount{amt("Rent", "300.00")}, nil).Once()

	result, err := suite.service.ComparativeProfitAndLoss(ctx, params)

	suite.Require().NoError(err)
	suite.True(result.Current.NetProfit.Equal(decimal.RequireFromString("500.00")))
	suite.True(result.Comparison.NetProfit.Equal(decimal.RequireFromString("300.00")))
	suite.True(result.NetChange.Equal(decimal.RequireFromString("200.00")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_FoldsEarningsIntoEquity() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	byType := map[domain.AccountType][]domain.AccountAmount{
		domain.Asset:     {amt("Cash", "1500.00")},
		domain.Liability: {amt("Accounts Payable", "400.00")},
		domain.Equity:    {amt("Share Capital", "500.00")},
		domain.Income:    {amt("Sales", "1000.00")},
		domain.Expense:   {amt("Rent", "400.00")},
	}

	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, mock.AnythingOfType("time.Time")).Return(byType, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, dto.TrialBalanceParams{AsOf: asOf})

	suite.Require().NoError(err)
	suite.Require().Len(report.Equity, 2)
	earnings := report.Equity[1]
	suite.Equal("Current Year Earnings", earnings.Name)
	suite.True(earnings.NetAmount.Equal(decimal.RequireFromString("600.00")))
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("1500.00")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("1100.00")))
	suite.Nil(report.Warning)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IdentityViolationWarns() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	byType := map[domain.AccountType][]domain.AccountAmount{
		domain.Asset:     {amt("Cash", "1000.00")},
		domain.Liability: {amt("Accounts Payable", "400.00")},
		domain.Equity:    {amt("Share Capital", "500.00")},
	}

	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, mock.AnythingOfType("time.Time")).Return(byType, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, dto.TrialBalanceParams{AsOf: asOf})

	// An inconsistent ledger is reported, never failed.
	suite.Require().NoError(err)
	suite.Require().NotNil(report.Warning)
	suite.True(report.Warning.Difference.Equal(decimal.RequireFromString("100.00")))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
