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

type TaxServiceTestSuite struct {
	suite.Suite
	mockTaxCodeRepo *MockTaxCodeRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TaxSvcFacade
	gstAccount      domain.Account
	userID          string
}

func (suite *TaxServiceTestSuite) SetupTest() {
	suite.mockTaxCodeRepo = new(MockTaxCodeRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTaxService(suite.mockTaxCodeRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.gstAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "2100",
		Name:        "GST Output",
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

func (suite *TaxServiceTestSuite) standardRequest() dto.CreateTaxCodeRequest {
	return dto.CreateTaxCodeRequest{
		Code:              "SR",
		Description:       "Standard rated 9%",
		Kind:              domain.TaxStandard,
		RatePercent:       decimal.NewFromInt(9),
		AffectedAccountID: suite.gstAccount.AccountID,
		EffectiveFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *TaxServiceTestSuite) TestCreateTaxCode_Success() {
	ctx := context.Background()
	req := suite.standardRequest()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.gstAccount.AccountID).Return(&suite.gstAccount, nil).Once()
	suite.mockTaxCodeRepo.On("FindOverlappingCode", ctx, "SR", req.EffectiveFrom, (*time.Time)(nil)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTaxCodeRepo.On("SaveTaxCode", ctx, mock.AnythingOfType("domain.TaxCode")).Return(nil).Once()

	taxCode, err := suite.service.CreateTaxCode(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("SR", taxCode.Code)
	suite.Equal(domain.TaxStandard, taxCode.Kind)
	suite.mockTaxCodeRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestCreateTaxCode_NegativeRate() {
	ctx := context.Background()
	req := suite.standardRequest()
	req.RatePercent = decimal.NewFromInt(-1)

	_, err := suite.service.CreateTaxCode(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaxServiceTestSuite) TestCreateTaxCode_ZeroRatedMustBeZero() {
	ctx := context.Background()
	req := suite.standardRequest()
	req.Kind = domain.TaxZeroRated

	_, err := suite.service.CreateTaxCode(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaxServiceTestSuite) TestCreateTaxCode_OverlapRejected() {
	ctx := context.Background()
	req := suite.standardRequest()
	existing := &domain.TaxCode{TaxCodeID: uuid.NewString(), Code: "SR"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.gstAccount.AccountID).Return(&suite.gstAccount, nil).Once()
	suite.mockTaxCodeRepo.On("FindOverlappingCode", ctx, "SR", req.EffectiveFrom, (*time.Time)(nil)).Return(existing, nil).Once()

	_, err := suite.service.CreateTaxCode(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTaxCodeRepo.AssertNotCalled(suite.T(), "SaveTaxCode", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestComputeLineTax_Standard() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	taxCode := &domain.TaxCode{
		TaxCodeID:     uuid.NewString(),
		Code:          "SR",
		Kind:          domain.TaxStandard,
		RatePercent:   decimal.NewFromInt(9),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockTaxCodeRepo.On("FindEffectiveByCode", ctx, "SR", asOf).Return(taxCode, nil).Once()

	lineTax, err := suite.service.ComputeLineTax(ctx, decimal.RequireFromString("100.00"), "SR", asOf)

	suite.Require().NoError(err)
	suite.True(lineTax.TaxAmount.Equal(decimal.RequireFromString("9.00")))
	suite.Equal(taxCode.TaxCodeID, lineTax.TaxCode.TaxCodeID)
}

func (suite *TaxServiceTestSuite) TestComputeLineTax_CachesResolvedCode() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	taxCode := &domain.TaxCode{
		TaxCodeID:     uuid.NewString(),
		Code:          "SR",
		Kind:          domain.TaxStandard,
		RatePercent:   decimal.NewFromInt(9),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	// Only one repository hit for two computations at the same date.
	suite.mockTaxCodeRepo.On("FindEffectiveByCode", ctx, "SR", asOf).Return(taxCode, nil).Once()

	_, err := suite.service.ComputeLineTax(ctx, decimal.NewFromInt(50), "SR", asOf)
	suite.Require().NoError(err)
	_, err = suite.service.ComputeLineTax(ctx, decimal.NewFromInt(75), "SR", asOf)
	suite.Require().NoError(err)

	suite.mockTaxCodeRepo.AssertNumberOfCalls(suite.T(), "FindEffectiveByCode", 1)
}

func (suite *TaxServiceTestSuite) TestComputeLineTax_ZeroRated() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	taxCode := &domain.TaxCode{
		TaxCodeID:     uuid.NewString(),
		Code:          "ZR",
		Kind:          domain.TaxZeroRated,
		RatePercent:   decimal.Zero,
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockTaxCodeRepo.On("FindEffectiveByCode", ctx, "ZR", asOf).Return(taxCode, nil).Once()

	lineTax, err := suite.service.ComputeLineTax(ctx, decimal.NewFromInt(200), "ZR", asOf)

	suite.Require().NoError(err)
	suite.True(lineTax.TaxAmount.IsZero())
}

func (suite *TaxServiceTestSuite) TestComputeLineTax_NegativeBase() {
	ctx := context.Background()

	_, err := suite.service.ComputeLineTax(ctx, decimal.NewFromInt(-10), "SR", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaxServiceTestSuite) TestComputeLineTax_NotEffective() {
	ctx := context.Background()
	asOf := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockTaxCodeRepo.On("FindEffectiveByCode", ctx, "SR", asOf).Return(nil, apperrors.ErrTaxCodeNotEffective).Once()

	_, err := suite.service.ComputeLineTax(ctx, decimal.NewFromInt(10), "SR", asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTaxCodeNotEffective)
}

func TestTaxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxServiceTestSuite))
}
