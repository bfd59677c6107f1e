package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/core/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/platform/config"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	revenueAccount  domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)

	cfg := &config.Config{BaseCurrency: "SGD", PostToLeavesOnly: true}
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, cfg, testMetrics)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockAccountRepo.On("HasChildren", ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()
	suite.mockJournalRepo.On("SaveDraft", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	journal, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, journal.Status)
	suite.Equal(domain.SourceManual, journal.SourceType)
	suite.Equal("SGD", journal.CurrencyCode)
	suite.True(journal.Amount.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(journal.Lines, 2)
	suite.Equal(1, journal.Lines[0].LineNo)
	suite.Equal(2, journal.Lines[1].LineNo)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateDraft_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        time.Now(),
		Description: "Does not balance",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(90)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockAccountRepo.On("HasChildren", ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveDraft", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false

	req := dto.CreateJournalRequest{
		Date:        time.Now(),
		Description: "References an inactive account",
		Lines: []dto.CreateLineRequest{
			{AccountID: inactive.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(50)},
			{AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(50)},
		},
	}

	accounts := map[string]domain.Account{
		inactive.AccountID:             inactive,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()
	suite.mockAccountRepo.On("HasChildren", ctx, mock.AnythingOfType("string")).Return(false, nil).Maybe()

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_SummaryAccountRejected() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        time.Now(),
		Description: "Posts to a parent account",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(50)},
			{AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockAccountRepo.On("HasChildren", ctx, mock.AnythingOfType("string")).Return(true, nil)

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	periodID := uuid.NewString()
	seq := int64(7)
	posted := &domain.Journal{
		JournalID:      journalID,
		Status:         domain.Posted,
		FiscalPeriodID: &periodID,
		PostingSeq:     &seq,
	}

	suite.mockJournalRepo.On("PostJournal", ctx, journalID, suite.userID, mock.AnythingOfType("time.Time")).Return(posted, nil).Once()

	result, err := suite.service.PostJournal(ctx, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, result.Status)
	suite.Equal(int64(7), *result.PostingSeq)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_PeriodClosed() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("PostJournal", ctx, journalID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrPeriodClosedOrMissing).Once()

	_, err := suite.service.PostJournal(ctx, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosedOrMissing)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_FlipsSides() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:    journalID,
		Status:       domain.Posted,
		CurrencyCode: "SGD",
		Description:  "Original entry",
		Amount:       decimal.NewFromInt(100),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, LineNo: 1, AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: journalID, LineNo: 2, AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(originalLines, nil).Once()

	flipped := mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 2 &&
			lines[0].Side == domain.Credit &&
			lines[1].Side == domain.Debit &&
			lines[0].Amount.Equal(decimal.NewFromInt(100))
	})
	reversingID := uuid.NewString()
	posted := &domain.Journal{JournalID: reversingID, Status: domain.Posted, OriginalJournalID: &journalID}
	suite.mockJournalRepo.On("PostReversingJournal", ctx, mock.AnythingOfType("domain.Journal"), flipped, journalID, suite.userID, mock.AnythingOfType("time.Time")).Return(posted, nil).Once()

	result, err := suite.service.ReverseJournal(ctx, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(reversingID, result.JournalID)
	suite.Equal(journalID, *result.OriginalJournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_NotPosted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	draft := &domain.Journal{JournalID: journalID, Status: domain.Draft}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(draft, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostReversingJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDiscardDraft_Delegates() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("DeleteDraft", ctx, journalID).Return(nil).Once()

	err := suite.service.DiscardDraft(ctx, journalID, suite.userID)

	suite.NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListJournals_IncludeLines() {
	ctx := context.Background()
	j1 := domain.Journal{JournalID: uuid.NewString(), Status: domain.Posted}
	j2 := domain.Journal{JournalID: uuid.NewString(), Status: domain.Draft}
	linesByJournal := map[string][]domain.JournalLine{
		j1.JournalID: {{LineID: uuid.NewString(), JournalID: j1.JournalID, LineNo: 1, Side: domain.Debit, Amount: decimal.NewFromInt(10)}},
	}

	suite.mockJournalRepo.On("ListJournals", ctx, 0, (*string)(nil), false).Return([]domain.Journal{j1, j2}, nil, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalIDs", ctx, []string{j1.JournalID, j2.JournalID}).Return(linesByJournal, nil).Once()

	resp, err := suite.service.ListJournals(ctx, dto.ListJournalsParams{IncludeLines: true})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Journals, 2)
	suite.Len(resp.Journals[0].Lines, 1)
	suite.Empty(resp.Journals[1].Lines)
	suite.Nil(resp.NextToken)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func TestCreateDraftFromDocument_RevalidatesBalance(t *testing.T) {
	ctx := context.Background()
	mockJournalRepo := new(MockJournalRepository)
	mockAccountRepo := new(MockAccountRepository)
	cfg := &config.Config{BaseCurrency: "SGD"}
	svc := services.NewJournalService(mockJournalRepo, mockAccountRepo, cfg, testMetrics)

	journal := domain.Journal{JournalID: uuid.NewString(), SourceType: domain.SourceSalesInvoice}
	lines := []domain.JournalLine{
		{LineNo: 1, AccountID: uuid.NewString(), Side: domain.Debit, Amount: decimal.NewFromInt(10)},
		{LineNo: 2, AccountID: uuid.NewString(), Side: domain.Credit, Amount: decimal.NewFromInt(9)},
	}

	_, err := svc.CreateDraftFromDocument(ctx, journal, lines)

	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	mockJournalRepo.AssertNotCalled(t, "SaveDraft", mock.Anything, mock.Anything, mock.Anything)
}
