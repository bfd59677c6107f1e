package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// Service facade mocks, for the services that compose other services
// (translator, GST preparer) rather than repositories directly.

type MockAccountSvc struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountSvc)(nil)

func (m *MockAccountSvc) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountTree(ctx context.Context, includeInactive bool) ([]domain.AccountNode, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountNode), args.Error(1)
}

func (m *MockAccountSvc) GetMapping(ctx context.Context, role domain.AccountRole) (*domain.AccountMapping, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

func (m *MockAccountSvc) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

func (m *MockAccountSvc) UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) error {
	args := m.Called(ctx, req, userID)
	return args.Error(0)
}

type MockTaxSvc struct {
	mock.Mock
}

var _ portssvc.TaxSvcFacade = (*MockTaxSvc)(nil)

func (m *MockTaxSvc) CreateTaxCode(ctx context.Context, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxSvc) GetTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	args := m.Called(ctx, taxCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxSvc) ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCode), args.Error(1)
}

func (m *MockTaxSvc) ComputeLineTax(ctx context.Context, base decimal.Decimal, code string, asOf time.Time) (domain.LineTax, error) {
	args := m.Called(ctx, base, code, asOf)
	return args.Get(0).(domain.LineTax), args.Error(1)
}

type MockJournalSvc struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalSvc)(nil)

func (m *MockJournalSvc) CreateDraft(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) CreateDraftFromDocument(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (*domain.Journal, error) {
	args := m.Called(ctx, journal, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) UpdateDraft(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) DiscardDraft(ctx context.Context, journalID string, userID string) error {
	args := m.Called(ctx, journalID, userID)
	return args.Error(0)
}

func (m *MockJournalSvc) PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) GetJournalBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.Journal, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

type MockTranslatorSvc struct {
	mock.Mock
}

var _ portssvc.TranslatorSvcFacade = (*MockTranslatorSvc)(nil)

func (m *MockTranslatorSvc) Translate(ctx context.Context, doc domain.TranslatableDocument, autoPost bool, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, doc, autoPost, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
