package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/middleware"
	"github.com/brightbooks/bright_books_app/internal/platform/config"
)

// TranslatorService turns business source documents into balanced journal
// entries. It never writes ledger facts itself; drafting and posting are
// delegated to the posting engine.
type TranslatorService struct {
	accountSvc portssvc.AccountSvcFacade
	taxSvc     portssvc.TaxSvcFacade
	journalSvc portssvc.JournalSvcFacade
	cfg        *config.Config
}

func NewTranslatorService(accountSvc portssvc.AccountSvcFacade, taxSvc portssvc.TaxSvcFacade, journalSvc portssvc.JournalSvcFacade, cfg *config.Config) *TranslatorService {
	return &TranslatorService{
		accountSvc: accountSvc,
		taxSvc:     taxSvc,
		journalSvc: journalSvc,
		cfg:        cfg,
	}
}

var _ portssvc.TranslatorSvcFacade = (*TranslatorService)(nil)

func sourceTypeFor(kind domain.DocumentKind) domain.SourceType {
	switch kind {
	case domain.KindSalesInvoice:
		return domain.SourceSalesInvoice
	case domain.KindPurchaseInvoice:
		return domain.SourcePurchaseInvoice
	case domain.KindTaxSettlement:
		return domain.SourceTaxSettlement
	default:
		return domain.SourceManual
	}
}

// Translate builds a balanced draft journal from the document. When autoPost
// is true the draft is immediately committed to the ledger.
func (s *TranslatorService) Translate(ctx context.Context, doc domain.TranslatableDocument, autoPost bool, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deps := domain.TranslationDeps{
		ResolveAccount: func(role domain.AccountRole) (string, error) {
			mapping, err := s.accountSvc.GetMapping(ctx, role)
			if err != nil {
				return "", err
			}
			return mapping.AccountID, nil
		},
		ComputeTax: func(base decimal.Decimal, taxCode string) (domain.LineTax, error) {
			return s.taxSvc.ComputeLineTax(ctx, base, taxCode, doc.Date())
		},
	}

	draftLines, description, err := doc.BuildLines(deps)
	if err != nil {
		return nil, err
	}
	if len(draftLines) == 0 {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrEmptyDocument, doc.Kind(), doc.SourceID())
	}

	sourceType := sourceTypeFor(doc.Kind())
	sourceID := doc.SourceID()

	// A document translates to exactly one journal. Resubmissions are rejected
	// here; the unique source index backs the same rule in storage.
	existing, err := s.journalSvc.GetJournalBySource(ctx, sourceType, sourceID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s %s already translated to journal %s", apperrors.ErrDuplicate, doc.Kind(), sourceID, existing.JournalID)
	}

	now := time.Now()
	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	lines := make([]domain.JournalLine, len(draftLines))
	for i, dl := range draftLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			LineNo:      i + 1,
			AccountID:   dl.AccountID,
			Side:        dl.Side,
			Amount:      dl.Amount,
			TaxCodeID:   dl.TaxCodeID,
			Memo:        dl.Memo,
			AuditFields: audit,
		}
	}

	journal := domain.Journal{
		JournalID:    journalID,
		JournalDate:  doc.Date(),
		Description:  description,
		CurrencyCode: s.cfg.BaseCurrency,
		Status:       domain.Draft,
		SourceType:   sourceType,
		SourceID:     &sourceID,
		AuditFields:  audit,
	}

	draft, err := s.journalSvc.CreateDraftFromDocument(ctx, journal, lines)
	if err != nil {
		logger.Error("Failed to translate document",
			slog.String("error", err.Error()),
			slog.String("source_type", string(journal.SourceType)),
			slog.String("source_id", sourceID),
		)
		return nil, err
	}

	logger.Info("Document translated",
		slog.String("journal_id", draft.JournalID),
		slog.String("source_type", string(journal.SourceType)),
		slog.String("source_id", sourceID),
	)

	if !autoPost {
		return draft, nil
	}

	return s.journalSvc.PostJournal(ctx, draft.JournalID, userID)
}
