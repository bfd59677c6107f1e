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
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
	"github.com/brightbooks/bright_books_app/internal/platform/config"
	"github.com/brightbooks/bright_books_app/internal/platform/metrics"
	"github.com/brightbooks/bright_books_app/internal/utils/accounting"
)

// JournalService is the posting engine. It is the only writer of ledger facts.
type JournalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	cfg         *config.Config
	metrics     *metrics.Metrics
}

func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, cfg *config.Config, m *metrics.Metrics) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		cfg:         cfg,
		metrics:     m,
	}
}

var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

// buildLines converts request lines to domain lines and validates the
// referenced accounts: they must exist, be active, and (when the chart is
// configured leaf-postable-only) carry no children.
func (s *JournalService) buildLines(ctx context.Context, journalID string, reqLines []dto.CreateLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	accountIDSet := make(map[string]struct{})
	for _, l := range reqLines {
		accountIDSet[l.AccountID] = struct{}{}
	}
	accountIDs := make([]string, 0, len(accountIDSet))
	for id := range accountIDSet {
		accountIDs = append(accountIDs, id)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrInvalidAccount, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidAccount, id)
		}
		if s.cfg.PostToLeavesOnly {
			hasChildren, err := s.accountRepo.HasChildren(ctx, id)
			if err != nil {
				return nil, err
			}
			if hasChildren {
				return nil, fmt.Errorf("%w: account %s is a summary account and cannot receive postings", apperrors.ErrInvalidAccount, id)
			}
		}
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	lines := make([]domain.JournalLine, len(reqLines))
	for i, l := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			LineNo:      i + 1,
			AccountID:   l.AccountID,
			Side:        l.Side,
			Amount:      l.Amount,
			TaxCodeID:   l.TaxCodeID,
			Memo:        l.Memo,
			AuditFields: audit,
		}
	}

	if err := validateLines(lines); err != nil {
		return nil, err
	}

	return lines, nil
}

func validateLines(lines []domain.JournalLine) error {
	if err := accounting.ValidateBalance(lines); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnbalancedEntry, err)
	}
	return nil
}

func debitTotal(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Side == domain.Debit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// CreateDraft validates line structure and persists a Draft entry. Period
// resolution is deferred to posting time, so a draft may carry any date.
func (s *JournalService) CreateDraft(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	journalID := uuid.NewString()

	lines, err := s.buildLines(ctx, journalID, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:    journalID,
		JournalDate:  req.Date,
		Description:  req.Description,
		CurrencyCode: s.cfg.BaseCurrency,
		Status:       domain.Draft,
		SourceType:   domain.SourceManual,
		Amount:       debitTotal(lines),
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveDraft(ctx, journal, lines); err != nil {
		logger.Error("Failed to save draft journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	logger.Info("Draft journal created", slog.String("journal_id", journalID))
	return &journal, nil
}

// CreateDraftFromDocument persists a draft assembled by the translator. The
// line set is validated again here; the translator is trusted but the posting
// engine owns the invariant.
func (s *JournalService) CreateDraftFromDocument(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateLines(lines); err != nil {
		return nil, err
	}
	journal.Status = domain.Draft
	journal.Amount = debitTotal(lines)
	journal.Lines = lines

	if err := s.journalRepo.SaveDraft(ctx, journal, lines); err != nil {
		logger.Error("Failed to save translated draft", slog.String("error", err.Error()), slog.String("journal_id", journal.JournalID))
		return nil, err
	}

	logger.Info("Translated draft created", slog.String("journal_id", journal.JournalID), slog.String("source_type", string(journal.SourceType)))
	return &journal, nil
}

// UpdateDraft replaces a draft's editable fields. Posted journals are immutable.
func (s *JournalService) UpdateDraft(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s has status %s", apperrors.ErrNotDraft, journalID, journal.Status)
	}

	now := time.Now()
	if req.Date != nil {
		journal.JournalDate = *req.Date
	}
	if req.Description != nil {
		journal.Description = *req.Description
	}

	var lines []domain.JournalLine
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, journalID, req.Lines, userID, now)
		if err != nil {
			return nil, err
		}
	} else {
		lines, err = s.journalRepo.FindLinesByJournalID(ctx, journalID)
		if err != nil {
			return nil, err
		}
	}

	journal.Amount = debitTotal(lines)
	journal.Lines = lines
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateDraft(ctx, *journal, lines); err != nil {
		logger.Error("Failed to update draft journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	logger.Info("Draft journal updated", slog.String("journal_id", journalID))
	return journal, nil
}

// DiscardDraft deletes a draft with no side effects.
func (s *JournalService) DiscardDraft(ctx context.Context, journalID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.DeleteDraft(ctx, journalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrNotDraft) {
			logger.Error("Failed to discard draft journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return err
	}

	logger.Info("Draft journal discarded", slog.String("journal_id", journalID), slog.String("user_id", userID))
	return nil
}

// PostJournal commits a draft into an open fiscal period.
func (s *JournalService) PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := time.Now()
	posted, err := s.journalRepo.PostJournal(ctx, journalID, userID, time.Now())
	s.metrics.PostingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.PostingFailures.WithLabelValues(postingFailureReason(err)).Inc()
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to post journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}

	s.metrics.JournalsPosted.Inc()
	logger.Info("Journal posted",
		slog.String("journal_id", journalID),
		slog.Int64("posting_seq", *posted.PostingSeq),
		slog.String("fiscal_period_id", *posted.FiscalPeriodID),
	)
	return posted, nil
}

func postingFailureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUnbalancedEntry):
		return "unbalanced"
	case errors.Is(err, apperrors.ErrNoOpenPeriod), errors.Is(err, apperrors.ErrPeriodClosedOrMissing):
		return "period"
	case errors.Is(err, apperrors.ErrNotDraft):
		return "not_draft"
	case errors.Is(err, apperrors.ErrInvalidAccount):
		return "account"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}

// ReverseJournal posts a new entry mirroring the original with flipped sides
// and links the two. The original transitions to REVERSED; its lines remain
// part of history.
func (s *JournalService) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s has status %s", apperrors.ErrNotPosted, journalID, original.Status)
	}

	originalLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reversingID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversingLines := make([]domain.JournalLine, len(originalLines))
	for i, l := range originalLines {
		side := domain.Debit
		if l.Side == domain.Debit {
			side = domain.Credit
		}
		reversingLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   reversingID,
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			Side:        side,
			Amount:      l.Amount,
			TaxCodeID:   l.TaxCodeID,
			Memo:        l.Memo,
			AuditFields: audit,
		}
	}

	reversing := domain.Journal{
		JournalID:    reversingID,
		JournalDate:  now,
		Description:  fmt.Sprintf("Reversal of %s: %s", original.JournalID, original.Description),
		CurrencyCode: original.CurrencyCode,
		Status:       domain.Draft,
		SourceType:   domain.SourceManual,
		Amount:       original.Amount,
		AuditFields:  audit,
	}

	posted, err := s.journalRepo.PostReversingJournal(ctx, reversing, reversingLines, journalID, userID, now)
	if err != nil {
		s.metrics.PostingFailures.WithLabelValues(postingFailureReason(err)).Inc()
		logger.Error("Failed to reverse journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	s.metrics.JournalsReversed.Inc()
	logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversing_journal_id", posted.JournalID))
	return posted, nil
}

// GetJournalByID returns a journal with its lines loaded.
func (s *JournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	journal.Lines = lines
	return journal, nil
}

// GetJournalBySource returns the journal derived from a source document.
func (s *JournalService) GetJournalBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.Journal, error) {
	return s.journalRepo.FindJournalBySource(ctx, sourceType, sourceID)
}

// ListJournals returns a paginated journal listing, optionally with lines.
func (s *JournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	journals, nextToken, err := s.journalRepo.ListJournals(ctx, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, err
	}

	if params.IncludeLines && len(journals) > 0 {
		ids := make([]string, len(journals))
		for i, j := range journals {
			ids[i] = j.JournalID
		}
		linesByJournal, err := s.journalRepo.FindLinesByJournalIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range journals {
			journals[i].Lines = linesByJournal[journals[i].JournalID]
		}
	}

	resp := &dto.ListJournalsResponse{NextToken: nextToken, Journals: make([]dto.JournalResponse, len(journals))}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	return resp, nil
}
