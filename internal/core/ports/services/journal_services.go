package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// JournalSvcFacade defines the posting engine surface. It is the only writer
// of ledger facts in the system.
type JournalSvcFacade interface {
	// CreateDraft validates line structure and persists a Draft entry.
	// Period resolution is deferred to posting time.
	CreateDraft(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)
	// CreateDraftFromDocument persists a draft assembled by the translator.
	CreateDraftFromDocument(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (*domain.Journal, error)
	UpdateDraft(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)
	// DiscardDraft deletes a draft with no side effects.
	DiscardDraft(ctx context.Context, journalID string, userID string) error

	// PostJournal commits a draft into an open fiscal period.
	PostJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)
	// ReverseJournal posts a new entry mirroring the original and links the two.
	ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)

	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	// GetJournalBySource returns the journal derived from a source document,
	// or ErrNotFound. The translator uses it to reject resubmissions.
	GetJournalBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}
