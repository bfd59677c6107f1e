package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for journal entries.
//
// PostJournal and PostReversingJournal own the system's transactional
// boundary: period resolution, balance recheck, account verification, the
// Draft->Posted transition with sequence assignment, balance updates and the
// audit record all commit or roll back as one unit. Serialization failures
// are retried internally with exponential backoff.
type JournalRepositoryFacade interface {
	// SaveDraft persists a new draft journal and its lines.
	SaveDraft(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error
	// UpdateDraft replaces a draft's header fields and lines. Fails once posted.
	UpdateDraft(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error
	// DeleteDraft discards a draft with no side effects. Fails once posted.
	DeleteDraft(ctx context.Context, journalID string) error

	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error)
	ListJournals(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error)
	// FindJournalBySource returns the journal derived from a given source document, if any.
	FindJournalBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.Journal, error)

	// PostJournal commits a draft to the ledger and returns the posted journal.
	PostJournal(ctx context.Context, journalID string, actor string, now time.Time) (*domain.Journal, error)
	// PostReversingJournal saves and posts the reversing draft and marks the
	// original journal REVERSED, all in one transaction.
	PostReversingJournal(ctx context.Context, reversing domain.Journal, lines []domain.JournalLine, originalJournalID string, actor string, now time.Time) (*domain.Journal, error)
}
