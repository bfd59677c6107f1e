package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// TranslatorSvcFacade converts business source documents into balanced
// journal entries. It never writes ledger facts itself; commits are
// delegated to the posting engine.
type TranslatorSvcFacade interface {
	// Translate builds a balanced draft journal from the document. When
	// autoPost is true the draft is immediately posted.
	Translate(ctx context.Context, doc domain.TranslatableDocument, autoPost bool, userID string) (*domain.Journal, error)
}
