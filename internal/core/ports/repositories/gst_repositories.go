package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// GSTReturnRepositoryFacade defines persistence operations for GST returns.
type GSTReturnRepositoryFacade interface {
	SaveReturn(ctx context.Context, ret domain.GSTReturn) error
	FindReturnByID(ctx context.Context, returnID string) (*domain.GSTReturn, error)
	ListReturns(ctx context.Context) ([]domain.GSTReturn, error)
	// FinalizeReturn marks a draft return FINALIZED and links the settlement
	// journal. The guard on the current status lives in the UPDATE itself so
	// two concurrent finalizations cannot both succeed.
	FinalizeReturn(ctx context.Context, returnID string, settlementJournalID string, actor string, now time.Time) error
}

// AuditRepositoryFacade exposes the read side of the audit trail. Writes are
// performed by the mutating repositories inside their own transactions.
type AuditRepositoryFacade interface {
	ListAuditRecords(ctx context.Context, entityType string, entityID string, limit int) ([]domain.AuditRecord, error)
}
