package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// GSTSvcFacade defines the GST return preparer surface.
type GSTSvcFacade interface {
	// PrepareReturn aggregates tax-coded postings for the range into a draft
	// return. Pure aggregation: repeated calls over unchanged ledger state
	// yield identical box totals.
	PrepareReturn(ctx context.Context, req dto.PrepareReturnRequest, userID string) (*domain.GSTReturn, error)
	GetReturnByID(ctx context.Context, returnID string) (*domain.GSTReturn, error)
	ListReturns(ctx context.Context) ([]domain.GSTReturn, error)
	// FinalizeReturn posts the settlement entry through the translator and
	// posting engine, marks the return FINALIZED and links the entry.
	FinalizeReturn(ctx context.Context, returnID string, userID string) (*domain.GSTReturn, error)
}
