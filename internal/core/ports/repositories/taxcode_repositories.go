package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// TaxCodeRepositoryFacade defines persistence operations for tax codes.
type TaxCodeRepositoryFacade interface {
	SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error
	FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error)
	// FindEffectiveByCode returns the single tax code with the given code
	// string effective at asOf.
	FindEffectiveByCode(ctx context.Context, code string, asOf time.Time) (*domain.TaxCode, error)
	ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error)
	// FindOverlappingCode returns any existing code with the same code string
	// whose effective range intersects [from, to] (to nil meaning open-ended).
	FindOverlappingCode(ctx context.Context, code string, from time.Time, to *time.Time) (*domain.TaxCode, error)
}
