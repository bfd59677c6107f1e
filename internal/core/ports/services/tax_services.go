package services

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TaxSvcFacade defines the tax calculation engine surface.
type TaxSvcFacade interface {
	CreateTaxCode(ctx context.Context, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error)
	GetTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error)
	ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error)

	// ComputeLineTax resolves the code effective at asOf and computes the tax
	// amount for base, rounded to the currency minor unit.
	ComputeLineTax(ctx context.Context, base decimal.Decimal, code string, asOf time.Time) (domain.LineTax, error)
}
