package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
	"github.com/brightbooks/bright_books_app/internal/utils/taxmath"
)

type TaxService struct {
	taxCodeRepo portsrepo.TaxCodeRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade

	// Tax codes change rarely but are resolved on every translated document
	// line, so effective lookups are cached per code string.
	cacheMu sync.RWMutex
	cache   map[string][]domain.TaxCode
}

func NewTaxService(taxCodeRepo portsrepo.TaxCodeRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *TaxService {
	return &TaxService{
		taxCodeRepo: taxCodeRepo,
		accountRepo: accountRepo,
		cache:       make(map[string][]domain.TaxCode),
	}
}

var _ portssvc.TaxSvcFacade = (*TaxService)(nil)

// CreateTaxCode creates a new dated tax rule. Effective ranges for the same
// code string must not overlap, so history stays resolvable to one rate.
func (s *TaxService) CreateTaxCode(ctx context.Context, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RatePercent.IsNegative() {
		return nil, fmt.Errorf("%w: rate must not be negative", apperrors.ErrValidation)
	}
	if (req.Kind == domain.TaxZeroRated || req.Kind == domain.TaxExempt) && !req.RatePercent.IsZero() {
		return nil, fmt.Errorf("%w: %s codes must carry a zero rate", apperrors.ErrValidation, req.Kind)
	}
	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return nil, fmt.Errorf("%w: effectiveTo precedes effectiveFrom", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, req.AffectedAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: affected account %s does not exist", apperrors.ErrInvalidAccount, req.AffectedAccountID)
		}
		return nil, err
	}

	if existing, err := s.taxCodeRepo.FindOverlappingCode(ctx, req.Code, req.EffectiveFrom, req.EffectiveTo); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: code %s overlaps existing rule %s", apperrors.ErrConflict, req.Code, existing.TaxCodeID)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	taxCode := domain.TaxCode{
		TaxCodeID:         uuid.NewString(),
		Code:              req.Code,
		Description:       req.Description,
		Kind:              req.Kind,
		RatePercent:       req.RatePercent,
		AffectedAccountID: req.AffectedAccountID,
		EffectiveFrom:     req.EffectiveFrom,
		EffectiveTo:       req.EffectiveTo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxCodeRepo.SaveTaxCode(ctx, taxCode); err != nil {
		logger.Error("Failed to save tax code", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, err
	}

	s.cacheMu.Lock()
	delete(s.cache, taxCode.Code)
	s.cacheMu.Unlock()

	logger.Info("Tax code created", slog.String("tax_code_id", taxCode.TaxCodeID), slog.String("code", taxCode.Code))
	return &taxCode, nil
}

func (s *TaxService) GetTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	return s.taxCodeRepo.FindTaxCodeByID(ctx, taxCodeID)
}

func (s *TaxService) ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error) {
	return s.taxCodeRepo.ListTaxCodes(ctx)
}

// resolveEffective finds the tax code effective for code at asOf, consulting
// the cache first.
func (s *TaxService) resolveEffective(ctx context.Context, code string, asOf time.Time) (*domain.TaxCode, error) {
	s.cacheMu.RLock()
	for _, cached := range s.cache[code] {
		if cached.EffectiveAt(asOf) {
			s.cacheMu.RUnlock()
			tc := cached
			return &tc, nil
		}
	}
	s.cacheMu.RUnlock()

	tc, err := s.taxCodeRepo.FindEffectiveByCode(ctx, code, asOf)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.cache[code] = append(s.cache[code], *tc)
	s.cacheMu.Unlock()

	return tc, nil
}

// ComputeLineTax resolves the code effective at asOf and computes the tax
// amount for base, rounded half-up to the currency minor unit.
func (s *TaxService) ComputeLineTax(ctx context.Context, base decimal.Decimal, code string, asOf time.Time) (domain.LineTax, error) {
	if base.IsNegative() {
		return domain.LineTax{}, fmt.Errorf("%w: base amount must not be negative", apperrors.ErrValidation)
	}

	taxCode, err := s.resolveEffective(ctx, code, asOf)
	if err != nil {
		return domain.LineTax{}, err
	}

	taxAmount := decimal.Zero
	if taxCode.Kind == domain.TaxStandard {
		taxAmount = taxmath.LineTax(base, taxCode.RatePercent)
	}

	return domain.LineTax{TaxCode: *taxCode, TaxAmount: taxAmount}, nil
}
