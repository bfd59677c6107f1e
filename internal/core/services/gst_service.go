package services

import (
	"context"
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
	"github.com/brightbooks/bright_books_app/internal/platform/metrics"
)

// GSTService prepares and finalizes periodic GST returns. Preparation is pure
// aggregation over posted lines; finalization posts the settlement entry
// through the translator and locks the return.
type GSTService struct {
	gstRepo       portsrepo.GSTReturnRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	translatorSvc portssvc.TranslatorSvcFacade
	metrics       *metrics.Metrics
}

func NewGSTService(gstRepo portsrepo.GSTReturnRepositoryFacade, reportingRepo portsrepo.ReportingRepositoryFacade, accountSvc portssvc.AccountSvcFacade, translatorSvc portssvc.TranslatorSvcFacade, m *metrics.Metrics) *GSTService {
	return &GSTService{
		gstRepo:       gstRepo,
		reportingRepo: reportingRepo,
		accountSvc:    accountSvc,
		translatorSvc: translatorSvc,
		metrics:       m,
	}
}

var _ portssvc.GSTSvcFacade = (*GSTService)(nil)

// supplyBoxes nets the supply boxes from taxed line totals. Supplies live on
// INCOME accounts: credits increase a box, debits (reversals, credit notes)
// decrease it. Purchases live on EXPENSE and ASSET accounts with the
// orientation flipped.
func supplyBoxes(totals []domain.TaxedLineTotal) (standard, zeroRated, exempt, purchases decimal.Decimal) {
	for _, t := range totals {
		switch t.AccountType {
		case domain.Income:
			amount := t.Total
			if t.Side == domain.Debit {
				amount = amount.Neg()
			}
			switch t.TaxKind {
			case domain.TaxStandard:
				standard = standard.Add(amount)
			case domain.TaxZeroRated:
				zeroRated = zeroRated.Add(amount)
			case domain.TaxExempt:
				exempt = exempt.Add(amount)
			}
		case domain.Expense, domain.Asset:
			amount := t.Total
			if t.Side == domain.Credit {
				amount = amount.Neg()
			}
			if t.TaxKind == domain.TaxStandard {
				purchases = purchases.Add(amount)
			}
		}
	}
	return standard, zeroRated, exempt, purchases
}

// PrepareReturn aggregates tax-coded postings for the range into a draft
// return. Pure aggregation: repeated calls over unchanged ledger state yield
// identical box totals.
func (s *GSTService) PrepareReturn(ctx context.Context, req dto.PrepareReturnRequest, userID string) (*domain.GSTReturn, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}
	periodEnd := endOfDay(req.PeriodEnd)

	totals, err := s.reportingRepo.GetTaxedLineTotals(ctx, req.PeriodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	standard, zeroRated, exempt, purchases := supplyBoxes(totals)

	outputTax, err := s.gstControlMovement(ctx, domain.RoleGSTOutput, req.PeriodStart, periodEnd, creditNormal)
	if err != nil {
		return nil, err
	}
	inputTax, err := s.gstControlMovement(ctx, domain.RoleGSTInput, req.PeriodStart, periodEnd, debitNormal)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ret := domain.GSTReturn{
		ReturnID:              uuid.NewString(),
		PeriodStart:           req.PeriodStart,
		PeriodEnd:             req.PeriodEnd,
		Status:                domain.ReturnDraft,
		StandardRatedSupplies: standard,
		ZeroRatedSupplies:     zeroRated,
		ExemptSupplies:        exempt,
		TaxablePurchases:      purchases,
		OutputTax:             outputTax,
		InputTax:              inputTax,
		NetTax:                outputTax.Sub(inputTax),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.gstRepo.SaveReturn(ctx, ret); err != nil {
		logger.Error("Failed to save GST return", slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.ReturnsPrepared.Inc()
	logger.Info("GST return prepared",
		slog.String("return_id", ret.ReturnID),
		slog.String("net_tax", ret.NetTax.String()),
	)
	return &ret, nil
}

type balanceOrientation int

const (
	debitNormal balanceOrientation = iota
	creditNormal
)

// gstControlMovement nets the period movement of a mapped GST control account
// onto its normal side.
func (s *GSTService) gstControlMovement(ctx context.Context, role domain.AccountRole, from, to time.Time, orientation balanceOrientation) (decimal.Decimal, error) {
	mapping, err := s.accountSvc.GetMapping(ctx, role)
	if err != nil {
		return decimal.Zero, err
	}
	movement, err := s.reportingRepo.GetAccountMovement(ctx, mapping.AccountID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if orientation == creditNormal {
		return movement.Credit.Sub(movement.Debit), nil
	}
	return movement.Debit.Sub(movement.Credit), nil
}

func (s *GSTService) GetReturnByID(ctx context.Context, returnID string) (*domain.GSTReturn, error) {
	return s.gstRepo.FindReturnByID(ctx, returnID)
}

func (s *GSTService) ListReturns(ctx context.Context) ([]domain.GSTReturn, error) {
	return s.gstRepo.ListReturns(ctx)
}

// FinalizeReturn posts the settlement entry and marks the return FINALIZED.
// The settlement clears the output and input tax accounts into GST clearing;
// the posting engine enforces that the period covering the return's end date
// is still open.
func (s *GSTService) FinalizeReturn(ctx context.Context, returnID string, userID string) (*domain.GSTReturn, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ret, err := s.gstRepo.FindReturnByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret.Status == domain.ReturnFinalized {
		return nil, fmt.Errorf("%w: return %s", apperrors.ErrReturnAlreadyFinalized, returnID)
	}
	if ret.OutputTax.IsZero() && ret.InputTax.IsZero() {
		return nil, fmt.Errorf("%w: return %s has no tax to settle", apperrors.ErrValidation, returnID)
	}
	// A control account moving against its normal side (a credit-heavy input
	// account, say) produces a negative box that cannot settle as a balanced
	// entry. That needs a correcting journal before the return can finalize.
	if ret.OutputTax.IsNegative() || ret.InputTax.IsNegative() {
		return nil, fmt.Errorf("%w: return %s has negative tax totals", apperrors.ErrValidation, returnID)
	}

	settlement := domain.TaxSettlement{
		SettlementID: returnID,
		ReturnID:     returnID,
		PeriodStart:  ret.PeriodStart,
		PeriodEnd:    ret.PeriodEnd,
		OutputTax:    ret.OutputTax,
		InputTax:     ret.InputTax,
	}

	journal, err := s.translatorSvc.Translate(ctx, settlement, true, userID)
	if err != nil {
		logger.Error("Failed to post GST settlement", slog.String("error", err.Error()), slog.String("return_id", returnID))
		return nil, err
	}

	if err := s.gstRepo.FinalizeReturn(ctx, returnID, journal.JournalID, userID, time.Now()); err != nil {
		// The settlement journal is already committed; surface the id so an
		// operator can reverse it if the return stays unfinalized.
		logger.Error("Failed to finalize GST return after settlement posting",
			slog.String("error", err.Error()),
			slog.String("return_id", returnID),
			slog.String("settlement_journal_id", journal.JournalID),
		)
		return nil, err
	}

	s.metrics.ReturnsFinalized.Inc()
	logger.Info("GST return finalized",
		slog.String("return_id", returnID),
		slog.String("settlement_journal_id", journal.JournalID),
	)
	return s.gstRepo.FindReturnByID(ctx, returnID)
}
