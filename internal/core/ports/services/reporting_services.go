package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// ReportingSvcFacade defines the read-only financial statement aggregator.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error)
	GeneralLedger(ctx context.Context, accountID string, params dto.GeneralLedgerParams) (*dto.GeneralLedgerResponse, error)
	ProfitAndLoss(ctx context.Context, params dto.RangeParams) (*domain.PAndLReport, error)
	ComparativeProfitAndLoss(ctx context.Context, params dto.ComparativeParams) (*dto.ComparativePAndLResponse, error)
	BalanceSheet(ctx context.Context, params dto.TrialBalanceParams) (*domain.BalanceSheetReport, error)
}

// AuditSvcFacade exposes the read side of the audit trail.
type AuditSvcFacade interface {
	ListAuditRecords(ctx context.Context, entityType string, entityID string, limit int) ([]domain.AuditRecord, error)
}
