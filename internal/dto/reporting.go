package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportOptions carries the toggles common to statement queries.
type ReportOptions struct {
	// ExcludeZeroBalances drops rows whose amounts are all zero.
	ExcludeZeroBalances bool `form:"excludeZeroBalances"`
}

// TrialBalanceParams selects a trial balance as of a date.
type TrialBalanceParams struct {
	AsOf time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
	ReportOptions
}

// GeneralLedgerParams selects a per-account ledger view.
type GeneralLedgerParams struct {
	From      time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To        time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	Limit     int       `form:"limit"`
	NextToken *string   `form:"nextToken"`
}

// RangeParams selects a date-range statement (P&L).
type RangeParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	ReportOptions
}

// ComparativeParams selects two parallel aggregations.
type ComparativeParams struct {
	From          time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To            time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	CompareFrom   time.Time `form:"compareFrom" binding:"required" time_format:"2006-01-02"`
	CompareTo     time.Time `form:"compareTo" binding:"required" time_format:"2006-01-02"`
	ReportOptions
}

// GeneralLedgerResponse is the paginated ledger view of one account.
type GeneralLedgerResponse struct {
	AccountID string                     `json:"accountID"`
	From      time.Time                  `json:"from"`
	To        time.Time                  `json:"to"`
	Lines     []domain.GeneralLedgerLine `json:"lines"`
	NextToken *string                    `json:"nextToken,omitempty"`
}

// ComparativePAndLResponse carries two P&L aggregations side by side.
type ComparativePAndLResponse struct {
	Current    domain.PAndLReport `json:"current"`
	Comparison domain.PAndLReport `json:"comparison"`
	NetChange  decimal.Decimal    `json:"netChange"`
}
