package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// CreateFiscalYearRequest defines the payload for creating a fiscal year and
// generating its periods.
type CreateFiscalYearRequest struct {
	StartDate   time.Time                `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate     time.Time                `json:"endDate" binding:"required" time_format:"2006-01-02"`
	Granularity domain.PeriodGranularity `json:"granularity" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
}

// ReopenPeriodRequest carries the mandatory justification for reopening a
// closed period.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string                 `json:"fiscalYearID"`
	StartDate    time.Time              `json:"startDate"`
	EndDate      time.Time              `json:"endDate"`
	Closed       bool                   `json:"closed"`
	Periods      []FiscalPeriodResponse `json:"periods,omitempty"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its response form.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    string(p.Status),
	}
}

// ToFiscalYearResponse converts a domain.FiscalYear and its periods to a response.
func ToFiscalYearResponse(y *domain.FiscalYear, periods []domain.FiscalPeriod) FiscalYearResponse {
	resp := FiscalYearResponse{
		FiscalYearID: y.FiscalYearID,
		StartDate:    y.StartDate,
		EndDate:      y.EndDate,
		Closed:       y.Closed,
	}
	for i := range periods {
		resp.Periods = append(resp.Periods, ToFiscalPeriodResponse(&periods[i]))
	}
	return resp
}
