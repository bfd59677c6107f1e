package domain

import "time"

// PeriodStatus is the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// PeriodGranularity selects how a fiscal year is partitioned into periods.
type PeriodGranularity string

const (
	GranularityMonthly   PeriodGranularity = "MONTHLY"
	GranularityQuarterly PeriodGranularity = "QUARTERLY"
	GranularityYearly    PeriodGranularity = "YEARLY"
)

// IsValid reports whether g is a known granularity.
func (g PeriodGranularity) IsValid() bool {
	switch g {
	case GranularityMonthly, GranularityQuarterly, GranularityYearly:
		return true
	}
	return false
}

// FiscalYear is an administratively created accounting year. At most one
// fiscal year covers any given date.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"` // Primary Key (UUID)
	StartDate    time.Time `json:"startDate"`    // Inclusive
	EndDate      time.Time `json:"endDate"`      // Inclusive
	Closed       bool      `json:"closed"`
	AuditFields
}

// FiscalPeriod is a bounded date range within a fiscal year that gates which
// dates may receive new postings. Periods within a year are contiguous,
// non-overlapping and exactly cover the year's range.
type FiscalPeriod struct {
	PeriodID     string       `json:"periodID"` // Primary Key (UUID)
	FiscalYearID string       `json:"fiscalYearID"`
	Name         string       `json:"name"` // e.g. "2024-06"
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	Status       PeriodStatus `json:"status"`
	AuditFields
}

// Covers reports whether date falls within the period's range (inclusive).
// Comparison is calendar-day based; time-of-day is ignored.
func (p FiscalPeriod) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}
