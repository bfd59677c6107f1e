package models

import "time"

// FiscalYear is the persistence model for a fiscal year.
type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Closed       bool      `db:"closed"`
	AuditFields
}

// FiscalPeriod is the persistence model for a fiscal period.
type FiscalPeriod struct {
	PeriodID     string    `db:"period_id"`
	FiscalYearID string    `db:"fiscal_year_id"`
	Name         string    `db:"name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Status       string    `db:"status"`
	AuditFields
}
