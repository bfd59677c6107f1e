package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	"github.com/brightbooks/bright_books_app/internal/models"
	"github.com/brightbooks/bright_books_app/internal/utils/mapping"
)

type PgxFiscalRepository struct {
	BaseRepository
}

func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

const fiscalYearColumns = `fiscal_year_id, start_date, end_date, closed, created_at, created_by, last_updated_at, last_updated_by`
const fiscalPeriodColumns = `period_id, fiscal_year_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.StartDate,
		&m.EndDate,
		&m.Closed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanFiscalPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.FiscalYearID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveFiscalYear persists the year and its generated periods in one transaction.
func (r *PgxFiscalRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.FiscalPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	modelYear := mapping.ToModelFiscalYear(year)
	yearQuery := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, yearQuery,
		modelYear.FiscalYearID,
		modelYear.StartDate,
		modelYear.EndDate,
		modelYear.Closed,
		modelYear.CreatedAt,
		modelYear.CreatedBy,
		modelYear.LastUpdatedAt,
		modelYear.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal year %s already exists", apperrors.ErrDuplicate, modelYear.FiscalYearID)
		}
		return fmt.Errorf("failed to save fiscal year %s: %w", modelYear.FiscalYearID, err)
	}

	periodQuery := `
		INSERT INTO fiscal_periods (` + fiscalPeriodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, p := range periods {
		mp := mapping.ToModelFiscalPeriod(p)
		batch.Queue(periodQuery,
			mp.PeriodID,
			mp.FiscalYearID,
			mp.Name,
			mp.StartDate,
			mp.EndDate,
			mp.Status,
			mp.CreatedAt,
			mp.CreatedBy,
			mp.LastUpdatedAt,
			mp.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert fiscal period %s: %w", periods[i].PeriodID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close fiscal period batch: %w", err)
	}

	if err := insertAuditRecordInTx(ctx, tx, year.CreatedBy, year.CreatedAt, "fiscal_year", year.FiscalYearID, domain.AuditCreate, nil, year); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxFiscalRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}

	year := mapping.ToDomainFiscalYear(m)
	return &year, nil
}

// ListFiscalYears returns all fiscal years ordered by start date.
func (r *PgxFiscalRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal years: %w", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", rows.Err())
	}

	return years, nil
}

// FindOverlappingYear returns any fiscal year whose range intersects [start, end].
func (r *PgxFiscalRepository) FindOverlappingYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE start_date <= $2 AND end_date >= $1
		LIMIT 1;
	`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check overlapping fiscal years: %w", err)
	}

	year := mapping.ToDomainFiscalYear(m)
	return &year, nil
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE period_id = $1;`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// FindPeriodByDate returns the unique period covering date, whatever its status.
// Period ranges never overlap, so at most one row matches.
func (r *PgxFiscalRepository) FindPeriodByDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE start_date <= $1 AND end_date >= $1;
	`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period covering %s: %w", date.Format("2006-01-02"), err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// ListPeriodsByYear returns the periods of a fiscal year in calendar order.
func (r *PgxFiscalRepository) ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE fiscal_year_id = $1
		ORDER BY start_date;
	`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for fiscal year %s: %w", fiscalYearID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", rows.Err())
	}

	return periods, nil
}

// lockPeriodRow locks one fiscal period row inside tx. Posting and period
// status transitions serialize on this same lock.
func lockPeriodRow(ctx context.Context, tx pgx.Tx, periodID string) (models.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`

	m, err := scanFiscalPeriod(tx.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FiscalPeriod{}, apperrors.ErrNotFound
		}
		return models.FiscalPeriod{}, fmt.Errorf("failed to lock fiscal period %s: %w", periodID, err)
	}
	return m, nil
}

// ClosePeriod transitions the period to CLOSED under its row lock.
func (r *PgxFiscalRepository) ClosePeriod(ctx context.Context, periodID string, actor string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m, err := lockPeriodRow(ctx, tx, periodID)
	if err != nil {
		return err
	}
	if m.Status == string(domain.PeriodClosed) {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodAlreadyClosed, periodID)
	}

	updateQuery := `
		UPDATE fiscal_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, periodID, string(domain.PeriodClosed), now, actor); err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	before := map[string]string{"status": m.Status}
	after := map[string]string{"status": string(domain.PeriodClosed)}
	if err := insertAuditRecordInTx(ctx, tx, actor, now, "fiscal_period", periodID, domain.AuditClose, before, after); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReopenPeriod is the privileged inverse of ClosePeriod. The reason is kept
// in the audit trail.
func (r *PgxFiscalRepository) ReopenPeriod(ctx context.Context, periodID string, reason string, actor string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m, err := lockPeriodRow(ctx, tx, periodID)
	if err != nil {
		return err
	}
	if m.Status != string(domain.PeriodClosed) {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodNotClosed, periodID)
	}

	updateQuery := `
		UPDATE fiscal_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, periodID, string(domain.PeriodOpen), now, actor); err != nil {
		return fmt.Errorf("failed to reopen period %s: %w", periodID, err)
	}

	before := map[string]string{"status": m.Status}
	after := map[string]string{"status": string(domain.PeriodOpen), "reason": reason}
	if err := insertAuditRecordInTx(ctx, tx, actor, now, "fiscal_period", periodID, domain.AuditReopen, before, after); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
