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

type PgxTaxCodeRepository struct {
	BaseRepository
}

func newPgxTaxCodeRepository(pool *pgxpool.Pool) portsrepo.TaxCodeRepositoryFacade {
	return &PgxTaxCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxCodeRepositoryFacade = (*PgxTaxCodeRepository)(nil)

const taxCodeColumns = `tax_code_id, code, description, kind, rate_percent, affected_account_id, effective_from, effective_to, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxCode(row pgx.Row) (models.TaxCode, error) {
	var m models.TaxCode
	err := row.Scan(
		&m.TaxCodeID,
		&m.Code,
		&m.Description,
		&m.Kind,
		&m.RatePercent,
		&m.AffectedAccountID,
		&m.EffectiveFrom,
		&m.EffectiveTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTaxCode inserts a new tax code. The audit record commits in the same
// transaction as the row.
func (r *PgxTaxCodeRepository) SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error {
	m := mapping.ToModelTaxCode(taxCode)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO tax_codes (` + taxCodeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.TaxCodeID,
		m.Code,
		m.Description,
		m.Kind,
		m.RatePercent,
		m.AffectedAccountID,
		m.EffectiveFrom,
		m.EffectiveTo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tax code %s already exists", apperrors.ErrDuplicate, m.TaxCodeID)
		}
		return fmt.Errorf("failed to save tax code %s: %w", m.TaxCodeID, err)
	}

	if err := insertAuditRecordInTx(ctx, tx, taxCode.CreatedBy, taxCode.CreatedAt, "tax_code", taxCode.TaxCodeID, domain.AuditCreate, nil, taxCode); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTaxCodeByID retrieves a tax code by its ID.
func (r *PgxTaxCodeRepository) FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	query := `SELECT ` + taxCodeColumns + ` FROM tax_codes WHERE tax_code_id = $1;`

	m, err := scanTaxCode(r.Pool.QueryRow(ctx, query, taxCodeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax code %s: %w", taxCodeID, err)
	}

	tc := mapping.ToDomainTaxCode(m)
	return &tc, nil
}

// FindEffectiveByCode returns the single tax code with the given code string
// effective at asOf. Effective ranges for the same code never overlap, so at
// most one row matches.
func (r *PgxTaxCodeRepository) FindEffectiveByCode(ctx context.Context, code string, asOf time.Time) (*domain.TaxCode, error) {
	query := `
		SELECT ` + taxCodeColumns + `
		FROM tax_codes
		WHERE code = $1
			AND effective_from <= $2
			AND (effective_to IS NULL OR effective_to >= $2);
	`

	m, err := scanTaxCode(r.Pool.QueryRow(ctx, query, code, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: code %s at %s", apperrors.ErrTaxCodeNotEffective, code, asOf.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find effective tax code %s: %w", code, err)
	}

	tc := mapping.ToDomainTaxCode(m)
	return &tc, nil
}

// ListTaxCodes returns all tax codes ordered by code then effective_from.
func (r *PgxTaxCodeRepository) ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error) {
	query := `SELECT ` + taxCodeColumns + ` FROM tax_codes ORDER BY code, effective_from;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax codes: %w", err)
	}
	defer rows.Close()

	codes := []domain.TaxCode{}
	for rows.Next() {
		m, err := scanTaxCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax code row: %w", err)
		}
		codes = append(codes, mapping.ToDomainTaxCode(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating tax code rows: %w", rows.Err())
	}

	return codes, nil
}

// FindOverlappingCode returns any existing code with the same code string
// whose effective range intersects [from, to]. A nil to means open-ended.
func (r *PgxTaxCodeRepository) FindOverlappingCode(ctx context.Context, code string, from time.Time, to *time.Time) (*domain.TaxCode, error) {
	query := `
		SELECT ` + taxCodeColumns + `
		FROM tax_codes
		WHERE code = $1
			AND effective_from <= COALESCE($3, 'infinity'::timestamptz)
			AND (effective_to IS NULL OR effective_to >= $2)
		LIMIT 1;
	`

	m, err := scanTaxCode(r.Pool.QueryRow(ctx, query, code, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check overlapping tax codes for %s: %w", code, err)
	}

	tc := mapping.ToDomainTaxCode(m)
	return &tc, nil
}
