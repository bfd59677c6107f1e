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

type PgxGSTReturnRepository struct {
	BaseRepository
}

func newPgxGSTReturnRepository(pool *pgxpool.Pool) portsrepo.GSTReturnRepositoryFacade {
	return &PgxGSTReturnRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GSTReturnRepositoryFacade = (*PgxGSTReturnRepository)(nil)

const gstReturnColumns = `return_id, period_start, period_end, status, standard_rated_supplies, zero_rated_supplies, exempt_supplies, taxable_purchases, output_tax, input_tax, net_tax, settlement_journal_id, finalized_at, finalized_by, created_at, created_by, last_updated_at, last_updated_by`

func scanGSTReturn(row pgx.Row) (models.GSTReturn, error) {
	var m models.GSTReturn
	err := row.Scan(
		&m.ReturnID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Status,
		&m.StandardRatedSupplies,
		&m.ZeroRatedSupplies,
		&m.ExemptSupplies,
		&m.TaxablePurchases,
		&m.OutputTax,
		&m.InputTax,
		&m.NetTax,
		&m.SettlementJournalID,
		&m.FinalizedAt,
		&m.FinalizedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReturn inserts a new draft GST return.
func (r *PgxGSTReturnRepository) SaveReturn(ctx context.Context, ret domain.GSTReturn) error {
	m := mapping.ToModelGSTReturn(ret)

	query := `
		INSERT INTO gst_returns (` + gstReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReturnID,
		m.PeriodStart,
		m.PeriodEnd,
		m.Status,
		m.StandardRatedSupplies,
		m.ZeroRatedSupplies,
		m.ExemptSupplies,
		m.TaxablePurchases,
		m.OutputTax,
		m.InputTax,
		m.NetTax,
		m.SettlementJournalID,
		m.FinalizedAt,
		m.FinalizedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: GST return %s already exists", apperrors.ErrDuplicate, m.ReturnID)
		}
		return fmt.Errorf("failed to save GST return %s: %w", m.ReturnID, err)
	}
	return nil
}

// FindReturnByID retrieves a GST return by its ID.
func (r *PgxGSTReturnRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.GSTReturn, error) {
	query := `SELECT ` + gstReturnColumns + ` FROM gst_returns WHERE return_id = $1;`

	m, err := scanGSTReturn(r.Pool.QueryRow(ctx, query, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find GST return %s: %w", returnID, err)
	}

	ret := mapping.ToDomainGSTReturn(m)
	return &ret, nil
}

// ListReturns retrieves all GST returns ordered by period start, newest first.
func (r *PgxGSTReturnRepository) ListReturns(ctx context.Context) ([]domain.GSTReturn, error) {
	query := `SELECT ` + gstReturnColumns + ` FROM gst_returns ORDER BY period_start DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query GST returns: %w", err)
	}
	defer rows.Close()

	returns := []domain.GSTReturn{}
	for rows.Next() {
		m, err := scanGSTReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan GST return row: %w", err)
		}
		returns = append(returns, mapping.ToDomainGSTReturn(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating GST return rows: %w", rows.Err())
	}

	return returns, nil
}

// FinalizeReturn marks a draft return FINALIZED and links the settlement
// journal. The status guard lives in the UPDATE itself so two concurrent
// finalizations cannot both succeed.
func (r *PgxGSTReturnRepository) FinalizeReturn(ctx context.Context, returnID string, settlementJournalID string, actor string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE gst_returns
		SET status = $2, settlement_journal_id = $3, finalized_at = $4, finalized_by = $5, last_updated_at = $4, last_updated_by = $5
		WHERE return_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query, returnID, string(domain.ReturnFinalized), settlementJournalID, now, actor, string(domain.ReturnDraft))
	if err != nil {
		return fmt.Errorf("failed to finalize GST return %s: %w", returnID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the return doesn't exist or it is already finalized.
		existing, findErr := r.FindReturnByID(ctx, returnID)
		if findErr != nil {
			return findErr
		}
		if existing.Status == domain.ReturnFinalized {
			return fmt.Errorf("%w: GST return %s", apperrors.ErrReturnAlreadyFinalized, returnID)
		}
		return apperrors.ErrConflict
	}

	after := map[string]any{"status": string(domain.ReturnFinalized), "settlementJournalID": settlementJournalID}
	if err := insertAuditRecordInTx(ctx, tx, actor, now, "gst_return", returnID, domain.AuditFinalize, nil, after); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
