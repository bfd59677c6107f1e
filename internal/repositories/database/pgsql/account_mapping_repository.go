package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	"github.com/brightbooks/bright_books_app/internal/models"
	"github.com/brightbooks/bright_books_app/internal/utils/mapping"
)

type PgxAccountMappingRepository struct {
	BaseRepository
}

func newPgxAccountMappingRepository(pool *pgxpool.Pool) portsrepo.AccountMappingRepositoryFacade {
	return &PgxAccountMappingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountMappingRepositoryFacade = (*PgxAccountMappingRepository)(nil)

const accountMappingColumns = `role, account_id, created_at, created_by, last_updated_at, last_updated_by`

func scanAccountMapping(row pgx.Row) (models.AccountMapping, error) {
	var m models.AccountMapping
	err := row.Scan(
		&m.Role,
		&m.AccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindMappingByRole retrieves the account bound to a translator role.
func (r *PgxAccountMappingRepository) FindMappingByRole(ctx context.Context, role domain.AccountRole) (*domain.AccountMapping, error) {
	query := `SELECT ` + accountMappingColumns + ` FROM account_mappings WHERE role = $1;`

	m, err := scanAccountMapping(r.Pool.QueryRow(ctx, query, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: role %s", apperrors.ErrUnmappedAccount, role)
		}
		return nil, fmt.Errorf("failed to find account mapping for role %s: %w", role, err)
	}

	dm := mapping.ToDomainAccountMapping(m)
	return &dm, nil
}

// ListMappings returns all role-to-account bindings.
func (r *PgxAccountMappingRepository) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	query := `SELECT ` + accountMappingColumns + ` FROM account_mappings ORDER BY role;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account mappings: %w", err)
	}
	defer rows.Close()

	mappings := []domain.AccountMapping{}
	for rows.Next() {
		m, err := scanAccountMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account mapping row: %w", err)
		}
		mappings = append(mappings, mapping.ToDomainAccountMapping(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account mapping rows: %w", rows.Err())
	}

	return mappings, nil
}

// UpsertMapping creates or replaces the binding for a role. The audit record
// commits in the same transaction and carries the replaced binding, if any.
func (r *PgxAccountMappingRepository) UpsertMapping(ctx context.Context, m domain.AccountMapping) error {
	model := mapping.ToModelAccountMapping(m)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := `SELECT ` + accountMappingColumns + ` FROM account_mappings WHERE role = $1 FOR UPDATE;`
	existing, err := scanAccountMapping(tx.QueryRow(ctx, lockQuery, model.Role))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to lock account mapping for role %s: %w", m.Role, err)
	}
	isNew := errors.Is(err, pgx.ErrNoRows)

	query := `
		INSERT INTO account_mappings (` + accountMappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (role) DO UPDATE
		SET account_id = EXCLUDED.account_id, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, query,
		model.Role,
		model.AccountID,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account mapping for role %s: %w", m.Role, err)
	}

	op := domain.AuditUpdate
	var before any
	if isNew {
		op = domain.AuditCreate
	} else {
		before = mapping.ToDomainAccountMapping(existing)
	}
	if err := insertAuditRecordInTx(ctx, tx, m.LastUpdatedBy, m.LastUpdatedAt, "account_mapping", string(m.Role), op, before, m); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
