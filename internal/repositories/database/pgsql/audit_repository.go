package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// insertAuditRecordInTx writes one audit record inside the caller's
// transaction. Every mutating repository calls this so the record commits
// or rolls back together with the change it describes.
func insertAuditRecordInTx(ctx context.Context, tx pgx.Tx, actor string, now time.Time, entityType, entityID string, op domain.AuditOperation, before, after any) error {
	var beforeJSON, afterJSON []byte
	var err error
	if before != nil {
		beforeJSON, err = json.Marshal(before)
		if err != nil {
			return fmt.Errorf("failed to marshal audit before state: %w", err)
		}
	}
	if after != nil {
		afterJSON, err = json.Marshal(after)
		if err != nil {
			return fmt.Errorf("failed to marshal audit after state: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (audit_id, actor, occurred_at, entity_type, entity_id, operation, before_state, after_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query, uuid.NewString(), actor, now, entityType, entityID, string(op), beforeJSON, afterJSON)
	if err != nil {
		return fmt.Errorf("failed to insert audit record for %s %s: %w", entityType, entityID, err)
	}
	return nil
}

// ListAuditRecords returns the audit trail for one entity, newest first.
func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, entityType string, entityID string, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT audit_id, actor, occurred_at, entity_type, entity_id, operation, before_state, after_state
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY occurred_at DESC
		LIMIT $3;
	`

	rows, err := r.pool.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var rec domain.AuditRecord
		var op string
		var before, after []byte
		err := rows.Scan(&rec.AuditID, &rec.Actor, &rec.OccurredAt, &rec.EntityType, &rec.EntityID, &op, &before, &after)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record row: %w", err)
		}
		rec.Operation = domain.AuditOperation(op)
		rec.Before = json.RawMessage(before)
		rec.After = json.RawMessage(after)
		records = append(records, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit record rows: %w", rows.Err())
	}

	return records, nil
}
