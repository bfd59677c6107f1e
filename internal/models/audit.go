package models

import "time"

// AuditLog is the persistence model for an audit record.
type AuditLog struct {
	AuditID    string    `db:"audit_id"`
	Actor      string    `db:"actor"`
	OccurredAt time.Time `db:"occurred_at"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Operation  string    `db:"operation"`
	Before     []byte    `db:"before_state"`
	After      []byte    `db:"after_state"`
}
