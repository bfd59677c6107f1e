package domain

import (
	"encoding/json"
	"time"
)

// AuditOperation names the mutation an audit record describes.
type AuditOperation string

const (
	AuditCreate   AuditOperation = "CREATE"
	AuditUpdate   AuditOperation = "UPDATE"
	AuditPost     AuditOperation = "POST"
	AuditReverse  AuditOperation = "REVERSE"
	AuditClose    AuditOperation = "CLOSE"
	AuditReopen   AuditOperation = "REOPEN"
	AuditFinalize AuditOperation = "FINALIZE"
)

// AuditRecord captures one mutation performed by the core. It is written
// synchronously inside the same database transaction as the mutation, so a
// record never exists without its committed change and vice versa.
type AuditRecord struct {
	AuditID    string          `json:"auditID"` // Primary Key (UUID)
	Actor      string          `json:"actor"`
	OccurredAt time.Time       `json:"occurredAt"`
	EntityType string          `json:"entityType"` // e.g. "journal", "fiscal_period"
	EntityID   string          `json:"entityID"`
	Operation  AuditOperation  `json:"operation"`
	Before     json.RawMessage `json:"before,omitempty"` // Summary of the prior state
	After      json.RawMessage `json:"after,omitempty"`  // Summary of the resulting state
}
