package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
)

// AuditService exposes the read side of the audit trail. Records are written
// by the mutating repositories inside their own transactions, so this service
// has no write surface.
type AuditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

func (s *AuditService) ListAuditRecords(ctx context.Context, entityType string, entityID string, limit int) ([]domain.AuditRecord, error) {
	return s.auditRepo.ListAuditRecords(ctx, entityType, entityID, limit)
}
