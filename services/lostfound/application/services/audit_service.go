package services

import (
	"context"

	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// AuditService exposes read access to the administrative action ledger.
// Writes happen inside the repositories, in the same transaction as the
// mutation they record.
type AuditService struct {
	audit repositories.AuditRepository
}

func NewAuditService(audit repositories.AuditRepository) *AuditService {
	return &AuditService{audit: audit}
}

// Query returns audit entries matching the filter, newest first.
func (s *AuditService) Query(ctx context.Context, filter repositories.AuditFilter) ([]*models.AuditEntry, error) {
	return s.audit.Query(ctx, filter)
}
