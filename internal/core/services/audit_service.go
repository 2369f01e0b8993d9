package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditWriter
	now       func() time.Time
}

// NewAuditService creates the audit-trail service.
func NewAuditService(auditRepo portsrepo.AuditWriter) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo, now: time.Now}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// LogAction appends one audit record. Failures are logged and swallowed: the
// business operation that emitted the record has already succeeded.
func (s *auditService) LogAction(ctx context.Context, record domain.AuditRecord) {
	if record.AuditID == "" {
		record.AuditID = uuid.NewString()
	}
	if record.LoggedAt.IsZero() {
		record.LoggedAt = s.now()
	}
	if err := s.auditRepo.SaveAuditRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "failed to write audit record",
			"entity_type", record.EntityType, "entity_id", record.EntityID, "action", record.Action)
	}
}
