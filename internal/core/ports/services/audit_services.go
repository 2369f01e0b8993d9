package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// AuditSvcFacade records audit trail entries. Fire-and-forget: failures are
// logged, never propagated to the business operation that emitted them.
type AuditSvcFacade interface {
	LogAction(ctx context.Context, record domain.AuditRecord)
}
