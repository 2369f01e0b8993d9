package repositories

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// AuditWriter appends records to the audit trail.
type AuditWriter interface {
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
}
