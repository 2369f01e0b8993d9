package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a repository over the append-only audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditWriter {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditWriter = (*PgxAuditRepository)(nil)

// SaveAuditRecord appends one record to the audit trail.
func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_logs (audit_id, entity_type, entity_id, action, description, user_id, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.AuditID,
		record.EntityType,
		record.EntityID,
		record.Action,
		record.Description,
		record.User,
		record.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record %s: %w", record.AuditID, err)
	}
	return nil
}
