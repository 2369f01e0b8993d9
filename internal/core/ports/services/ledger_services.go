package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

// LedgerSvcFacade derives double-entry ledger rows from invoices, payments and
// credit notes. Derivation is read-only and idempotent.
type LedgerSvcFacade interface {
	GenerateLedger(ctx context.Context, query dto.LedgerQuery) ([]domain.LedgerEntry, error)
}
