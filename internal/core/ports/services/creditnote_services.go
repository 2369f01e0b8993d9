package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

// CreditNoteSvcFacade defines credit-note operations.
type CreditNoteSvcFacade interface {
	// IssueCreditNote reverses an invoice (partially or fully), marking it
	// REFUNDED and linking the note. The refund tax is apportioned in the
	// parent invoice's tax regime.
	IssueCreditNote(ctx context.Context, req dto.IssueCreditNoteRequest, actorUserID string) (*domain.GSTCreditNote, error)

	// GetCreditNoteByID retrieves a single credit note.
	GetCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.GSTCreditNote, error)
}
