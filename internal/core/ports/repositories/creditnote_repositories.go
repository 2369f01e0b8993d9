package repositories

import (
	"context"
	"time"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// CreditNoteReader defines read operations for credit notes.
type CreditNoteReader interface {
	// FindCreditNoteByID retrieves a credit note by its identifier.
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.GSTCreditNote, error)

	// FindCreditNotesByInvoiceIDs retrieves credit notes keyed by their parent
	// invoice ID. Invoices without a note are absent from the map.
	FindCreditNotesByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.GSTCreditNote, error)

	// ListCreditNotesByDateRange retrieves credit notes whose issue date lies in
	// the half-open window [from, to), optionally company-filtered.
	ListCreditNotesByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.GSTCreditNote, error)
}

// CreditNoteWriter defines write operations for credit notes.
type CreditNoteWriter interface {
	// SaveCreditNote allocates the next credit-note number, persists the note,
	// and marks the parent invoice REFUNDED with a link to the note — all in
	// one transaction.
	SaveCreditNote(ctx context.Context, note domain.GSTCreditNote) (*domain.GSTCreditNote, error)
}

// CreditNoteRepositoryFacade combines all credit-note repository interfaces.
type CreditNoteRepositoryFacade interface {
	CreditNoteReader
	CreditNoteWriter
}
