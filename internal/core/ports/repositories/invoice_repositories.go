package repositories

import (
	"context"
	"time"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// InvoiceReader defines read operations for tax invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.GSTInvoice, error)

	// FindInvoiceByBookingID retrieves the (at most one) invoice for a booking.
	// Returns apperrors.ErrNotFound when the booking has no invoice.
	FindInvoiceByBookingID(ctx context.Context, bookingID string) (*domain.GSTInvoice, error)

	// ListInvoicesByDateRange retrieves invoices whose invoice date lies in the
	// half-open window [from, to), newest last, optionally company-filtered.
	ListInvoicesByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.GSTInvoice, error)
}

// InvoiceWriter defines write operations for tax invoices.
type InvoiceWriter interface {
	// SaveInvoice allocates the next invoice number for the invoice's company
	// and persists the invoice, both inside one transaction: the counter never
	// advances without the invoice row existing. The input's InvoiceNumber is
	// ignored; the stamped invoice is returned. A concurrent insert for the
	// same booking surfaces as apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.GSTInvoice) (*domain.GSTInvoice, error)

	// UpdateInvoiceStatus transitions an invoice's status and optionally links
	// the credit note that caused the transition.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, creditNoteID *string, updatedBy string, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
