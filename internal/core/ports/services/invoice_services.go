package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a single invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.GSTInvoice, error)

	// ListInvoices retrieves invoices for a date window, optionally filtered
	// by company.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.GSTInvoice, error)
}

// InvoiceWriterSvc defines invoice lifecycle operations.
type InvoiceWriterSvc interface {
	// GenerateInvoice creates the tax invoice for a booking, or reports the
	// existing one: generation is idempotent per booking.
	GenerateInvoice(ctx context.Context, bookingID string, actorUserID string) (*dto.InvoiceGenerationResult, error)

	// VoidInvoice cancels an ACTIVE invoice that has no payments against its
	// booking yet.
	VoidInvoice(ctx context.Context, invoiceID string, actorUserID string) error
}

// InvoiceSvcFacade combines all invoice service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
