package services

import (
	"context"
	"io"

	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

// ExportSvcFacade serializes accounting data into external tool formats.
// Implementations must not emit partial documents: on error nothing is written
// to w.
type ExportSvcFacade interface {
	// ExportTallyVouchers writes the Tally XML voucher envelope for the window.
	ExportTallyVouchers(ctx context.Context, query dto.ExportQuery, w io.Writer) error

	// ExportZohoInvoices writes the Zoho invoices CSV for the window.
	ExportZohoInvoices(ctx context.Context, query dto.ExportQuery, w io.Writer) error

	// ExportZohoPayments writes the Zoho payments CSV for the window.
	ExportZohoPayments(ctx context.Context, query dto.ExportQuery, w io.Writer) error

	// ExportZohoCreditNotes writes the Zoho credit notes CSV for the window.
	ExportZohoCreditNotes(ctx context.Context, query dto.ExportQuery, w io.Writer) error
}
