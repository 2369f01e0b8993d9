package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

// GenerateInvoiceRequest asks for a tax invoice against a confirmed booking.
type GenerateInvoiceRequest struct {
	BookingID string `json:"bookingID" binding:"required"`
}

// InvoiceGenerationResult is the explicit outcome of invoice generation:
// either a freshly created invoice or the already existing one. Callers must
// not treat the AlreadyExists case as a failure.
type InvoiceGenerationResult struct {
	Created bool              `json:"created"`
	Invoice domain.GSTInvoice `json:"invoice"`
}

// InvoiceResponse is the API shape of an invoice, with tax components rounded
// to the paisa for display.
type InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	BookingID     string          `json:"bookingID"`
	BookingRef    string          `json:"bookingRef"`
	CompanyID     string          `json:"companyID"`
	CustomerName  string          `json:"customerName"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	GSTRate       decimal.Decimal `json:"gstRate"`
	TaxRegime     string          `json:"taxRegime"`
	CGSTAmount    decimal.Decimal `json:"cgstAmount"`
	SGSTAmount    decimal.Decimal `json:"sgstAmount"`
	IGSTAmount    decimal.Decimal `json:"igstAmount"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"status"`
	CreditNoteID  *string         `json:"creditNoteID,omitempty"`
}

// ListInvoicesParams filters the invoice list surface.
type ListInvoicesParams struct {
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	CompanyID *string   `form:"companyId"`
}

// ToInvoiceResponse converts a domain invoice to its API shape.
func ToInvoiceResponse(inv *domain.GSTInvoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		BookingID:     inv.BookingID,
		BookingRef:    inv.BookingRef,
		CompanyID:     inv.CompanyID,
		CustomerName:  inv.CustomerName,
		TaxableAmount: inv.TaxableAmount,
		GSTRate:       inv.GSTRate,
		TaxRegime:     string(inv.Tax.Regime),
		CGSTAmount:    accounting.RoundPaisa(inv.Tax.CGST),
		SGSTAmount:    accounting.RoundPaisa(inv.Tax.SGST),
		IGSTAmount:    accounting.RoundPaisa(inv.Tax.IGST),
		TotalTax:      inv.TotalTax,
		TotalAmount:   inv.TotalAmount,
		Status:        string(inv.Status),
		CreditNoteID:  inv.CreditNoteID,
	}
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(invs []domain.GSTInvoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invs))
	for i := range invs {
		responses[i] = ToInvoiceResponse(&invs[i])
	}
	return responses
}
