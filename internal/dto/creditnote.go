package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

// IssueCreditNoteRequest reverses an invoice, partially or fully.
type IssueCreditNoteRequest struct {
	InvoiceID     string          `json:"invoiceID" binding:"required"`
	RefundTaxable decimal.Decimal `json:"refundTaxable" binding:"gte=0"`
	RefundTax     decimal.Decimal `json:"refundTax" binding:"gte=0"`
	Reason        string          `json:"reason" binding:"required"`
}

// CreditNoteResponse is the API shape of a credit note.
type CreditNoteResponse struct {
	CreditNoteID     string          `json:"creditNoteID"`
	CreditNoteNumber string          `json:"creditNoteNumber"`
	IssueDate        time.Time       `json:"issueDate"`
	InvoiceID        string          `json:"invoiceID"`
	CompanyID        string          `json:"companyID"`
	RefundTaxable    decimal.Decimal `json:"refundTaxable"`
	TaxRegime        string          `json:"taxRegime"`
	RefundCGST       decimal.Decimal `json:"refundCgst"`
	RefundSGST       decimal.Decimal `json:"refundSgst"`
	RefundIGST       decimal.Decimal `json:"refundIgst"`
	TotalRefund      decimal.Decimal `json:"totalRefund"`
	Reason           string          `json:"reason"`
}

// ToCreditNoteResponse converts a domain credit note to its API shape.
func ToCreditNoteResponse(n *domain.GSTCreditNote) CreditNoteResponse {
	return CreditNoteResponse{
		CreditNoteID:     n.CreditNoteID,
		CreditNoteNumber: n.CreditNoteNumber,
		IssueDate:        n.IssueDate,
		InvoiceID:        n.InvoiceID,
		CompanyID:        n.CompanyID,
		RefundTaxable:    n.RefundTaxable,
		TaxRegime:        string(n.RefundTax.Regime),
		RefundCGST:       accounting.RoundPaisa(n.RefundTax.CGST),
		RefundSGST:       accounting.RoundPaisa(n.RefundTax.SGST),
		RefundIGST:       accounting.RoundPaisa(n.RefundTax.IGST),
		TotalRefund:      n.TotalRefund,
		Reason:           n.Reason,
	}
}
