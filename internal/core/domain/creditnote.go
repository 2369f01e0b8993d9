package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTCreditNote reverses part or all of a prior invoice on cancellation/refund.
// It links to exactly one parent invoice and carries the refunded portion of the
// parent's taxable value and tax, apportioned in the parent's tax regime.
type GSTCreditNote struct {
	CreditNoteID     string          `json:"creditNoteID"`
	CreditNoteNumber string          `json:"creditNoteNumber"`
	IssueDate        time.Time       `json:"issueDate"`
	InvoiceID        string          `json:"invoiceID"` // parent invoice
	CompanyID        string          `json:"companyID"`
	RefundTaxable    decimal.Decimal `json:"refundTaxable"`
	RefundTax        TaxBreakup      `json:"refundTax"`
	TotalRefund      decimal.Decimal `json:"totalRefund"` // refundTaxable + refund tax total
	Reason           string          `json:"reason"`
	AuditFields
}
