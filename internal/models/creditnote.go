package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTCreditNote is the database shape of a credit note.
type GSTCreditNote struct {
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
	AuditFields
}
