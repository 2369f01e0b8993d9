package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTInvoice is the database shape of a tax invoice.
type GSTInvoice struct {
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
	CreditNoteID  *string         `json:"creditNoteID"`
	AuditFields
}
