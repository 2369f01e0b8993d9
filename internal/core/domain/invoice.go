package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of a tax invoice.
type InvoiceStatus string

const (
	InvoiceActive    InvoiceStatus = "ACTIVE"
	InvoiceCancelled InvoiceStatus = "CANCELLED" // voided before any payment
	InvoiceRefunded  InvoiceStatus = "REFUNDED"  // reversed by a credit note
)

// TaxBreakup is the closed representation of an invoice's tax components.
// Construct only via NewSplitBreakup or NewIGSTBreakup so that exactly one of
// {IGST > 0} or {CGST == SGST > 0} ever holds.
type TaxBreakup struct {
	Regime TaxRegime       `json:"regime"`
	CGST   decimal.Decimal `json:"cgst"`
	SGST   decimal.Decimal `json:"sgst"`
	IGST   decimal.Decimal `json:"igst"`
}

// NewSplitBreakup builds an intra-state breakup with the total tax split equally.
// The halves are kept at half-paisa precision so that CGST == SGST and
// CGST + SGST == totalTax hold exactly; paisa rounding happens at presentation.
func NewSplitBreakup(totalTax decimal.Decimal) TaxBreakup {
	half := totalTax.Div(decimal.NewFromInt(2))
	return TaxBreakup{Regime: RegimeCGSTSGST, CGST: half, SGST: half}
}

// NewIGSTBreakup builds an inter-state breakup carrying the whole tax as IGST.
func NewIGSTBreakup(totalTax decimal.Decimal) TaxBreakup {
	return TaxBreakup{Regime: RegimeIGST, IGST: totalTax}
}

// Total returns the sum of the breakup's components.
func (b TaxBreakup) Total() decimal.Decimal {
	return b.CGST.Add(b.SGST).Add(b.IGST)
}

// GSTInvoice represents a sequentially numbered tax invoice generated from a
// booking. Immutable once created except for Status and CreditNoteID.
type GSTInvoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"` // unique per company, from the sequence registry
	InvoiceDate   time.Time       `json:"invoiceDate"`
	BookingID     string          `json:"bookingID"`
	BookingRef    string          `json:"bookingRef"`
	CompanyID     string          `json:"companyID"`
	CustomerName  string          `json:"customerName"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	GSTRate       decimal.Decimal `json:"gstRate"` // percent
	Tax           TaxBreakup      `json:"tax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // taxableAmount + totalTax
	Status        InvoiceStatus   `json:"status"`
	CreditNoteID  *string         `json:"creditNoteID,omitempty"`
	AuditFields
}
