package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies a payment against a booking.
type PaymentType string

const (
	PaymentAdvance PaymentType = "ADVANCE"
	PaymentFull    PaymentType = "FULL"
	PaymentBalance PaymentType = "BALANCE"
	PaymentRefund  PaymentType = "REFUND"
)

// PaymentMode is the instrument used; CASH routes to the cash ledger, everything
// else to the bank ledger.
type PaymentMode string

const (
	ModeCash     PaymentMode = "CASH"
	ModeBank     PaymentMode = "BANK_TRANSFER"
	ModeCard     PaymentMode = "CARD"
	ModeUPI      PaymentMode = "UPI"
	ModeCheque   PaymentMode = "CHEQUE"
	ModeGateway  PaymentMode = "GATEWAY"
)

// PaymentEntry is one payment appended to a booking's payment history.
// Immutable after creation; never mutated or deleted.
type PaymentEntry struct {
	PaymentID     string          `json:"paymentID"`
	BookingID     string          `json:"bookingID"`
	CompanyID     string          `json:"companyID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Mode          PaymentMode     `json:"mode"`
	Type          PaymentType     `json:"type"`
	Reference     string          `json:"reference"`
	ReceiptNumber string          `json:"receiptNumber,omitempty"`
	AuditFields
}
