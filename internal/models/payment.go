package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEntry is the database shape of a booking payment.
type PaymentEntry struct {
	PaymentID     string          `json:"paymentID"`
	BookingID     string          `json:"bookingID"`
	CompanyID     string          `json:"companyID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Mode          string          `json:"mode"`
	Type          string          `json:"type"`
	Reference     string          `json:"reference"`
	ReceiptNumber *string         `json:"receiptNumber"`
	AuditFields
}
