package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// RecordPaymentRequest appends a payment to a booking's history.
type RecordPaymentRequest struct {
	BookingID   string          `json:"bookingID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	PaymentDate *time.Time      `json:"paymentDate"` // defaults to now
	Mode        string          `json:"mode" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=ADVANCE FULL BALANCE REFUND"`
	Reference   string          `json:"reference"`
}

// PaymentResponse is the API shape of a payment entry.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	BookingID     string          `json:"bookingID"`
	CompanyID     string          `json:"companyID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Mode          string          `json:"mode"`
	Type          string          `json:"type"`
	Reference     string          `json:"reference"`
	ReceiptNumber string          `json:"receiptNumber,omitempty"`
}

// ToPaymentResponse converts a domain payment to its API shape.
func ToPaymentResponse(p *domain.PaymentEntry) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		BookingID:     p.BookingID,
		CompanyID:     p.CompanyID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		Mode:          string(p.Mode),
		Type:          string(p.Type),
		Reference:     p.Reference,
		ReceiptNumber: p.ReceiptNumber,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(ps []domain.PaymentEntry) []PaymentResponse {
	responses := make([]PaymentResponse, len(ps))
	for i := range ps {
		responses[i] = ToPaymentResponse(&ps[i])
	}
	return responses
}
