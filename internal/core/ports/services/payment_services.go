package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

// PaymentSvcFacade defines payment recording and reads.
type PaymentSvcFacade interface {
	// RecordPayment appends an immutable payment entry to a booking and, for
	// non-refund payments, allocates a receipt number.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actorUserID string) (*domain.PaymentEntry, error)

	// ListPaymentsByBooking retrieves a booking's payment history.
	ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.PaymentEntry, error)
}
