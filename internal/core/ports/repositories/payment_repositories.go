package repositories

import (
	"context"
	"time"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// PaymentReader defines read operations for booking payments.
type PaymentReader interface {
	// ListPaymentsByBookingID retrieves a booking's payment history, oldest first.
	ListPaymentsByBookingID(ctx context.Context, bookingID string) ([]domain.PaymentEntry, error)

	// ListPaymentsByDateRange retrieves payments dated in the half-open window
	// [from, to) across all bookings, optionally company-filtered.
	ListPaymentsByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.PaymentEntry, error)
}

// PaymentWriter defines write operations for booking payments.
type PaymentWriter interface {
	// SavePayment allocates a receipt number for non-refund payments and
	// appends the entry to the booking's history in one transaction. Payments
	// are immutable once written.
	SavePayment(ctx context.Context, payment domain.PaymentEntry) (*domain.PaymentEntry, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
