package repositories

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// BookingReader exposes the slice of the external booking store the accounting
// core needs. Bookings are never written from here.
type BookingReader interface {
	// FindBookingByID retrieves a booking by its identifier.
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// FindBookingsByIDs retrieves bookings keyed by ID; missing IDs are simply
	// absent from the map (callers decide whether that is an error).
	FindBookingsByIDs(ctx context.Context, bookingIDs []string) (map[string]domain.Booking, error)
}
