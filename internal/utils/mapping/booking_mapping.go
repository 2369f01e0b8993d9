package mapping

import (
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/models"
)

// ToDomainBooking converts a model Booking to the domain shape.
func ToDomainBooking(m models.Booking) domain.Booking {
	d := domain.Booking{
		BookingID:    m.BookingID,
		BookingRef:   m.BookingRef,
		CustomerName: m.CustomerName,
		AgentID:      m.AgentID,
		AgentName:    m.AgentName,
		Destination:  m.Destination,
		SellingPrice: m.SellingPrice,
		NetCost:      m.NetCost,
	}
	if m.CompanyID != nil {
		d.CompanyID = *m.CompanyID
	}
	if m.RefundAmount != nil {
		d.Cancellation = &domain.BookingCancellation{RefundAmount: *m.RefundAmount}
	}
	return d
}

// ToDomainBookingSlice converts a slice of model bookings.
func ToDomainBookingSlice(ms []models.Booking) []domain.Booking {
	ds := make([]domain.Booking, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBooking(m)
	}
	return ds
}
