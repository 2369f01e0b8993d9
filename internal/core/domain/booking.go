package domain

import "github.com/shopspring/decimal"

// BookingCancellation carries the refund agreed with the client when a booking
// is cancelled.
type BookingCancellation struct {
	RefundAmount decimal.Decimal `json:"refundAmount"`
}

// Booking is the slice of the external booking collaborator's record that the
// accounting core reads. The booking lifecycle itself is managed elsewhere.
type Booking struct {
	BookingID    string               `json:"bookingID"`
	BookingRef   string               `json:"bookingRef"`
	CompanyID    string               `json:"companyID,omitempty"` // empty means default company
	CustomerName string               `json:"customerName"`
	AgentID      string               `json:"agentID"`
	AgentName    string               `json:"agentName"`
	Destination  string               `json:"destination"`
	SellingPrice decimal.Decimal      `json:"sellingPrice"` // agent-facing gross selling price
	NetCost      decimal.Decimal      `json:"netCost"`
	Cancellation *BookingCancellation `json:"cancellation,omitempty"`
}
