package models

import "github.com/shopspring/decimal"

// Booking is the read-only projection of the external booking record.
type Booking struct {
	BookingID    string          `json:"bookingID"`
	BookingRef   string          `json:"bookingRef"`
	CompanyID    *string         `json:"companyID"`
	CustomerName string          `json:"customerName"`
	AgentID      string          `json:"agentID"`
	AgentName    string          `json:"agentName"`
	Destination  string          `json:"destination"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	NetCost      decimal.Decimal `json:"netCost"`
	RefundAmount *decimal.Decimal `json:"refundAmount"`
}
