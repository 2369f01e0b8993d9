package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PLViewerRole selects whose economics a P&L report reflects.
type PLViewerRole string

const (
	PLViewerAdmin PLViewerRole = "ADMIN"
	PLViewerAgent PLViewerRole = "AGENT"
)

// PLTransaction is the per-invoice profit view after credit-note adjustments.
type PLTransaction struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          time.Time       `json:"date"`
	BookingRef    string          `json:"bookingRef"`
	AgentName     string          `json:"agentName"`
	Destination   string          `json:"destination"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	Status        InvoiceStatus   `json:"status"`
}

// MonthlyTrendPoint aggregates transactions of one calendar month.
// Label format: "Jan '25".
type MonthlyTrendPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// DestinationProfit is one row of the top-destination rollup.
type DestinationProfit struct {
	Destination string          `json:"destination"`
	Profit      decimal.Decimal `json:"profit"`
}

// PLSummary is the aggregate view over a report's transactions.
type PLSummary struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	NetMarginPercent decimal.Decimal `json:"netMarginPercent"` // zero when revenue is zero
	TransactionCount int             `json:"transactionCount"`
}

// PLReport is the full report: transactions sorted by date descending, a
// chronological monthly trend, and (for admin/overall views) top destinations.
type PLReport struct {
	Transactions    []PLTransaction     `json:"transactions"`
	Summary         PLSummary           `json:"summary"`
	MonthlyTrend    []MonthlyTrendPoint `json:"monthlyTrend"`
	TopDestinations []DestinationProfit `json:"topDestinations,omitempty"`
}
