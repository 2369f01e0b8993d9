package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

const topDestinationCount = 5

type plService struct {
	BaseService
	invoiceRepo    portsrepo.InvoiceReader
	creditNoteRepo portsrepo.CreditNoteReader
	bookingRepo    portsrepo.BookingReader
}

// NewPLService creates the profit-and-loss aggregator.
func NewPLService(
	invoiceRepo portsrepo.InvoiceReader,
	creditNoteRepo portsrepo.CreditNoteReader,
	bookingRepo portsrepo.BookingReader,
) portssvc.PLSvcFacade {
	return &plService{
		invoiceRepo:    invoiceRepo,
		creditNoteRepo: creditNoteRepo,
		bookingRepo:    bookingRepo,
	}
}

var _ portssvc.PLSvcFacade = (*plService)(nil)

// GenerateReport computes the P&L over invoiced bookings in the inclusive
// window. Admins see company economics (taxable revenue vs net cost); agents
// see their own margin (selling price vs invoice total). Credit-noted
// invoices stay in the report with their economics adjusted. Invoices whose
// booking has gone missing are skipped with a data-integrity warning.
func (s *plService) GenerateReport(ctx context.Context, query dto.PLQuery) (*domain.PLReport, error) {
	if query.To.Before(query.From) {
		return nil, apperrors.NewAppError(400, "window end precedes start", apperrors.ErrValidation)
	}

	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, query.From, query.To.AddDate(0, 0, 1), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for report: %w", err)
	}

	// Agents only ever see their own bookings; an admin may narrow to one agent.
	agentFilter := query.AgentID
	if query.ViewerRole == domain.PLViewerAgent {
		agentFilter = &query.ViewerID
	}

	bookingIDs := make([]string, 0, len(invoices))
	invoiceIDs := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceCancelled {
			continue
		}
		bookingIDs = append(bookingIDs, inv.BookingID)
		invoiceIDs = append(invoiceIDs, inv.InvoiceID)
	}
	bookings, err := s.bookingRepo.FindBookingsByIDs(ctx, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for report: %w", err)
	}
	notes, err := s.creditNoteRepo.FindCreditNotesByInvoiceIDs(ctx, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit notes for report: %w", err)
	}

	transactions := make([]domain.PLTransaction, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceCancelled {
			continue
		}
		booking, ok := bookings[inv.BookingID]
		if !ok {
			s.LogWarn(ctx, "skipping invoice with missing booking",
				"invoice_id", inv.InvoiceID, "booking_id", inv.BookingID)
			continue
		}
		if agentFilter != nil && booking.AgentID != *agentFilter {
			continue
		}
		if query.Destination != nil &&
			!strings.Contains(strings.ToLower(booking.Destination), strings.ToLower(*query.Destination)) {
			continue
		}

		note, hasNote := notes[inv.InvoiceID]
		txn := s.buildTransaction(query.ViewerRole, inv, booking, note, hasNote)
		transactions = append(transactions, txn)
	}

	report := &domain.PLReport{
		Transactions: transactions,
		Summary:      summarize(transactions),
		MonthlyTrend: monthlyTrend(transactions),
	}
	if query.ViewerRole == domain.PLViewerAdmin && agentFilter == nil && query.Destination == nil {
		report.TopDestinations = topDestinations(transactions)
	}

	sort.SliceStable(report.Transactions, func(i, j int) bool {
		return report.Transactions[i].Date.After(report.Transactions[j].Date)
	})
	return report, nil
}

// buildTransaction computes one invoice's economics for the viewer role,
// applying credit-note adjustments when the invoice has been reversed.
func (s *plService) buildTransaction(role domain.PLViewerRole, inv domain.GSTInvoice, booking domain.Booking, note domain.GSTCreditNote, hasNote bool) domain.PLTransaction {
	var revenue, cost decimal.Decimal
	if role == domain.PLViewerAgent {
		revenue = booking.SellingPrice
		cost = inv.TotalAmount
	} else {
		revenue = inv.TaxableAmount
		cost = booking.NetCost
	}

	status := inv.Status
	if hasNote {
		status = domain.InvoiceRefunded
		if role == domain.PLViewerAgent {
			// The agent refunds the client and gets the note back from the company.
			clientRefund := decimal.Zero
			if booking.Cancellation != nil {
				clientRefund = booking.Cancellation.RefundAmount
			}
			revenue = revenue.Sub(clientRefund)
			cost = cost.Sub(note.TotalRefund)
		} else {
			revenue = revenue.Sub(note.RefundTaxable)
			cost = decimal.Zero
		}
	}

	return domain.PLTransaction{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.InvoiceDate,
		BookingRef:    booking.BookingRef,
		AgentName:     booking.AgentName,
		Destination:   booking.Destination,
		Revenue:       revenue,
		Cost:          cost,
		GrossProfit:   revenue.Sub(cost),
		Status:        status,
	}
}

func summarize(transactions []domain.PLTransaction) domain.PLSummary {
	summary := domain.PLSummary{TransactionCount: len(transactions)}
	for _, t := range transactions {
		summary.TotalRevenue = summary.TotalRevenue.Add(t.Revenue)
		summary.TotalCost = summary.TotalCost.Add(t.Cost)
	}
	summary.GrossProfit = summary.TotalRevenue.Sub(summary.TotalCost)
	if !summary.TotalRevenue.IsZero() {
		summary.NetMarginPercent = accounting.RoundPaisa(
			summary.GrossProfit.Div(summary.TotalRevenue).Mul(decimal.NewFromInt(100)))
	}
	return summary
}

// monthlyTrend buckets transactions by calendar month and returns the buckets
// chronologically.
func monthlyTrend(transactions []domain.PLTransaction) []domain.MonthlyTrendPoint {
	buckets := make(map[int]*domain.MonthlyTrendPoint)
	for _, t := range transactions {
		key := t.Date.Year()*100 + int(t.Date.Month())
		point, ok := buckets[key]
		if !ok {
			point = &domain.MonthlyTrendPoint{
				Label: t.Date.Format("Jan '06"),
				Year:  t.Date.Year(),
				Month: t.Date.Month(),
			}
			buckets[key] = point
		}
		point.Revenue = point.Revenue.Add(t.Revenue)
		point.Cost = point.Cost.Add(t.Cost)
		point.Profit = point.Profit.Add(t.GrossProfit)
	}

	trend := make([]domain.MonthlyTrendPoint, 0, len(buckets))
	for _, point := range buckets {
		trend = append(trend, *point)
	}
	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year < trend[j].Year
		}
		return trend[i].Month < trend[j].Month
	})
	return trend
}

// topDestinations rolls profitable transactions up by destination and keeps
// the five best.
func topDestinations(transactions []domain.PLTransaction) []domain.DestinationProfit {
	profits := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Destination == "" || !t.GrossProfit.IsPositive() {
			continue
		}
		profits[t.Destination] = profits[t.Destination].Add(t.GrossProfit)
	}

	rollup := make([]domain.DestinationProfit, 0, len(profits))
	for destination, profit := range profits {
		rollup = append(rollup, domain.DestinationProfit{Destination: destination, Profit: profit})
	}
	sort.Slice(rollup, func(i, j int) bool {
		if !rollup[i].Profit.Equal(rollup[j].Profit) {
			return rollup[i].Profit.GreaterThan(rollup[j].Profit)
		}
		return rollup[i].Destination < rollup[j].Destination
	})
	if len(rollup) > topDestinationCount {
		rollup = rollup[:topDestinationCount]
	}
	return rollup
}
