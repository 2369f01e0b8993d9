package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/core/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

type PLServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo    *MockInvoiceRepository
	mockCreditNoteRepo *MockCreditNoteRepository
	mockBookingRepo    *MockBookingRepository
	service            portssvc.PLSvcFacade
	invoice            domain.GSTInvoice
	booking            domain.Booking
	query              dto.PLQuery
}

func (suite *PLServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCreditNoteRepo = new(MockCreditNoteRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.service = services.NewPLService(
		suite.mockInvoiceRepo,
		suite.mockCreditNoteRepo,
		suite.mockBookingRepo,
	)

	suite.invoice = domain.GSTInvoice{
		InvoiceID:     "inv-1",
		InvoiceNumber: "INV2025-0001",
		InvoiceDate:   time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		BookingID:     "bk-1",
		BookingRef:    "TB-2025-0101",
		CustomerName:  "Acme Tours",
		TaxableAmount: dec("10000"),
		GSTRate:       dec("5"),
		Tax:           domain.NewSplitBreakup(dec("500")),
		TotalTax:      dec("500"),
		TotalAmount:   dec("10500"),
		Status:        domain.InvoiceActive,
	}
	suite.booking = domain.Booking{
		BookingID:    "bk-1",
		BookingRef:   "TB-2025-0101",
		CustomerName: "Acme Tours",
		AgentID:      "agent-1",
		AgentName:    "Acme Tours",
		Destination:  "Bali",
		SellingPrice: dec("10500"),
		NetCost:      dec("9000"),
	}
	suite.query = dto.PLQuery{
		ViewerRole: domain.PLViewerAdmin,
		ViewerID:   "admin-1",
		From:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PLServiceTestSuite) expectData(invoices []domain.GSTInvoice, bookings map[string]domain.Booking, notes map[string]domain.GSTCreditNote) {
	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", mock.Anything, suite.query.From, suite.query.To.AddDate(0, 0, 1), (*string)(nil)).
		Return(invoices, nil).Once()
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, mock.AnythingOfType("[]string")).
		Return(bookings, nil).Once()
	suite.mockCreditNoteRepo.On("FindCreditNotesByInvoiceIDs", mock.Anything, mock.AnythingOfType("[]string")).
		Return(notes, nil).Once()
}

func (suite *PLServiceTestSuite) TestGenerateReport_AdminEconomics() {
	suite.expectData([]domain.GSTInvoice{suite.invoice},
		map[string]domain.Booking{"bk-1": suite.booking},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(report.Transactions, 1)
	txn := report.Transactions[0]
	suite.True(txn.Revenue.Equal(dec("10000")), "admin revenue is the taxable amount")
	suite.True(txn.Cost.Equal(dec("9000")), "admin cost is the booking net cost")
	suite.True(txn.GrossProfit.Equal(dec("1000")))
	suite.Equal(domain.InvoiceActive, txn.Status)

	suite.True(report.Summary.TotalRevenue.Equal(dec("10000")))
	suite.True(report.Summary.GrossProfit.Equal(dec("1000")))
	suite.True(report.Summary.NetMarginPercent.Equal(dec("10")))
	suite.Equal(1, report.Summary.TransactionCount)
}

func (suite *PLServiceTestSuite) TestGenerateReport_AgentEconomics() {
	suite.query.ViewerRole = domain.PLViewerAgent
	suite.query.ViewerID = "agent-1"

	suite.expectData([]domain.GSTInvoice{suite.invoice},
		map[string]domain.Booking{"bk-1": suite.booking},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(report.Transactions, 1)
	txn := report.Transactions[0]
	suite.True(txn.Revenue.Equal(dec("10500")), "agent revenue is the selling price")
	suite.True(txn.Cost.Equal(dec("10500")), "agent cost is the invoice total")
	suite.True(txn.GrossProfit.IsZero())
	suite.Empty(report.TopDestinations, "agent views carry no destination rollup")
}

func (suite *PLServiceTestSuite) TestGenerateReport_AgentSeesOnlyOwnBookings() {
	suite.query.ViewerRole = domain.PLViewerAgent
	suite.query.ViewerID = "someone-else"

	suite.expectData([]domain.GSTInvoice{suite.invoice},
		map[string]domain.Booking{"bk-1": suite.booking},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Empty(report.Transactions)
	suite.Equal(0, report.Summary.TransactionCount)
	suite.True(report.Summary.NetMarginPercent.IsZero(), "zero revenue keeps the margin at zero")
}

func (suite *PLServiceTestSuite) TestGenerateReport_RefundAdjustsEconomics() {
	refunded := suite.invoice
	refunded.Status = domain.InvoiceRefunded
	note := domain.GSTCreditNote{
		CreditNoteID:  "cn-1",
		InvoiceID:     "inv-1",
		RefundTaxable: dec("10000"),
		RefundTax:     domain.NewSplitBreakup(dec("500")),
		TotalRefund:   dec("10500"),
	}

	suite.expectData([]domain.GSTInvoice{refunded},
		map[string]domain.Booking{"bk-1": suite.booking},
		map[string]domain.GSTCreditNote{"inv-1": note})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(report.Transactions, 1)
	txn := report.Transactions[0]
	suite.Equal(domain.InvoiceRefunded, txn.Status)
	suite.True(txn.Revenue.IsZero(), "full refund wipes admin revenue")
	suite.True(txn.Cost.IsZero(), "refunded booking carries no cost")
	suite.True(txn.GrossProfit.IsZero())
}

func (suite *PLServiceTestSuite) TestGenerateReport_MonthlyTrendSortedChronologically() {
	january := suite.invoice
	march := suite.invoice
	march.InvoiceID = "inv-2"
	march.BookingID = "bk-1"
	january.InvoiceID = "inv-3"
	// Deliberately listed out of order.
	march.InvoiceDate = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	january.InvoiceDate = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	suite.query.From = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	suite.query.To = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.expectData([]domain.GSTInvoice{march, january},
		map[string]domain.Booking{"bk-1": suite.booking},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(report.MonthlyTrend, 2)
	suite.Equal("Jan '25", report.MonthlyTrend[0].Label)
	suite.Equal("Mar '25", report.MonthlyTrend[1].Label)
	suite.True(report.MonthlyTrend[0].Revenue.Equal(dec("10000")))

	// Transactions come newest first.
	suite.Require().Len(report.Transactions, 2)
	suite.Equal("inv-2", report.Transactions[0].InvoiceID)
}

func (suite *PLServiceTestSuite) TestGenerateReport_TopDestinationsKeepsProfitableOnly() {
	bali := suite.invoice
	goa := suite.invoice
	goa.InvoiceID = "inv-2"
	goa.BookingID = "bk-2"

	goaBooking := suite.booking
	goaBooking.BookingID = "bk-2"
	goaBooking.Destination = "Goa"
	goaBooking.NetCost = dec("12000") // loss-making

	suite.expectData([]domain.GSTInvoice{bali, goa},
		map[string]domain.Booking{"bk-1": suite.booking, "bk-2": goaBooking},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(report.TopDestinations, 1)
	suite.Equal("Bali", report.TopDestinations[0].Destination)
	suite.True(report.TopDestinations[0].Profit.Equal(dec("1000")))
}

func (suite *PLServiceTestSuite) TestGenerateReport_DestinationFilter() {
	destination := "bali"
	suite.query.Destination = &destination

	suite.expectData([]domain.GSTInvoice{suite.invoice},
		map[string]domain.Booking{"bk-1": suite.booking},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Len(report.Transactions, 1, "destination match is case-insensitive")
	suite.Empty(report.TopDestinations, "filtered views carry no destination rollup")
}

func (suite *PLServiceTestSuite) TestGenerateReport_SkipsInvoiceWithMissingBooking() {
	suite.expectData([]domain.GSTInvoice{suite.invoice},
		map[string]domain.Booking{},
		map[string]domain.GSTCreditNote{})

	report, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Empty(report.Transactions)
}

func (suite *PLServiceTestSuite) TestGenerateReport_InvertedWindow() {
	suite.query.From, suite.query.To = suite.query.To, suite.query.From

	_, err := suite.service.GenerateReport(context.Background(), suite.query)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestPLService(t *testing.T) {
	suite.Run(t, new(PLServiceTestSuite))
}
