package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/core/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo    *MockInvoiceRepository
	mockPaymentRepo    *MockPaymentRepository
	mockCreditNoteRepo *MockCreditNoteRepository
	mockBookingRepo    *MockBookingRepository
	service            portssvc.LedgerSvcFacade
	query              dto.LedgerQuery
	invoice            domain.GSTInvoice
	payment            domain.PaymentEntry
	note               domain.GSTCreditNote
	booking            domain.Booking
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockCreditNoteRepo = new(MockCreditNoteRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.service = services.NewLedgerService(
		suite.mockInvoiceRepo,
		suite.mockPaymentRepo,
		suite.mockCreditNoteRepo,
		suite.mockBookingRepo,
		0,
	)

	suite.query = dto.LedgerQuery{
		From: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
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
		Status:        domain.InvoiceRefunded,
	}
	suite.payment = domain.PaymentEntry{
		PaymentID:     "pay-1",
		BookingID:     "bk-1",
		Amount:        dec("5250"),
		PaymentDate:   time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Mode:          domain.ModeBank,
		Type:          domain.PaymentFull,
		ReceiptNumber: "RCPT2025-0001",
	}
	suite.note = domain.GSTCreditNote{
		CreditNoteID:     "cn-1",
		CreditNoteNumber: "CN2025-0001",
		IssueDate:        time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		InvoiceID:        "inv-1",
		RefundTaxable:    dec("10000"),
		RefundTax:        domain.NewSplitBreakup(dec("500")),
		TotalRefund:      dec("10500"),
	}
	suite.booking = domain.Booking{
		BookingID:  "bk-1",
		BookingRef: "TB-2025-0101",
		AgentName:  "Acme Tours",
	}
}

func (suite *LedgerServiceTestSuite) expectWindowData(invoices []domain.GSTInvoice, payments []domain.PaymentEntry, notes []domain.GSTCreditNote) {
	ctx := mock.Anything
	windowEnd := suite.query.To.AddDate(0, 0, 1)
	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", ctx, suite.query.From, windowEnd, (*string)(nil)).Return(invoices, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByDateRange", ctx, suite.query.From, windowEnd, (*string)(nil)).Return(payments, nil).Once()
	suite.mockCreditNoteRepo.On("ListCreditNotesByDateRange", ctx, suite.query.From, windowEnd, (*string)(nil)).Return(notes, nil).Once()
}

func countByType(entries []domain.LedgerEntry) map[domain.VoucherType]int {
	counts := make(map[domain.VoucherType]int)
	for _, e := range entries {
		counts[e.VoucherType]++
	}
	return counts
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_RoundTrip() {
	suite.expectWindowData(
		[]domain.GSTInvoice{suite.invoice},
		[]domain.PaymentEntry{suite.payment},
		[]domain.GSTCreditNote{suite.note},
	)
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{"bk-1"}).
		Return(map[string]domain.Booking{"bk-1": suite.booking}, nil).Once()

	entries, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Len(entries, 7)

	counts := countByType(entries)
	suite.Equal(3, counts[domain.VoucherSales], "taxable row + CGST + SGST")
	suite.Equal(1, counts[domain.VoucherReceipt])
	suite.Equal(3, counts[domain.VoucherCreditNote], "return row + CGST + SGST reversal")

	// Sales voucher: receivable debited for taxable and both tax components.
	suite.Equal("Agent Receivable - Acme Tours", entries[0].DebitLedger)
	suite.Equal(domain.LedgerSales, entries[0].CreditLedger)
	suite.True(entries[0].Amount.Equal(dec("10000")))
	suite.Equal(domain.ComponentCGST, entries[1].TaxComponent)
	suite.True(entries[1].TaxRate.Equal(dec("2.5")))
	suite.Equal(domain.ComponentSGST, entries[2].TaxComponent)

	// Receipt voucher: bank debit against the agent receivable.
	receipt := entries[3]
	suite.Equal(domain.LedgerBank, receipt.DebitLedger)
	suite.Equal("Agent Receivable - Acme Tours", receipt.CreditLedger)
	suite.Equal("RCPT2025-0001", receipt.VoucherNumber)
	suite.True(receipt.Amount.Equal(dec("5250")))

	// Credit-note voucher reverses sales and tax.
	suite.Equal(domain.LedgerSalesReturn, entries[4].DebitLedger)
	suite.Equal(domain.LedgerOutputCGST, entries[5].DebitLedger)
	suite.Equal(domain.LedgerOutputSGST, entries[6].DebitLedger)

	// Rows come out date-ascending.
	for i := 1; i < len(entries); i++ {
		suite.False(entries[i].Date.Before(entries[i-1].Date))
	}
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_CashPaymentDebitsCashLedger() {
	cashPayment := suite.payment
	cashPayment.Mode = domain.ModeCash

	suite.expectWindowData(nil, []domain.PaymentEntry{cashPayment}, nil)
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{"bk-1"}).
		Return(map[string]domain.Booking{"bk-1": suite.booking}, nil).Once()

	entries, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.LedgerCash, entries[0].DebitLedger)
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_ExcludesRefundPaymentsAndCancelledInvoices() {
	refund := suite.payment
	refund.Type = domain.PaymentRefund
	cancelled := suite.invoice
	cancelled.Status = domain.InvoiceCancelled

	suite.expectWindowData([]domain.GSTInvoice{cancelled}, []domain.PaymentEntry{refund}, nil)
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{}).
		Return(map[string]domain.Booking{}, nil).Once()

	entries, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_SkipsPaymentWithMissingBooking() {
	suite.expectWindowData(nil, []domain.PaymentEntry{suite.payment}, nil)
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{"bk-1"}).
		Return(map[string]domain.Booking{}, nil).Once()

	entries, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_IGSTInvoiceEmitsSingleTaxRow() {
	igst := suite.invoice
	igst.Tax = domain.NewIGSTBreakup(dec("500"))
	igst.Status = domain.InvoiceActive

	suite.expectWindowData([]domain.GSTInvoice{igst}, nil, nil)
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{}).
		Return(map[string]domain.Booking{}, nil).Once()

	entries, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(domain.LedgerOutputIGST, entries[1].CreditLedger)
	suite.Equal(domain.ComponentIGST, entries[1].TaxComponent)
	suite.True(entries[1].TaxRate.Equal(dec("5")))
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_InvertedWindow() {
	query := dto.LedgerQuery{From: suite.query.To, To: suite.query.From}

	_, err := suite.service.GenerateLedger(context.Background(), query)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_RangeTooLarge() {
	tiny := services.NewLedgerService(
		suite.mockInvoiceRepo,
		suite.mockPaymentRepo,
		suite.mockCreditNoteRepo,
		suite.mockBookingRepo,
		4,
	)
	suite.expectWindowData([]domain.GSTInvoice{suite.invoice, suite.invoice}, nil, nil)

	_, err := tiny.GenerateLedger(context.Background(), suite.query)

	suite.Require().ErrorIs(err, apperrors.ErrRangeTooLarge)
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_RegimeMismatchAborts() {
	badNote := suite.note
	badNote.RefundTax = domain.TaxBreakup{Regime: domain.RegimeIGST, IGST: dec("500")}

	suite.expectWindowData([]domain.GSTInvoice{suite.invoice}, nil, []domain.GSTCreditNote{badNote})
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{}).
		Return(map[string]domain.Booking{}, nil).Once()

	_, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().ErrorIs(err, apperrors.ErrRegimeMismatch)
}

func (suite *LedgerServiceTestSuite) TestGenerateLedger_BalancePropertyHolds() {
	suite.expectWindowData(
		[]domain.GSTInvoice{suite.invoice},
		[]domain.PaymentEntry{suite.payment},
		[]domain.GSTCreditNote{suite.note},
	)
	suite.mockBookingRepo.On("FindBookingsByIDs", mock.Anything, []string{"bk-1"}).
		Return(map[string]domain.Booking{"bk-1": suite.booking}, nil).Once()

	entries, err := suite.service.GenerateLedger(context.Background(), suite.query)

	suite.Require().NoError(err)

	// Net position per ledger account: debits add, credits subtract.
	net := make(map[string]decimal.Decimal)
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		net[e.DebitLedger] = net[e.DebitLedger].Add(e.Amount)
		net[e.CreditLedger] = net[e.CreditLedger].Sub(e.Amount)
		totals[e.VoucherNumber] = totals[e.VoucherNumber].Add(e.Amount)
	}

	// Invoiced 10500, collected 5250, refunded 10500: receivable nets to -5250.
	suite.True(net["Agent Receivable - Acme Tours"].Equal(dec("-5250")), "receivable: got %s", net["Agent Receivable - Acme Tours"])
	suite.True(net[domain.LedgerSales].Equal(dec("-10000")))
	suite.True(net[domain.LedgerSalesReturn].Equal(dec("10000")))
	suite.True(net[domain.LedgerBank].Equal(dec("5250")))
	// The full refund reverses the output tax accrued by the sale.
	suite.True(net[domain.LedgerOutputCGST].IsZero(), "CGST: got %s", net[domain.LedgerOutputCGST])
	suite.True(net[domain.LedgerOutputSGST].IsZero(), "SGST: got %s", net[domain.LedgerOutputSGST])

	// Each voucher moves its document total, once.
	suite.True(totals["INV2025-0001"].Equal(dec("10500")))
	suite.True(totals["RCPT2025-0001"].Equal(dec("5250")))
	suite.True(totals["CN2025-0001"].Equal(dec("10500")))
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
