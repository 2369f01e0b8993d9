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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockBookingRepo *MockBookingRepository
	mockCompanyRepo *MockCompanyRepository
	audit           *stubAuditService
	service         portssvc.PaymentSvcFacade
	booking         domain.Booking
	now             time.Time
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.audit = new(stubAuditService)
	suite.now = time.Date(2025, time.May, 2, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockBookingRepo,
		suite.mockCompanyRepo,
		suite.audit,
		services.WithPaymentClock(func() time.Time { return suite.now }),
	)

	suite.booking = domain.Booking{
		BookingID:    "bk-1",
		BookingRef:   "TB-2025-0101",
		CompanyID:    "comp-1",
		CustomerName: "Acme Tours",
		AgentName:    "Acme Tours",
		SellingPrice: dec("10500"),
	}
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AppendsEntry() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		BookingID: "bk-1",
		Amount:    dec("5250"),
		Mode:      "BANK_TRANSFER",
		Type:      "ADVANCE",
		Reference: "UTR-123",
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, "bk-1").Return(&suite.booking, nil).Once()
	var saved domain.PaymentEntry
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.PaymentEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.PaymentEntry)
			saved.ReceiptNumber = "RCPT2025-0001"
		}).Return(&saved, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("bk-1", payment.BookingID)
	suite.Equal("comp-1", payment.CompanyID)
	suite.Equal(domain.PaymentAdvance, payment.Type)
	suite.Equal(domain.ModeBank, payment.Mode)
	suite.Equal("RCPT2025-0001", payment.ReceiptNumber)
	suite.Equal(suite.now, payment.PaymentDate)
	suite.True(payment.Amount.Equal(dec("5250")))
	suite.Len(suite.audit.records, 1)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{BookingID: "bk-1", Amount: dec("0"), Mode: "CASH", Type: "FULL"}

	_, err := suite.service.RecordPayment(ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsUnknownMode() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{BookingID: "bk-1", Amount: dec("100"), Mode: "BARTER", Type: "FULL"}

	_, err := suite.service.RecordPayment(ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_HonoursExplicitDate() {
	ctx := context.Background()
	paidAt := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
	req := dto.RecordPaymentRequest{
		BookingID:   "bk-1",
		Amount:      dec("100"),
		PaymentDate: &paidAt,
		Mode:        "CASH",
		Type:        "REFUND",
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, "bk-1").Return(&suite.booking, nil).Once()
	var saved domain.PaymentEntry
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.PaymentEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.PaymentEntry)
		}).Return(&saved, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(paidAt, payment.PaymentDate)
	suite.Empty(payment.ReceiptNumber)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_MissingBooking() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{BookingID: "ghost", Amount: dec("100"), Mode: "UPI", Type: "FULL"}

	suite.mockBookingRepo.On("FindBookingByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordPayment(ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsByBooking_EmptyHistory() {
	ctx := context.Background()
	suite.mockPaymentRepo.On("ListPaymentsByBookingID", ctx, "bk-1").Return(nil, nil).Once()

	payments, err := suite.service.ListPaymentsByBooking(ctx, "bk-1")

	suite.Require().NoError(err)
	suite.NotNil(payments)
	suite.Empty(payments)
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
