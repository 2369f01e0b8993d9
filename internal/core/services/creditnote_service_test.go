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

type CreditNoteServiceTestSuite struct {
	suite.Suite
	mockCreditNoteRepo *MockCreditNoteRepository
	mockInvoiceRepo    *MockInvoiceRepository
	audit              *stubAuditService
	service            portssvc.CreditNoteSvcFacade
	invoice            domain.GSTInvoice
	userID             string
}

func (suite *CreditNoteServiceTestSuite) SetupTest() {
	suite.mockCreditNoteRepo = new(MockCreditNoteRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.audit = new(stubAuditService)
	suite.service = services.NewCreditNoteService(
		suite.mockCreditNoteRepo,
		suite.mockInvoiceRepo,
		suite.audit,
		services.WithCreditNoteClock(func() time.Time {
			return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
		}),
	)

	suite.userID = "user-1"
	suite.invoice = domain.GSTInvoice{
		InvoiceID:     "inv-1",
		InvoiceNumber: "INV2025-0001",
		BookingID:     "bk-1",
		CompanyID:     "comp-1",
		CustomerName:  "Acme Tours",
		TaxableAmount: dec("10000"),
		GSTRate:       dec("5"),
		Tax:           domain.NewSplitBreakup(dec("500")),
		TotalTax:      dec("500"),
		TotalAmount:   dec("10500"),
		Status:        domain.InvoiceActive,
	}
}

func (suite *CreditNoteServiceTestSuite) request(taxable, tax string) dto.IssueCreditNoteRequest {
	return dto.IssueCreditNoteRequest{
		InvoiceID:     "inv-1",
		RefundTaxable: dec(taxable),
		RefundTax:     dec(tax),
		Reason:        "booking cancelled",
	}
}

func (suite *CreditNoteServiceTestSuite) TestIssueCreditNote_FullRefundInParentRegime() {
	ctx := context.Background()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, "inv-1").Return(&suite.invoice, nil).Once()
	var saved domain.GSTCreditNote
	suite.mockCreditNoteRepo.On("SaveCreditNote", ctx, mock.AnythingOfType("domain.GSTCreditNote")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.GSTCreditNote)
			saved.CreditNoteNumber = "CN2025-0001"
		}).Return(&saved, nil).Once()

	note, err := suite.service.IssueCreditNote(ctx, suite.request("10000", "500"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal("CN2025-0001", note.CreditNoteNumber)
	suite.Equal("inv-1", note.InvoiceID)
	suite.Equal("comp-1", note.CompanyID)
	suite.Equal(domain.RegimeCGSTSGST, note.RefundTax.Regime)
	suite.True(note.RefundTax.CGST.Equal(note.RefundTax.SGST))
	suite.True(note.RefundTax.CGST.Equal(dec("250")))
	suite.True(note.TotalRefund.Equal(dec("10500")))
	suite.Len(suite.audit.records, 1)
	suite.mockCreditNoteRepo.AssertExpectations(suite.T())
}

func (suite *CreditNoteServiceTestSuite) TestIssueCreditNote_PreservesIGSTRegime() {
	ctx := context.Background()
	igstInvoice := suite.invoice
	igstInvoice.Tax = domain.NewIGSTBreakup(dec("500"))

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, "inv-1").Return(&igstInvoice, nil).Once()
	var saved domain.GSTCreditNote
	suite.mockCreditNoteRepo.On("SaveCreditNote", ctx, mock.AnythingOfType("domain.GSTCreditNote")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.GSTCreditNote)
		}).Return(&saved, nil).Once()

	note, err := suite.service.IssueCreditNote(ctx, suite.request("4000", "200"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RegimeIGST, note.RefundTax.Regime)
	suite.True(note.RefundTax.IGST.Equal(dec("200")))
	suite.True(note.RefundTax.CGST.IsZero())
	suite.True(note.TotalRefund.Equal(dec("4200")))
}

func (suite *CreditNoteServiceTestSuite) TestIssueCreditNote_RejectsOverRefund() {
	ctx := context.Background()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, "inv-1").Return(&suite.invoice, nil).Twice()

	_, err := suite.service.IssueCreditNote(ctx, suite.request("10000.01", "500"), suite.userID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.IssueCreditNote(ctx, suite.request("10000", "500.01"), suite.userID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.mockCreditNoteRepo.AssertNotCalled(suite.T(), "SaveCreditNote", mock.Anything, mock.Anything)
}

func (suite *CreditNoteServiceTestSuite) TestIssueCreditNote_RejectsNegativeAndZeroRefunds() {
	ctx := context.Background()

	_, err := suite.service.IssueCreditNote(ctx, suite.request("-1", "0"), suite.userID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.IssueCreditNote(ctx, suite.request("0", "0"), suite.userID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *CreditNoteServiceTestSuite) TestIssueCreditNote_RejectsAlreadyRefundedParent() {
	ctx := context.Background()
	refunded := suite.invoice
	refunded.Status = domain.InvoiceRefunded

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, "inv-1").Return(&refunded, nil).Once()

	_, err := suite.service.IssueCreditNote(ctx, suite.request("1000", "50"), suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CreditNoteServiceTestSuite) TestIssueCreditNote_RejectsCancelledParent() {
	ctx := context.Background()
	cancelled := suite.invoice
	cancelled.Status = domain.InvoiceCancelled

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, "inv-1").Return(&cancelled, nil).Once()

	_, err := suite.service.IssueCreditNote(ctx, suite.request("1000", "50"), suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CreditNoteServiceTestSuite) TestGetCreditNoteByID_NotFound() {
	ctx := context.Background()
	suite.mockCreditNoteRepo.On("FindCreditNoteByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCreditNoteByID(ctx, "ghost")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestCreditNoteService(t *testing.T) {
	suite.Run(t, new(CreditNoteServiceTestSuite))
}
