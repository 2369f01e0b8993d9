package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	bookingRepo portsrepo.BookingReader
	companyRepo portsrepo.CompanyReader
	paymentRepo portsrepo.PaymentReader
	audit       portssvc.AuditSvcFacade
	now         func() time.Time
}

// InvoiceServiceOption configures the invoice service.
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceClock overrides the time source.
func WithInvoiceClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) { s.now = now }
}

// NewInvoiceService creates the invoice lifecycle service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	bookingRepo portsrepo.BookingReader,
	companyRepo portsrepo.CompanyReader,
	paymentRepo portsrepo.PaymentReader,
	audit portssvc.AuditSvcFacade,
	opts ...InvoiceServiceOption,
) portssvc.InvoiceSvcFacade {
	s := &invoiceService{
		invoiceRepo: invoiceRepo,
		bookingRepo: bookingRepo,
		companyRepo: companyRepo,
		paymentRepo: paymentRepo,
		audit:       audit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// resolveCompany returns the booking's company, or the default active company
// for bookings that carry none.
func (s *invoiceService) resolveCompany(ctx context.Context, booking *domain.Booking) (*domain.CompanyProfile, error) {
	if booking.CompanyID != "" {
		return s.companyRepo.FindCompanyByID(ctx, booking.CompanyID)
	}
	return s.companyRepo.FindDefaultCompany(ctx)
}

// GenerateInvoice creates the tax invoice for a booking, or reports the
// existing one. The selling price is tax-inclusive: the taxable value and GST
// are carved out of it and split per the company's regime. Number allocation
// and the insert share one transaction, so a failed insert never burns a
// visible number.
func (s *invoiceService) GenerateInvoice(ctx context.Context, bookingID string, actorUserID string) (*dto.InvoiceGenerationResult, error) {
	existing, err := s.invoiceRepo.FindInvoiceByBookingID(ctx, bookingID)
	if err == nil {
		s.LogInfo(ctx, "invoice already exists for booking",
			"booking_id", bookingID, "invoice_id", existing.InvoiceID)
		return &dto.InvoiceGenerationResult{Created: false, Invoice: *existing}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing invoice for booking %s: %w", bookingID, err)
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}
	if !booking.SellingPrice.IsPositive() {
		return nil, apperrors.NewAppError(400, "booking has no positive selling price", apperrors.ErrValidation)
	}

	company, err := s.resolveCompany(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company for booking %s: %w", bookingID, err)
	}

	taxable, gst := accounting.SplitGross(booking.SellingPrice, company.DefaultGSTRate)
	breakup, err := accounting.BreakupFor(company.TaxRegime, gst)
	if err != nil {
		return nil, apperrors.NewAppError(500, "company "+company.CompanyID+" carries an unknown tax regime", apperrors.ErrInternal)
	}

	now := s.now()
	invoice := domain.GSTInvoice{
		InvoiceID:     uuid.NewString(),
		InvoiceDate:   now,
		BookingID:     booking.BookingID,
		BookingRef:    booking.BookingRef,
		CompanyID:     company.CompanyID,
		CustomerName:  booking.CustomerName,
		TaxableAmount: taxable,
		GSTRate:       company.DefaultGSTRate,
		Tax:           breakup,
		TotalTax:      gst,
		TotalAmount:   booking.SellingPrice,
		Status:        domain.InvoiceActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	saved, err := s.invoiceRepo.SaveInvoice(ctx, invoice)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race to a concurrent generation; the winner's invoice
			// is the idempotent result.
			winner, findErr := s.invoiceRepo.FindInvoiceByBookingID(ctx, bookingID)
			if findErr != nil {
				return nil, fmt.Errorf("failed to load concurrently created invoice for booking %s: %w", bookingID, findErr)
			}
			return &dto.InvoiceGenerationResult{Created: false, Invoice: *winner}, nil
		}
		return nil, fmt.Errorf("failed to save invoice for booking %s: %w", bookingID, err)
	}

	s.audit.LogAction(ctx, domain.AuditRecord{
		EntityType:  "INVOICE",
		EntityID:    saved.InvoiceID,
		Action:      "GENERATE",
		Description: "generated invoice " + saved.InvoiceNumber + " for booking " + booking.BookingRef,
		User:        actorUserID,
	})
	s.LogInfo(ctx, "generated invoice",
		"invoice_id", saved.InvoiceID, "invoice_number", saved.InvoiceNumber, "booking_id", bookingID)

	return &dto.InvoiceGenerationResult{Created: true, Invoice: *saved}, nil
}

// VoidInvoice cancels an ACTIVE invoice that has no payments against its booking.
func (s *invoiceService) VoidInvoice(ctx context.Context, invoiceID string, actorUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status != domain.InvoiceActive {
		return apperrors.NewAppError(409, "invoice "+invoiceID+" is not active", apperrors.ErrConflict)
	}

	payments, err := s.paymentRepo.ListPaymentsByBookingID(ctx, invoice.BookingID)
	if err != nil {
		return fmt.Errorf("failed to list payments for booking %s: %w", invoice.BookingID, err)
	}
	for _, p := range payments {
		if p.Type != domain.PaymentRefund {
			return apperrors.NewAppError(409, "invoice "+invoiceID+" has payments against its booking", apperrors.ErrConflict)
		}
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, domain.InvoiceCancelled, nil, actorUserID, s.now()); err != nil {
		return fmt.Errorf("failed to cancel invoice %s: %w", invoiceID, err)
	}

	s.audit.LogAction(ctx, domain.AuditRecord{
		EntityType:  "INVOICE",
		EntityID:    invoiceID,
		Action:      "VOID",
		Description: "cancelled invoice " + invoice.InvoiceNumber,
		User:        actorUserID,
	})
	return nil
}

// GetInvoiceByID retrieves a single invoice.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.GSTInvoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves invoices for an inclusive date window.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.GSTInvoice, error) {
	if params.To.Before(params.From) {
		return nil, apperrors.NewAppError(400, "window end precedes start", apperrors.ErrValidation)
	}
	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, params.From, params.To.AddDate(0, 0, 1), params.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.GSTInvoice{}, nil
	}
	return invoices, nil
}
