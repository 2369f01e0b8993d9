package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

var validPaymentModes = map[domain.PaymentMode]bool{
	domain.ModeCash:    true,
	domain.ModeBank:    true,
	domain.ModeCard:    true,
	domain.ModeUPI:     true,
	domain.ModeCheque:  true,
	domain.ModeGateway: true,
}

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	bookingRepo portsrepo.BookingReader
	companyRepo portsrepo.CompanyReader
	audit       portssvc.AuditSvcFacade
	now         func() time.Time
}

// PaymentServiceOption configures the payment service.
type PaymentServiceOption func(*paymentService)

// WithPaymentClock overrides the time source.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) { s.now = now }
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	bookingRepo portsrepo.BookingReader,
	companyRepo portsrepo.CompanyReader,
	audit portssvc.AuditSvcFacade,
	opts ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	s := &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		companyRepo: companyRepo,
		audit:       audit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment appends an immutable payment entry to a booking's history.
// Non-refund payments get a receipt number from the company's RECEIPT series,
// allocated in the same transaction as the insert.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actorUserID string) (*domain.PaymentEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "payment amount must be positive", apperrors.ErrValidation)
	}
	mode := domain.PaymentMode(req.Mode)
	if !validPaymentModes[mode] {
		return nil, apperrors.NewAppError(400, "unknown payment mode "+req.Mode, apperrors.ErrValidation)
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", req.BookingID, err)
	}

	companyID := booking.CompanyID
	if companyID == "" {
		company, err := s.companyRepo.FindDefaultCompany(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve company for booking %s: %w", req.BookingID, err)
		}
		companyID = company.CompanyID
	}

	now := s.now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := domain.PaymentEntry{
		PaymentID:   uuid.NewString(),
		BookingID:   booking.BookingID,
		CompanyID:   companyID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Mode:        mode,
		Type:        domain.PaymentType(req.Type),
		Reference:   req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	saved, err := s.paymentRepo.SavePayment(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to save payment for booking %s: %w", req.BookingID, err)
	}

	s.audit.LogAction(ctx, domain.AuditRecord{
		EntityType:  "PAYMENT",
		EntityID:    saved.PaymentID,
		Action:      "RECORD",
		Description: "recorded " + req.Type + " payment of " + req.Amount.StringFixed(2) + " against booking " + booking.BookingRef,
		User:        actorUserID,
	})

	return saved, nil
}

// ListPaymentsByBooking retrieves a booking's payment history, oldest first.
func (s *paymentService) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.PaymentEntry, error) {
	payments, err := s.paymentRepo.ListPaymentsByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for booking %s: %w", bookingID, err)
	}
	if payments == nil {
		return []domain.PaymentEntry{}, nil
	}
	return payments, nil
}
