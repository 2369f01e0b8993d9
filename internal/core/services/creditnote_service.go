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
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

type creditNoteService struct {
	BaseService
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade
	invoiceRepo    portsrepo.InvoiceReader
	audit          portssvc.AuditSvcFacade
	now            func() time.Time
}

// CreditNoteServiceOption configures the credit-note service.
type CreditNoteServiceOption func(*creditNoteService)

// WithCreditNoteClock overrides the time source.
func WithCreditNoteClock(now func() time.Time) CreditNoteServiceOption {
	return func(s *creditNoteService) { s.now = now }
}

// NewCreditNoteService creates the credit-note service.
func NewCreditNoteService(
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade,
	invoiceRepo portsrepo.InvoiceReader,
	audit portssvc.AuditSvcFacade,
	opts ...CreditNoteServiceOption,
) portssvc.CreditNoteSvcFacade {
	s := &creditNoteService{
		creditNoteRepo: creditNoteRepo,
		invoiceRepo:    invoiceRepo,
		audit:          audit,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CreditNoteSvcFacade = (*creditNoteService)(nil)

// IssueCreditNote reverses an invoice partially or fully. The refund tax is
// apportioned in the parent invoice's regime, never re-derived from company
// state, so the reversal can never cross regimes. Refunds above the parent's
// taxable or tax amounts are rejected rather than capped.
func (s *creditNoteService) IssueCreditNote(ctx context.Context, req dto.IssueCreditNoteRequest, actorUserID string) (*domain.GSTCreditNote, error) {
	if req.RefundTaxable.IsNegative() || req.RefundTax.IsNegative() {
		return nil, apperrors.NewAppError(400, "refund amounts must not be negative", apperrors.ErrValidation)
	}
	if !req.RefundTaxable.Add(req.RefundTax).IsPositive() {
		return nil, apperrors.NewAppError(400, "refund must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", req.InvoiceID, err)
	}
	switch invoice.Status {
	case domain.InvoiceActive:
		// proceed
	case domain.InvoiceRefunded:
		return nil, apperrors.NewAppError(409, "invoice "+req.InvoiceID+" already has a credit note", apperrors.ErrConflict)
	default:
		return nil, apperrors.NewAppError(409, "invoice "+req.InvoiceID+" is cancelled", apperrors.ErrConflict)
	}

	if req.RefundTaxable.GreaterThan(invoice.TaxableAmount) {
		return nil, apperrors.NewAppError(400, "refund taxable exceeds invoice taxable amount", apperrors.ErrValidation)
	}
	if req.RefundTax.GreaterThan(invoice.TotalTax) {
		return nil, apperrors.NewAppError(400, "refund tax exceeds invoice tax", apperrors.ErrValidation)
	}

	refundBreakup, err := accounting.BreakupFor(invoice.Tax.Regime, req.RefundTax)
	if err != nil {
		return nil, apperrors.NewAppError(422, "cannot apportion refund tax for invoice "+req.InvoiceID, apperrors.ErrRegimeMismatch)
	}

	now := s.now()
	note := domain.GSTCreditNote{
		CreditNoteID:  uuid.NewString(),
		IssueDate:     now,
		InvoiceID:     invoice.InvoiceID,
		CompanyID:     invoice.CompanyID,
		RefundTaxable: req.RefundTaxable,
		RefundTax:     refundBreakup,
		TotalRefund:   req.RefundTaxable.Add(req.RefundTax),
		Reason:        req.Reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	saved, err := s.creditNoteRepo.SaveCreditNote(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to save credit note for invoice %s: %w", req.InvoiceID, err)
	}

	s.audit.LogAction(ctx, domain.AuditRecord{
		EntityType:  "CREDIT_NOTE",
		EntityID:    saved.CreditNoteID,
		Action:      "ISSUE",
		Description: "issued credit note " + saved.CreditNoteNumber + " against invoice " + invoice.InvoiceNumber,
		User:        actorUserID,
	})
	s.LogInfo(ctx, "issued credit note",
		"credit_note_id", saved.CreditNoteID, "credit_note_number", saved.CreditNoteNumber,
		"invoice_id", invoice.InvoiceID)

	return saved, nil
}

// GetCreditNoteByID retrieves a single credit note.
func (s *creditNoteService) GetCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.GSTCreditNote, error) {
	note, err := s.creditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit note %s: %w", creditNoteID, err)
	}
	return note, nil
}
