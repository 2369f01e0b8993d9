package services

import (
	"context"
	"time"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
)

type numberingService struct {
	BaseService
	sequences portsrepo.SequenceAllocator
	now       func() time.Time
}

// NumberingServiceOption configures the numbering service.
type NumberingServiceOption func(*numberingService)

// WithNumberingClock overrides the time source used for the year component.
func WithNumberingClock(now func() time.Time) NumberingServiceOption {
	return func(s *numberingService) { s.now = now }
}

// NewNumberingService creates the sequence-registry service. Each call advances
// the backing counter atomically; a grant that goes unused leaves a gap.
func NewNumberingService(sequences portsrepo.SequenceAllocator, opts ...NumberingServiceOption) portssvc.NumberingSvcFacade {
	s := &numberingService{sequences: sequences, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.NumberingSvcFacade = (*numberingService)(nil)

func (s *numberingService) next(ctx context.Context, companyID string, series domain.NumberSeries) (string, error) {
	grant, err := s.sequences.AllocateNext(ctx, nil, companyID, series)
	if err != nil {
		s.LogError(ctx, err, "failed to allocate document number",
			"company_id", companyID, "series", string(series))
		return "", err
	}
	return grant.Format(s.now().Year()), nil
}

func (s *numberingService) NextInvoiceNumber(ctx context.Context, companyID string) (string, error) {
	return s.next(ctx, companyID, domain.SeriesInvoice)
}

func (s *numberingService) NextReceiptNumber(ctx context.Context, companyID string) (string, error) {
	return s.next(ctx, companyID, domain.SeriesReceipt)
}

func (s *numberingService) NextCreditNoteNumber(ctx context.Context, companyID string) (string, error) {
	return s.next(ctx, companyID, domain.SeriesCreditNote)
}
