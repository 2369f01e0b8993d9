package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
)

// PLSvcFacade computes profit-and-loss reports over invoiced bookings.
type PLSvcFacade interface {
	GenerateReport(ctx context.Context, query dto.PLQuery) (*domain.PLReport, error)
}
