package services

import (
	"context"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// CompanySvcFacade exposes the read surface over company profiles. Company
// management itself lives in an external workflow.
type CompanySvcFacade interface {
	GetCompanyByID(ctx context.Context, companyID string) (*domain.CompanyProfile, error)
	ListCompanies(ctx context.Context) ([]domain.CompanyProfile, error)
}
