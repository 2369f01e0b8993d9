package services

import (
	"context"
	"fmt"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyReader
}

// NewCompanyService creates the read-only company service.
func NewCompanyService(companyRepo portsrepo.CompanyReader) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.CompanyProfile, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.CompanyProfile, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if companies == nil {
		return []domain.CompanyProfile{}, nil
	}
	return companies, nil
}
