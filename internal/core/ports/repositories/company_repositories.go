package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// CompanyReader defines read operations for company profiles.
type CompanyReader interface {
	// FindCompanyByID retrieves a company profile by its identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.CompanyProfile, error)

	// FindDefaultCompany retrieves the system default active company, used for
	// bookings that carry no explicit company.
	FindDefaultCompany(ctx context.Context) (*domain.CompanyProfile, error)

	// ListCompanies retrieves all company profiles.
	ListCompanies(ctx context.Context) ([]domain.CompanyProfile, error)
}

// SequenceAllocator owns the per-(company, series) document number counters.
// Counters are strictly increasing and never reused; a failed caller leaves a
// gap, never a duplicate.
type SequenceAllocator interface {
	// AllocateNext atomically advances the counter for (companyID, series) and
	// returns the freshly issued grant. When tx is non-nil the allocation joins
	// that transaction, so the counter advance commits or rolls back together
	// with the record the number is stamped on.
	AllocateNext(ctx context.Context, tx pgx.Tx, companyID string, series domain.NumberSeries) (domain.SequenceGrant, error)
}

// CompanyRepositoryFacade combines company reads with sequence allocation.
type CompanyRepositoryFacade interface {
	CompanyReader
	SequenceAllocator
}
