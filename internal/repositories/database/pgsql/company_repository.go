package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/tripbooks/gst_ledger_app/internal/models"
	"github.com/tripbooks/gst_ledger_app/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company profiles and
// their numbering sequences.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `
	company_id, name, gstin, state_code, tax_regime, default_gst_rate, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCompany(row pgx.Row) (models.CompanyProfile, error) {
	var m models.CompanyProfile
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.GSTIN,
		&m.StateCode,
		&m.TaxRegime,
		&m.DefaultGSTRate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCompanyByID retrieves a company profile by its identifier.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.CompanyProfile, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`

	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by id %s: %w", companyID, err)
	}

	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// FindDefaultCompany retrieves the default active company, used for bookings
// that carry no explicit company.
func (r *PgxCompanyRepository) FindDefaultCompany(ctx context.Context) (*domain.CompanyProfile, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE is_active = TRUE ORDER BY created_at LIMIT 1;`

	m, err := scanCompany(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no active company configured")
		}
		return nil, fmt.Errorf("failed to find default company: %w", err)
	}

	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// ListCompanies retrieves all company profiles.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.CompanyProfile, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.CompanyProfile{}
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}

	return companies, nil
}

// AllocateNext atomically advances the (companyID, series) counter and returns
// the freshly issued grant. The single UPDATE ... RETURNING makes concurrent
// allocations serialize on the row lock, so two callers can never see the same
// value. When tx is non-nil the allocation joins the caller's transaction and
// commits or rolls back with it.
func (r *PgxCompanyRepository) AllocateNext(ctx context.Context, tx pgx.Tx, companyID string, series domain.NumberSeries) (domain.SequenceGrant, error) {
	query := `
		UPDATE company_sequences
		SET last_value = last_value + 1
		WHERE company_id = $1 AND series = $2
		RETURNING prefix, last_value;
	`

	var row pgx.Row
	if tx != nil {
		row = tx.QueryRow(ctx, query, companyID, string(series))
	} else {
		row = r.Pool.QueryRow(ctx, query, companyID, string(series))
	}

	grant := domain.SequenceGrant{CompanyID: companyID, Series: series}
	if err := row.Scan(&grant.Prefix, &grant.Value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SequenceGrant{}, apperrors.NewNotFoundError(
				fmt.Sprintf("no %s sequence configured for company %s", series, companyID))
		}
		return domain.SequenceGrant{}, fmt.Errorf("failed to allocate next %s number for company %s: %w", series, companyID, err)
	}

	return grant, nil
}
