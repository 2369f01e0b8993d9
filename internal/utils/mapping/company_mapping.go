package mapping

import (
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/models"
)

// ToDomainCompany converts a model CompanyProfile to a domain CompanyProfile.
func ToDomainCompany(m models.CompanyProfile) domain.CompanyProfile {
	return domain.CompanyProfile{
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		GSTIN:          m.GSTIN,
		StateCode:      m.StateCode,
		TaxRegime:      domain.TaxRegime(m.TaxRegime),
		DefaultGSTRate: m.DefaultGSTRate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
