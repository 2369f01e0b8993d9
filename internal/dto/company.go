package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

// CompanyResponse is the API shape of a company profile. Sequence counters are
// deliberately absent: they are owned by the sequence registry and not
// readable through the API.
type CompanyResponse struct {
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	GSTIN          string          `json:"gstin"`
	StateCode      string          `json:"stateCode"`
	TaxRegime      string          `json:"taxRegime"`
	DefaultGSTRate decimal.Decimal `json:"defaultGstRate"`
	IsActive       bool            `json:"isActive"`
}

// ToCompanyResponse converts a domain company profile to its API shape.
func ToCompanyResponse(c *domain.CompanyProfile) CompanyResponse {
	return CompanyResponse{
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		GSTIN:          c.GSTIN,
		StateCode:      c.StateCode,
		TaxRegime:      string(c.TaxRegime),
		DefaultGSTRate: c.DefaultGSTRate,
		IsActive:       c.IsActive,
	}
}

// ToCompanyResponses converts a slice of domain company profiles.
func ToCompanyResponses(cs []domain.CompanyProfile) []CompanyResponse {
	responses := make([]CompanyResponse, len(cs))
	for i := range cs {
		responses[i] = ToCompanyResponse(&cs[i])
	}
	return responses
}
