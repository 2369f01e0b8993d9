package models

import "github.com/shopspring/decimal"

// CompanyProfile is the database shape of a billing entity.
type CompanyProfile struct {
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	GSTIN          string          `json:"gstin"`
	StateCode      string          `json:"stateCode"`
	TaxRegime      string          `json:"taxRegime"`
	DefaultGSTRate decimal.Decimal `json:"defaultGstRate"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CompanySequence is one row of the per-(company, series) counter table.
// LastValue is the most recently issued value; allocation advances it in a
// single UPDATE ... RETURNING.
type CompanySequence struct {
	CompanyID string `json:"companyID"`
	Series    string `json:"series"`
	Prefix    string `json:"prefix"`
	LastValue int64  `json:"lastValue"`
}
