package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRegime identifies how GST on an invoice is split between components.
type TaxRegime string

const (
	RegimeCGSTSGST TaxRegime = "CGST_SGST" // intra-state: tax split equally into CGST and SGST
	RegimeIGST     TaxRegime = "IGST"      // inter-state: single IGST component
)

// NumberSeries identifies one of a company's independent document numbering series.
type NumberSeries string

const (
	SeriesInvoice    NumberSeries = "INVOICE"
	SeriesReceipt    NumberSeries = "RECEIPT"
	SeriesCreditNote NumberSeries = "CREDIT_NOTE"
)

// CompanyProfile represents one legal/billing entity. Created and maintained by the
// company-management workflow; this system only reads it and advances its
// numbering counters through the sequence registry.
type CompanyProfile struct {
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	GSTIN          string          `json:"gstin"`     // GST registration number
	StateCode      string          `json:"stateCode"` // two-digit GST state code
	TaxRegime      TaxRegime       `json:"taxRegime"`
	DefaultGSTRate decimal.Decimal `json:"defaultGstRate"` // percent, e.g. 5
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// SequenceGrant is one freshly allocated value from a company numbering series.
// The counter backing it is strictly increasing and never reused; a grant that
// ends up unused leaves a gap, never a duplicate.
type SequenceGrant struct {
	CompanyID string
	Series    NumberSeries
	Prefix    string
	Value     int64
}

// Format renders the grant as a document number: {prefix}{4-digit-year}-{4-digit-sequence}.
func (g SequenceGrant) Format(year int) string {
	return fmt.Sprintf("%s%d-%04d", g.Prefix, year, g.Value)
}
