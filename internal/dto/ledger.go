package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

// LedgerQuery selects the date window and optional company for ledger derivation.
// The window is inclusive of both dates at day granularity.
type LedgerQuery struct {
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	CompanyID *string   `form:"companyId"`
}

// LedgerEntryResponse is the API shape of a derived ledger row.
type LedgerEntryResponse struct {
	Date          time.Time       `json:"date"`
	VoucherType   string          `json:"voucherType"`
	VoucherNumber string          `json:"voucherNumber"`
	DebitLedger   string          `json:"debitLedger"`
	CreditLedger  string          `json:"creditLedger"`
	Amount        decimal.Decimal `json:"amount"`
	Narration     string          `json:"narration"`
	TaxComponent  string          `json:"taxComponent,omitempty"`
	TaxRate       decimal.Decimal `json:"taxRate,omitempty"`
}

// ToLedgerEntryResponses converts derived ledger rows to their API shape,
// rounding amounts to the paisa.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LedgerEntryResponse{
			Date:          e.Date,
			VoucherType:   string(e.VoucherType),
			VoucherNumber: e.VoucherNumber,
			DebitLedger:   e.DebitLedger,
			CreditLedger:  e.CreditLedger,
			Amount:        accounting.RoundPaisa(e.Amount),
			Narration:     e.Narration,
			TaxComponent:  string(e.TaxComponent),
			TaxRate:       e.TaxRate,
		}
	}
	return responses
}
