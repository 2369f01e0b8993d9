package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies the accounting document a ledger row belongs to.
type VoucherType string

const (
	VoucherSales      VoucherType = "SALES"
	VoucherReceipt    VoucherType = "RECEIPT"
	VoucherCreditNote VoucherType = "CREDIT_NOTE"
)

// TaxComponent tags ledger rows that carry a tax impact.
type TaxComponent string

const (
	ComponentCGST TaxComponent = "CGST"
	ComponentSGST TaxComponent = "SGST"
	ComponentIGST TaxComponent = "IGST"
)

// Well-known ledger names used by the deriver. Receivable ledgers are
// per-party: "Agent Receivable - {name}".
const (
	LedgerSales       = "Sales Account"
	LedgerSalesReturn = "Sales Return"
	LedgerOutputCGST  = "Output CGST"
	LedgerOutputSGST  = "Output SGST"
	LedgerOutputIGST  = "Output IGST"
	LedgerCash        = "Cash Account"
	LedgerBank        = "Bank Account"
)

// LedgerEntry is one elementary debit/credit impact derived from an invoice,
// payment or credit note. Entries are regenerated on demand and never stored.
// Several entries sharing a voucher number together form one voucher.
type LedgerEntry struct {
	Date          time.Time       `json:"date"`
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherNumber string          `json:"voucherNumber"`
	DebitLedger   string          `json:"debitLedger"`
	CreditLedger  string          `json:"creditLedger"`
	Amount        decimal.Decimal `json:"amount"`
	Narration     string          `json:"narration"`
	TaxComponent  TaxComponent    `json:"taxComponent,omitempty"`
	TaxRate       decimal.Decimal `json:"taxRate,omitempty"` // percent, zero for non-tax rows
}
