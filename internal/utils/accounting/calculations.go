package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// RoundPaisa rounds a money amount to two decimal places (nearest paisa).
func RoundPaisa(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SplitGross derives the taxable value and total GST from a tax-inclusive gross
// selling price:
//
//	taxable = round2(gross / (1 + rate/100))
//	totalGst = gross - taxable
//
// Because taxable is rounded to the paisa and gst is the exact remainder,
// taxable + totalGst always reconciles to gross.
func SplitGross(gross, ratePercent decimal.Decimal) (taxable, totalGst decimal.Decimal) {
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	taxable = RoundPaisa(gross.Div(divisor))
	totalGst = gross.Sub(taxable)
	return taxable, totalGst
}

// BreakupFor apportions a total tax amount according to a company's regime.
func BreakupFor(regime domain.TaxRegime, totalTax decimal.Decimal) (domain.TaxBreakup, error) {
	switch regime {
	case domain.RegimeCGSTSGST:
		return domain.NewSplitBreakup(totalTax), nil
	case domain.RegimeIGST:
		return domain.NewIGSTBreakup(totalTax), nil
	default:
		return domain.TaxBreakup{}, fmt.Errorf("unknown tax regime %q", regime)
	}
}

// CheckVoucherBalance verifies that for every voucher number the sum of amounts
// on debit-tagged rows equals the sum on credit-tagged rows. Each ledger entry
// carries both its debit and credit ledger, so a voucher can only go out of
// balance through a derivation bug; this is the assertion pass that turns such
// a bug into an error instead of an unbalanced export.
func CheckVoucherBalance(entries []domain.LedgerEntry) error {
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.DebitLedger != "" {
			debits[e.VoucherNumber] = debits[e.VoucherNumber].Add(e.Amount)
		}
		if e.CreditLedger != "" {
			credits[e.VoucherNumber] = credits[e.VoucherNumber].Add(e.Amount)
		}
	}
	for voucher, debit := range debits {
		if !debit.Equal(credits[voucher]) {
			return fmt.Errorf("voucher %s is unbalanced: debits %s, credits %s",
				voucher, debit.String(), credits[voucher].String())
		}
	}
	for voucher, credit := range credits {
		if _, ok := debits[voucher]; !ok && !credit.IsZero() {
			return fmt.Errorf("voucher %s is unbalanced: debits 0, credits %s", voucher, credit.String())
		}
	}
	return nil
}
