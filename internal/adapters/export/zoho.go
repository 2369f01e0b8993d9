package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

const zohoDateLayout = "2006-01-02"

// InvoiceRow is one line of the Zoho Books invoice import.
type InvoiceRow struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	CustomerName  string
	BookingRef    string
	TaxableAmount decimal.Decimal
	TaxName       string // "CGST+SGST" or "IGST"
	TaxPercent    decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Status        string
}

// PaymentRow is one line of the Zoho Books payment import.
type PaymentRow struct {
	ReceiptNumber string
	PaymentDate   time.Time
	AgentName     string
	BookingRef    string
	Mode          string
	Amount        decimal.Decimal
	Reference     string
}

// CreditNoteRow is one line of the Zoho Books credit-note import.
type CreditNoteRow struct {
	CreditNoteNumber string
	IssueDate        time.Time
	InvoiceNumber    string
	CustomerName     string
	RefundTaxable    decimal.Decimal
	TaxAmount        decimal.Decimal
	Total            decimal.Decimal
	Reason           string
}

var (
	zohoInvoiceHeader = []string{
		"Invoice Number", "Invoice Date", "Customer Name", "Booking Reference",
		"Taxable Amount", "Tax Name", "Tax Percentage", "Tax Amount", "Total", "Status",
	}
	zohoPaymentHeader = []string{
		"Receipt Number", "Payment Date", "Agent Name", "Booking Reference",
		"Mode", "Amount", "Reference",
	}
	zohoCreditNoteHeader = []string{
		"Credit Note Number", "Issue Date", "Invoice Number", "Customer Name",
		"Refund Taxable", "Tax Amount", "Total", "Reason",
	}
)

func money(d decimal.Decimal) string {
	return accounting.RoundPaisa(d).StringFixed(2)
}

// writeCSV renders the header plus rows into memory, then writes the whole
// document in one go.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write csv export: %w", err)
	}
	return nil
}

// WriteZohoInvoicesCSV renders the invoices CSV.
func WriteZohoInvoicesCSV(w io.Writer, rows []InvoiceRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r.InvoiceNumber == "" || r.CustomerName == "" {
			return malformed("invoice row missing number or customer name")
		}
		if r.InvoiceDate.IsZero() {
			return malformed("invoice %s has no date", r.InvoiceNumber)
		}
		if !r.Total.IsPositive() {
			return malformed("invoice %s has a non-positive total", r.InvoiceNumber)
		}
		records = append(records, []string{
			r.InvoiceNumber,
			r.InvoiceDate.Format(zohoDateLayout),
			r.CustomerName,
			r.BookingRef,
			money(r.TaxableAmount),
			r.TaxName,
			r.TaxPercent.String(),
			money(r.TaxAmount),
			money(r.Total),
			r.Status,
		})
	}
	return writeCSV(w, zohoInvoiceHeader, records)
}

// WriteZohoPaymentsCSV renders the payments CSV.
func WriteZohoPaymentsCSV(w io.Writer, rows []PaymentRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r.ReceiptNumber == "" || r.AgentName == "" {
			return malformed("payment row missing receipt number or agent name")
		}
		if r.PaymentDate.IsZero() {
			return malformed("payment %s has no date", r.ReceiptNumber)
		}
		if !r.Amount.IsPositive() {
			return malformed("payment %s has a non-positive amount", r.ReceiptNumber)
		}
		records = append(records, []string{
			r.ReceiptNumber,
			r.PaymentDate.Format(zohoDateLayout),
			r.AgentName,
			r.BookingRef,
			r.Mode,
			money(r.Amount),
			r.Reference,
		})
	}
	return writeCSV(w, zohoPaymentHeader, records)
}

// WriteZohoCreditNotesCSV renders the credit notes CSV.
func WriteZohoCreditNotesCSV(w io.Writer, rows []CreditNoteRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r.CreditNoteNumber == "" || r.InvoiceNumber == "" || r.CustomerName == "" {
			return malformed("credit note row missing number, invoice number or customer name")
		}
		if r.IssueDate.IsZero() {
			return malformed("credit note %s has no date", r.CreditNoteNumber)
		}
		if !r.Total.IsPositive() {
			return malformed("credit note %s has a non-positive total", r.CreditNoteNumber)
		}
		records = append(records, []string{
			r.CreditNoteNumber,
			r.IssueDate.Format(zohoDateLayout),
			r.InvoiceNumber,
			r.CustomerName,
			money(r.RefundTaxable),
			money(r.TaxAmount),
			money(r.Total),
			r.Reason,
		})
	}
	return writeCSV(w, zohoCreditNoteHeader, records)
}
