package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
)

func TestWriteZohoInvoicesCSV(t *testing.T) {
	rows := []InvoiceRow{{
		InvoiceNumber: "INV2025-0001",
		InvoiceDate:   time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Acme Tours",
		BookingRef:    "TB-2025-0101",
		TaxableAmount: d("11428.57"),
		TaxName:       "CGST+SGST",
		TaxPercent:    d("5"),
		TaxAmount:     d("571.43"),
		Total:         d("12000"),
		Status:        "ACTIVE",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteZohoInvoicesCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"Invoice Number", "Invoice Date", "Customer Name", "Booking Reference",
		"Taxable Amount", "Tax Name", "Tax Percentage", "Tax Amount", "Total", "Status",
	}, records[0])
	assert.Equal(t, []string{
		"INV2025-0001", "2025-06-05", "Acme Tours", "TB-2025-0101",
		"11428.57", "CGST+SGST", "5", "571.43", "12000.00", "ACTIVE",
	}, records[1])
}

func TestWriteZohoInvoicesCSV_Malformed(t *testing.T) {
	var buf bytes.Buffer
	err := WriteZohoInvoicesCSV(&buf, []InvoiceRow{{CustomerName: "Acme Tours"}})

	require.ErrorIs(t, err, apperrors.ErrMalformedRecord)
	assert.Zero(t, buf.Len())
}

func TestWriteZohoPaymentsCSV(t *testing.T) {
	rows := []PaymentRow{{
		ReceiptNumber: "RCPT2025-0001",
		PaymentDate:   time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		AgentName:     "Acme Tours",
		BookingRef:    "TB-2025-0101",
		Mode:          "BANK_TRANSFER",
		Amount:        d("5250"),
		Reference:     "UTR-123",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteZohoPaymentsCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "RCPT2025-0001", records[1][0])
	assert.Equal(t, "5250.00", records[1][5])
}

func TestWriteZohoPaymentsCSV_RejectsNonPositiveAmount(t *testing.T) {
	rows := []PaymentRow{{
		ReceiptNumber: "RCPT2025-0001",
		PaymentDate:   time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		AgentName:     "Acme Tours",
		Amount:        decimal.Zero,
	}}

	var buf bytes.Buffer
	err := WriteZohoPaymentsCSV(&buf, rows)

	require.ErrorIs(t, err, apperrors.ErrMalformedRecord)
	assert.Zero(t, buf.Len())
}

func TestWriteZohoCreditNotesCSV(t *testing.T) {
	rows := []CreditNoteRow{{
		CreditNoteNumber: "CN2025-0001",
		IssueDate:        time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		InvoiceNumber:    "INV2025-0001",
		CustomerName:     "Acme Tours",
		RefundTaxable:    d("10000"),
		TaxAmount:        d("500"),
		Total:            d("10500"),
		Reason:           "booking cancelled",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteZohoCreditNotesCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CN2025-0001", records[1][0])
	assert.Equal(t, "10500.00", records[1][6])

	var empty bytes.Buffer
	err = WriteZohoCreditNotesCSV(&empty, []CreditNoteRow{{CreditNoteNumber: "CN2025-0002"}})
	require.ErrorIs(t, err, apperrors.ErrMalformedRecord)
	assert.Zero(t, empty.Len())
}
