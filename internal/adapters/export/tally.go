// Package export serializes accounting data into the file formats external
// bookkeeping tools import: Tally XML vouchers and Zoho Books CSVs. All
// writers validate their whole input and render into memory before touching
// the destination, so a failed export never leaves a partial document.
package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

const tallyDateLayout = "20060102"

// VoucherLine is one ledger impact inside a voucher.
type VoucherLine struct {
	Ledger  string
	Amount  decimal.Decimal
	IsDebit bool
}

// Voucher is one Tally voucher: a typed, numbered document whose lines must
// balance (validated upstream by the ledger deriver).
type Voucher struct {
	Date        time.Time
	Type        string // "Sales", "Receipt", "Credit Note"
	Number      string
	PartyLedger string
	Narration   string
	Lines       []VoucherLine
}

type tallyEnvelope struct {
	XMLName xml.Name   `xml:"ENVELOPE"`
	Header  tallyHeader `xml:"HEADER"`
	Body    tallyBody   `xml:"BODY"`
}

type tallyHeader struct {
	TallyRequest string `xml:"TALLYREQUEST"`
}

type tallyBody struct {
	ImportData tallyImportData `xml:"IMPORTDATA"`
}

type tallyImportData struct {
	RequestData tallyRequestData `xml:"REQUESTDATA"`
}

type tallyRequestData struct {
	Messages []tallyMessage `xml:"TALLYMESSAGE"`
}

type tallyMessage struct {
	Voucher tallyVoucher `xml:"VOUCHER"`
}

type tallyVoucher struct {
	VchType         string             `xml:"VCHTYPE,attr"`
	Action          string             `xml:"ACTION,attr"`
	Date            string             `xml:"DATE"`
	VoucherTypeName string             `xml:"VOUCHERTYPENAME"`
	VoucherNumber   string             `xml:"VOUCHERNUMBER"`
	PartyLedgerName string             `xml:"PARTYLEDGERNAME"`
	Narration       string             `xml:"NARRATION"`
	LedgerEntries   []tallyLedgerEntry `xml:"ALLLEDGERENTRIES.LIST"`
}

type tallyLedgerEntry struct {
	LedgerName       string `xml:"LEDGERNAME"`
	IsDeemedPositive string `xml:"ISDEEMEDPOSITIVE"`
	Amount           string `xml:"AMOUNT"`
}

func malformed(format string, args ...any) error {
	return apperrors.NewAppError(422, fmt.Sprintf(format, args...), apperrors.ErrMalformedRecord)
}

func validateVoucher(v Voucher) error {
	if v.Number == "" {
		return malformed("voucher without a number")
	}
	if v.Date.IsZero() {
		return malformed("voucher %s has no date", v.Number)
	}
	if v.Type == "" || v.PartyLedger == "" {
		return malformed("voucher %s is missing its type or party ledger", v.Number)
	}
	if len(v.Lines) == 0 {
		return malformed("voucher %s has no ledger lines", v.Number)
	}
	for _, line := range v.Lines {
		if line.Ledger == "" {
			return malformed("voucher %s has a line without a ledger name", v.Number)
		}
		if !line.Amount.IsPositive() {
			return malformed("voucher %s has a non-positive amount on ledger %s", v.Number, line.Ledger)
		}
	}
	return nil
}

// WriteTallyXML renders vouchers as a Tally "Import Data" envelope. Debit
// lines follow Tally's convention of negative, deemed-positive amounts.
func WriteTallyXML(w io.Writer, vouchers []Voucher) error {
	messages := make([]tallyMessage, 0, len(vouchers))
	for _, v := range vouchers {
		if err := validateVoucher(v); err != nil {
			return err
		}

		lines := make([]tallyLedgerEntry, 0, len(v.Lines))
		for _, line := range v.Lines {
			amount := accounting.RoundPaisa(line.Amount)
			entry := tallyLedgerEntry{
				LedgerName:       line.Ledger,
				IsDeemedPositive: "No",
				Amount:           amount.StringFixed(2),
			}
			if line.IsDebit {
				entry.IsDeemedPositive = "Yes"
				entry.Amount = amount.Neg().StringFixed(2)
			}
			lines = append(lines, entry)
		}

		messages = append(messages, tallyMessage{Voucher: tallyVoucher{
			VchType:         v.Type,
			Action:          "Create",
			Date:            v.Date.Format(tallyDateLayout),
			VoucherTypeName: v.Type,
			VoucherNumber:   v.Number,
			PartyLedgerName: v.PartyLedger,
			Narration:       v.Narration,
			LedgerEntries:   lines,
		}})
	}

	envelope := tallyEnvelope{
		Header: tallyHeader{TallyRequest: "Import Data"},
		Body:   tallyBody{ImportData: tallyImportData{RequestData: tallyRequestData{Messages: messages}}},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return fmt.Errorf("failed to encode tally envelope: %w", err)
	}
	buf.WriteByte('\n')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write tally export: %w", err)
	}
	return nil
}
