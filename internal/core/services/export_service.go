package services

import (
	"context"
	"fmt"
	"io"

	"github.com/tripbooks/gst_ledger_app/internal/adapters/export"
	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

type exportService struct {
	BaseService
	invoiceRepo    portsrepo.InvoiceReader
	paymentRepo    portsrepo.PaymentReader
	creditNoteRepo portsrepo.CreditNoteReader
	bookingRepo    portsrepo.BookingReader
}

// NewExportService creates the export service over the Tally/Zoho adapters.
func NewExportService(
	invoiceRepo portsrepo.InvoiceReader,
	paymentRepo portsrepo.PaymentReader,
	creditNoteRepo portsrepo.CreditNoteReader,
	bookingRepo portsrepo.BookingReader,
) portssvc.ExportSvcFacade {
	return &exportService{
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		creditNoteRepo: creditNoteRepo,
		bookingRepo:    bookingRepo,
	}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

func validateWindow(query dto.ExportQuery) error {
	if query.To.Before(query.From) {
		return apperrors.NewAppError(400, "window end precedes start", apperrors.ErrValidation)
	}
	return nil
}

func (s *exportService) listInvoices(ctx context.Context, query dto.ExportQuery) ([]domain.GSTInvoice, error) {
	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, query.From, query.To.AddDate(0, 0, 1), query.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for export: %w", err)
	}
	active := invoices[:0]
	for _, inv := range invoices {
		if inv.Status != domain.InvoiceCancelled {
			active = append(active, inv)
		}
	}
	return active, nil
}

// listReceiptPayments returns non-refund payments in the window along with
// their bookings. Payments whose booking is missing are skipped with a
// data-integrity warning.
func (s *exportService) listReceiptPayments(ctx context.Context, query dto.ExportQuery) ([]domain.PaymentEntry, map[string]domain.Booking, error) {
	payments, err := s.paymentRepo.ListPaymentsByDateRange(ctx, query.From, query.To.AddDate(0, 0, 1), query.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments for export: %w", err)
	}

	receipts := payments[:0]
	bookingIDs := make([]string, 0, len(payments))
	seen := make(map[string]bool, len(payments))
	for _, p := range payments {
		if p.Type == domain.PaymentRefund {
			continue
		}
		receipts = append(receipts, p)
		if !seen[p.BookingID] {
			seen[p.BookingID] = true
			bookingIDs = append(bookingIDs, p.BookingID)
		}
	}

	bookings, err := s.bookingRepo.FindBookingsByIDs(ctx, bookingIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bookings for export: %w", err)
	}

	kept := receipts[:0]
	for _, p := range receipts {
		if _, ok := bookings[p.BookingID]; !ok {
			s.LogWarn(ctx, "skipping payment with missing booking",
				"payment_id", p.PaymentID, "booking_id", p.BookingID)
			continue
		}
		kept = append(kept, p)
	}
	return kept, bookings, nil
}

// listCreditNotes returns credit notes in the window along with their parent
// invoices (which may predate the window). Notes without a parent are skipped
// with a data-integrity warning.
func (s *exportService) listCreditNotes(ctx context.Context, query dto.ExportQuery) ([]domain.GSTCreditNote, map[string]domain.GSTInvoice, error) {
	notes, err := s.creditNoteRepo.ListCreditNotesByDateRange(ctx, query.From, query.To.AddDate(0, 0, 1), query.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list credit notes for export: %w", err)
	}

	parents := make(map[string]domain.GSTInvoice, len(notes))
	kept := notes[:0]
	for _, note := range notes {
		parent, err := s.invoiceRepo.FindInvoiceByID(ctx, note.InvoiceID)
		if err != nil {
			s.LogWarn(ctx, "skipping credit note with missing parent invoice",
				"credit_note_id", note.CreditNoteID, "invoice_id", note.InvoiceID)
			continue
		}
		parents[note.InvoiceID] = *parent
		kept = append(kept, note)
	}
	return kept, parents, nil
}

// taxLines expands a tax breakup into voucher lines against the output tax
// ledgers. isDebit selects reversal (true) vs accrual (false).
//
// The split breakup carries CGST and SGST at half-paisa precision. Tally line
// amounts are paisa-rounded, so the two components are reconciled here: CGST
// rounds, SGST takes the exact remainder. Rounding both independently would
// overstate the voucher by a paisa whenever the half splits on a half-paisa.
func taxLines(breakup domain.TaxBreakup, isDebit bool) []export.VoucherLine {
	var lines []export.VoucherLine
	if breakup.CGST.IsPositive() {
		cgst := accounting.RoundPaisa(breakup.CGST)
		sgst := breakup.Total().Sub(cgst)
		lines = append(lines,
			export.VoucherLine{Ledger: domain.LedgerOutputCGST, Amount: cgst, IsDebit: isDebit},
			export.VoucherLine{Ledger: domain.LedgerOutputSGST, Amount: sgst, IsDebit: isDebit},
		)
	}
	if breakup.IGST.IsPositive() {
		lines = append(lines, export.VoucherLine{Ledger: domain.LedgerOutputIGST, Amount: breakup.IGST, IsDebit: isDebit})
	}
	return lines
}

// ExportTallyVouchers writes the Tally XML voucher envelope for the window:
// one sales voucher per invoice, one receipt voucher per non-refund payment,
// one credit-note voucher per credit note.
func (s *exportService) ExportTallyVouchers(ctx context.Context, query dto.ExportQuery, w io.Writer) error {
	if err := validateWindow(query); err != nil {
		return err
	}

	invoices, err := s.listInvoices(ctx, query)
	if err != nil {
		return err
	}
	payments, paymentBookings, err := s.listReceiptPayments(ctx, query)
	if err != nil {
		return err
	}
	notes, parents, err := s.listCreditNotes(ctx, query)
	if err != nil {
		return err
	}

	vouchers := make([]export.Voucher, 0, len(invoices)+len(payments)+len(notes))

	for _, inv := range invoices {
		party := "Agent Receivable - " + inv.CustomerName
		lines := []export.VoucherLine{
			{Ledger: party, Amount: inv.TotalAmount, IsDebit: true},
			{Ledger: domain.LedgerSales, Amount: inv.TaxableAmount},
		}
		lines = append(lines, taxLines(inv.Tax, false)...)
		vouchers = append(vouchers, export.Voucher{
			Date:        inv.InvoiceDate,
			Type:        "Sales",
			Number:      inv.InvoiceNumber,
			PartyLedger: party,
			Narration:   "Sales against booking " + inv.BookingRef,
			Lines:       lines,
		})
	}

	for _, p := range payments {
		booking := paymentBookings[p.BookingID]
		party := "Agent Receivable - " + booking.AgentName
		debit := domain.LedgerBank
		if p.Mode == domain.ModeCash {
			debit = domain.LedgerCash
		}
		number := p.ReceiptNumber
		if number == "" {
			number = p.PaymentID
		}
		vouchers = append(vouchers, export.Voucher{
			Date:        p.PaymentDate,
			Type:        "Receipt",
			Number:      number,
			PartyLedger: party,
			Narration:   "Receipt against booking " + booking.BookingRef,
			Lines: []export.VoucherLine{
				{Ledger: debit, Amount: p.Amount, IsDebit: true},
				{Ledger: party, Amount: p.Amount},
			},
		})
	}

	for _, note := range notes {
		parent := parents[note.InvoiceID]
		if note.RefundTax.Regime != parent.Tax.Regime {
			return apperrors.NewAppError(500,
				"credit note "+note.CreditNoteID+" regime disagrees with invoice "+parent.InvoiceID,
				apperrors.ErrRegimeMismatch)
		}
		party := "Agent Receivable - " + parent.CustomerName
		var lines []export.VoucherLine
		if note.RefundTaxable.IsPositive() {
			lines = append(lines, export.VoucherLine{Ledger: domain.LedgerSalesReturn, Amount: note.RefundTaxable, IsDebit: true})
		}
		lines = append(lines, taxLines(note.RefundTax, true)...)
		lines = append(lines, export.VoucherLine{Ledger: party, Amount: note.TotalRefund})
		vouchers = append(vouchers, export.Voucher{
			Date:        note.IssueDate,
			Type:        "Credit Note",
			Number:      note.CreditNoteNumber,
			PartyLedger: party,
			Narration:   "Refund against invoice " + parent.InvoiceNumber,
			Lines:       lines,
		})
	}

	return export.WriteTallyXML(w, vouchers)
}

// ExportZohoInvoices writes the Zoho invoices CSV for the window.
func (s *exportService) ExportZohoInvoices(ctx context.Context, query dto.ExportQuery, w io.Writer) error {
	if err := validateWindow(query); err != nil {
		return err
	}
	invoices, err := s.listInvoices(ctx, query)
	if err != nil {
		return err
	}

	rows := make([]export.InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		taxName := "CGST+SGST"
		if inv.Tax.Regime == domain.RegimeIGST {
			taxName = "IGST"
		}
		rows = append(rows, export.InvoiceRow{
			InvoiceNumber: inv.InvoiceNumber,
			InvoiceDate:   inv.InvoiceDate,
			CustomerName:  inv.CustomerName,
			BookingRef:    inv.BookingRef,
			TaxableAmount: inv.TaxableAmount,
			TaxName:       taxName,
			TaxPercent:    inv.GSTRate,
			TaxAmount:     inv.TotalTax,
			Total:         inv.TotalAmount,
			Status:        string(inv.Status),
		})
	}
	return export.WriteZohoInvoicesCSV(w, rows)
}

// ExportZohoPayments writes the Zoho payments CSV for the window. Refund
// payments carry no receipt number and are not part of the receipt export.
func (s *exportService) ExportZohoPayments(ctx context.Context, query dto.ExportQuery, w io.Writer) error {
	if err := validateWindow(query); err != nil {
		return err
	}
	payments, bookings, err := s.listReceiptPayments(ctx, query)
	if err != nil {
		return err
	}

	rows := make([]export.PaymentRow, 0, len(payments))
	for _, p := range payments {
		booking := bookings[p.BookingID]
		number := p.ReceiptNumber
		if number == "" {
			number = p.PaymentID
		}
		rows = append(rows, export.PaymentRow{
			ReceiptNumber: number,
			PaymentDate:   p.PaymentDate,
			AgentName:     booking.AgentName,
			BookingRef:    booking.BookingRef,
			Mode:          string(p.Mode),
			Amount:        p.Amount,
			Reference:     p.Reference,
		})
	}
	return export.WriteZohoPaymentsCSV(w, rows)
}

// ExportZohoCreditNotes writes the Zoho credit notes CSV for the window.
func (s *exportService) ExportZohoCreditNotes(ctx context.Context, query dto.ExportQuery, w io.Writer) error {
	if err := validateWindow(query); err != nil {
		return err
	}
	notes, parents, err := s.listCreditNotes(ctx, query)
	if err != nil {
		return err
	}

	rows := make([]export.CreditNoteRow, 0, len(notes))
	for _, note := range notes {
		parent := parents[note.InvoiceID]
		rows = append(rows, export.CreditNoteRow{
			CreditNoteNumber: note.CreditNoteNumber,
			IssueDate:        note.IssueDate,
			InvoiceNumber:    parent.InvoiceNumber,
			CustomerName:     parent.CustomerName,
			RefundTaxable:    note.RefundTaxable,
			TaxAmount:        note.RefundTax.Total(),
			Total:            note.TotalRefund,
			Reason:           note.Reason,
		})
	}
	return export.WriteZohoCreditNotesCSV(w, rows)
}
