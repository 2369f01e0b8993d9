package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/utils/accounting"
)

// DefaultLedgerRowCap bounds how many rows a single derivation may produce.
const DefaultLedgerRowCap = 10000

var two = decimal.NewFromInt(2)

type ledgerService struct {
	BaseService
	invoiceRepo    portsrepo.InvoiceReader
	paymentRepo    portsrepo.PaymentReader
	creditNoteRepo portsrepo.CreditNoteReader
	bookingRepo    portsrepo.BookingReader
	rowCap         int
}

// NewLedgerService creates the ledger deriver. rowCap <= 0 selects the default cap.
func NewLedgerService(
	invoiceRepo portsrepo.InvoiceReader,
	paymentRepo portsrepo.PaymentReader,
	creditNoteRepo portsrepo.CreditNoteReader,
	bookingRepo portsrepo.BookingReader,
	rowCap int,
) portssvc.LedgerSvcFacade {
	if rowCap <= 0 {
		rowCap = DefaultLedgerRowCap
	}
	return &ledgerService{
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		creditNoteRepo: creditNoteRepo,
		bookingRepo:    bookingRepo,
		rowCap:         rowCap,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func receivableLedger(party string) string {
	return "Agent Receivable - " + party
}

// GenerateLedger derives double-entry rows for the inclusive window
// [query.From, query.To] in three passes: sales vouchers from invoices,
// receipt vouchers from payments, credit-note vouchers from credit notes.
// Rows are stably sorted by date and checked for per-voucher balance before
// being returned. Nothing is persisted; rerunning over unchanged data yields
// identical rows.
func (s *ledgerService) GenerateLedger(ctx context.Context, query dto.LedgerQuery) ([]domain.LedgerEntry, error) {
	if query.To.Before(query.From) {
		return nil, apperrors.NewAppError(400, "window end precedes start", apperrors.ErrValidation)
	}
	windowEnd := query.To.AddDate(0, 0, 1)

	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, query.From, windowEnd, query.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for ledger: %w", err)
	}
	payments, err := s.paymentRepo.ListPaymentsByDateRange(ctx, query.From, windowEnd, query.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for ledger: %w", err)
	}
	notes, err := s.creditNoteRepo.ListCreditNotesByDateRange(ctx, query.From, windowEnd, query.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit notes for ledger: %w", err)
	}

	// Worst case three rows per invoice/note and one per payment; refuse the
	// window before materializing anything.
	if (len(invoices)+len(notes))*3+len(payments) > s.rowCap {
		return nil, apperrors.NewAppError(400,
			fmt.Sprintf("window would produce more than %d ledger rows", s.rowCap),
			apperrors.ErrRangeTooLarge)
	}

	entries := make([]domain.LedgerEntry, 0, len(invoices)*3+len(payments)+len(notes)*3)

	invoicesByID := make(map[string]domain.GSTInvoice, len(invoices))
	for _, inv := range invoices {
		invoicesByID[inv.InvoiceID] = inv
	}

	entries = s.appendSalesRows(entries, invoices)

	entries, err = s.appendReceiptRows(ctx, entries, payments)
	if err != nil {
		return nil, err
	}

	entries, err = s.appendCreditNoteRows(ctx, entries, notes, invoicesByID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	if err := accounting.CheckVoucherBalance(entries); err != nil {
		return nil, apperrors.NewAppError(500, err.Error(), apperrors.ErrInternal)
	}
	return entries, nil
}

// appendSalesRows emits one taxable row plus component tax rows per
// non-cancelled invoice. Every row debits the party receivable, so each row
// balances on its own.
func (s *ledgerService) appendSalesRows(entries []domain.LedgerEntry, invoices []domain.GSTInvoice) []domain.LedgerEntry {
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceCancelled {
			continue
		}
		receivable := receivableLedger(inv.CustomerName)
		narration := "Sales against booking " + inv.BookingRef

		entries = append(entries, domain.LedgerEntry{
			Date:          inv.InvoiceDate,
			VoucherType:   domain.VoucherSales,
			VoucherNumber: inv.InvoiceNumber,
			DebitLedger:   receivable,
			CreditLedger:  domain.LedgerSales,
			Amount:        inv.TaxableAmount,
			Narration:     narration,
		})

		switch inv.Tax.Regime {
		case domain.RegimeIGST:
			if inv.Tax.IGST.IsPositive() {
				entries = append(entries, domain.LedgerEntry{
					Date:          inv.InvoiceDate,
					VoucherType:   domain.VoucherSales,
					VoucherNumber: inv.InvoiceNumber,
					DebitLedger:   receivable,
					CreditLedger:  domain.LedgerOutputIGST,
					Amount:        inv.Tax.IGST,
					Narration:     narration,
					TaxComponent:  domain.ComponentIGST,
					TaxRate:       inv.GSTRate,
				})
			}
		case domain.RegimeCGSTSGST:
			halfRate := inv.GSTRate.Div(two)
			if inv.Tax.CGST.IsPositive() {
				entries = append(entries,
					domain.LedgerEntry{
						Date:          inv.InvoiceDate,
						VoucherType:   domain.VoucherSales,
						VoucherNumber: inv.InvoiceNumber,
						DebitLedger:   receivable,
						CreditLedger:  domain.LedgerOutputCGST,
						Amount:        inv.Tax.CGST,
						Narration:     narration,
						TaxComponent:  domain.ComponentCGST,
						TaxRate:       halfRate,
					},
					domain.LedgerEntry{
						Date:          inv.InvoiceDate,
						VoucherType:   domain.VoucherSales,
						VoucherNumber: inv.InvoiceNumber,
						DebitLedger:   receivable,
						CreditLedger:  domain.LedgerOutputSGST,
						Amount:        inv.Tax.SGST,
						Narration:     narration,
						TaxComponent:  domain.ComponentSGST,
						TaxRate:       halfRate,
					},
				)
			}
		}
	}
	return entries
}

// appendReceiptRows emits one row per non-refund payment: cash or bank debit
// against the agent's receivable. Payments whose booking is gone are skipped
// with a data-integrity warning.
func (s *ledgerService) appendReceiptRows(ctx context.Context, entries []domain.LedgerEntry, payments []domain.PaymentEntry) ([]domain.LedgerEntry, error) {
	bookingIDs := make([]string, 0, len(payments))
	seen := make(map[string]bool, len(payments))
	for _, p := range payments {
		if p.Type == domain.PaymentRefund || seen[p.BookingID] {
			continue
		}
		seen[p.BookingID] = true
		bookingIDs = append(bookingIDs, p.BookingID)
	}
	bookings, err := s.bookingRepo.FindBookingsByIDs(ctx, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for receipt rows: %w", err)
	}

	for _, p := range payments {
		if p.Type == domain.PaymentRefund {
			continue
		}
		booking, ok := bookings[p.BookingID]
		if !ok {
			s.LogWarn(ctx, "skipping payment with missing booking",
				"payment_id", p.PaymentID, "booking_id", p.BookingID)
			continue
		}

		debit := domain.LedgerBank
		if p.Mode == domain.ModeCash {
			debit = domain.LedgerCash
		}
		voucherNumber := p.ReceiptNumber
		if voucherNumber == "" {
			voucherNumber = p.PaymentID
		}

		entries = append(entries, domain.LedgerEntry{
			Date:          p.PaymentDate,
			VoucherType:   domain.VoucherReceipt,
			VoucherNumber: voucherNumber,
			DebitLedger:   debit,
			CreditLedger:  receivableLedger(booking.AgentName),
			Amount:        p.Amount,
			Narration:     "Receipt against booking " + booking.BookingRef,
		})
	}
	return entries, nil
}

// appendCreditNoteRows emits a sales-return row plus tax-reversal rows per
// credit note. The reversal components follow the parent invoice's stored
// regime; a stored note whose regime disagrees with its parent aborts the
// derivation rather than emitting a cross-regime reversal.
func (s *ledgerService) appendCreditNoteRows(ctx context.Context, entries []domain.LedgerEntry, notes []domain.GSTCreditNote, invoicesByID map[string]domain.GSTInvoice) ([]domain.LedgerEntry, error) {
	for _, note := range notes {
		parent, ok := invoicesByID[note.InvoiceID]
		if !ok {
			// The parent invoice may predate the window.
			p, err := s.invoiceRepo.FindInvoiceByID(ctx, note.InvoiceID)
			if err != nil {
				s.LogWarn(ctx, "skipping credit note with missing parent invoice",
					"credit_note_id", note.CreditNoteID, "invoice_id", note.InvoiceID)
				continue
			}
			parent = *p
		}
		if note.RefundTax.Regime != parent.Tax.Regime {
			return nil, apperrors.NewAppError(500,
				"credit note "+note.CreditNoteID+" regime disagrees with invoice "+parent.InvoiceID,
				apperrors.ErrRegimeMismatch)
		}

		receivable := receivableLedger(parent.CustomerName)
		narration := "Refund against invoice " + parent.InvoiceNumber

		if note.RefundTaxable.IsPositive() {
			entries = append(entries, domain.LedgerEntry{
				Date:          note.IssueDate,
				VoucherType:   domain.VoucherCreditNote,
				VoucherNumber: note.CreditNoteNumber,
				DebitLedger:   domain.LedgerSalesReturn,
				CreditLedger:  receivable,
				Amount:        note.RefundTaxable,
				Narration:     narration,
			})
		}

		switch note.RefundTax.Regime {
		case domain.RegimeIGST:
			if note.RefundTax.IGST.IsPositive() {
				entries = append(entries, domain.LedgerEntry{
					Date:          note.IssueDate,
					VoucherType:   domain.VoucherCreditNote,
					VoucherNumber: note.CreditNoteNumber,
					DebitLedger:   domain.LedgerOutputIGST,
					CreditLedger:  receivable,
					Amount:        note.RefundTax.IGST,
					Narration:     narration,
					TaxComponent:  domain.ComponentIGST,
					TaxRate:       parent.GSTRate,
				})
			}
		case domain.RegimeCGSTSGST:
			halfRate := parent.GSTRate.Div(two)
			if note.RefundTax.CGST.IsPositive() {
				entries = append(entries,
					domain.LedgerEntry{
						Date:          note.IssueDate,
						VoucherType:   domain.VoucherCreditNote,
						VoucherNumber: note.CreditNoteNumber,
						DebitLedger:   domain.LedgerOutputCGST,
						CreditLedger:  receivable,
						Amount:        note.RefundTax.CGST,
						Narration:     narration,
						TaxComponent:  domain.ComponentCGST,
						TaxRate:       halfRate,
					},
					domain.LedgerEntry{
						Date:          note.IssueDate,
						VoucherType:   domain.VoucherCreditNote,
						VoucherNumber: note.CreditNoteNumber,
						DebitLedger:   domain.LedgerOutputSGST,
						CreditLedger:  receivable,
						Amount:        note.RefundTax.SGST,
						Narration:     narration,
						TaxComponent:  domain.ComponentSGST,
						TaxRate:       halfRate,
					},
				)
			}
		}
	}
	return entries, nil
}
