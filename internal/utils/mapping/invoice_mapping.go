package mapping

import (
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/models"
)

// ToModelInvoice converts a domain GSTInvoice to its model shape, flattening
// the tax breakup into component columns.
func ToModelInvoice(d domain.GSTInvoice) models.GSTInvoice {
	return models.GSTInvoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   d.InvoiceDate,
		BookingID:     d.BookingID,
		BookingRef:    d.BookingRef,
		CompanyID:     d.CompanyID,
		CustomerName:  d.CustomerName,
		TaxableAmount: d.TaxableAmount,
		GSTRate:       d.GSTRate,
		TaxRegime:     string(d.Tax.Regime),
		CGSTAmount:    d.Tax.CGST,
		SGSTAmount:    d.Tax.SGST,
		IGSTAmount:    d.Tax.IGST,
		TotalTax:      d.TotalTax,
		TotalAmount:   d.TotalAmount,
		Status:        string(d.Status),
		CreditNoteID:  d.CreditNoteID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model GSTInvoice back to the domain shape,
// reassembling the tax breakup from its component columns.
func ToDomainInvoice(m models.GSTInvoice) domain.GSTInvoice {
	return domain.GSTInvoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		InvoiceDate:   m.InvoiceDate,
		BookingID:     m.BookingID,
		BookingRef:    m.BookingRef,
		CompanyID:     m.CompanyID,
		CustomerName:  m.CustomerName,
		TaxableAmount: m.TaxableAmount,
		GSTRate:       m.GSTRate,
		Tax: domain.TaxBreakup{
			Regime: domain.TaxRegime(m.TaxRegime),
			CGST:   m.CGSTAmount,
			SGST:   m.SGSTAmount,
			IGST:   m.IGSTAmount,
		},
		TotalTax:     m.TotalTax,
		TotalAmount:  m.TotalAmount,
		Status:       domain.InvoiceStatus(m.Status),
		CreditNoteID: m.CreditNoteID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model invoices.
func ToDomainInvoiceSlice(ms []models.GSTInvoice) []domain.GSTInvoice {
	ds := make([]domain.GSTInvoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
