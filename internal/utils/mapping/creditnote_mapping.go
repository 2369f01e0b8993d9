package mapping

import (
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/models"
)

// ToModelCreditNote converts a domain GSTCreditNote to its model shape.
func ToModelCreditNote(d domain.GSTCreditNote) models.GSTCreditNote {
	return models.GSTCreditNote{
		CreditNoteID:     d.CreditNoteID,
		CreditNoteNumber: d.CreditNoteNumber,
		IssueDate:        d.IssueDate,
		InvoiceID:        d.InvoiceID,
		CompanyID:        d.CompanyID,
		RefundTaxable:    d.RefundTaxable,
		TaxRegime:        string(d.RefundTax.Regime),
		RefundCGST:       d.RefundTax.CGST,
		RefundSGST:       d.RefundTax.SGST,
		RefundIGST:       d.RefundTax.IGST,
		TotalRefund:      d.TotalRefund,
		Reason:           d.Reason,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNote converts a model GSTCreditNote back to the domain shape.
func ToDomainCreditNote(m models.GSTCreditNote) domain.GSTCreditNote {
	return domain.GSTCreditNote{
		CreditNoteID:     m.CreditNoteID,
		CreditNoteNumber: m.CreditNoteNumber,
		IssueDate:        m.IssueDate,
		InvoiceID:        m.InvoiceID,
		CompanyID:        m.CompanyID,
		RefundTaxable:    m.RefundTaxable,
		RefundTax: domain.TaxBreakup{
			Regime: domain.TaxRegime(m.TaxRegime),
			CGST:   m.RefundCGST,
			SGST:   m.RefundSGST,
			IGST:   m.RefundIGST,
		},
		TotalRefund: m.TotalRefund,
		Reason:      m.Reason,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditNoteSlice converts a slice of model credit notes.
func ToDomainCreditNoteSlice(ms []models.GSTCreditNote) []domain.GSTCreditNote {
	ds := make([]domain.GSTCreditNote, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditNote(m)
	}
	return ds
}
