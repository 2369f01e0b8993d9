package mapping

import (
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	"github.com/tripbooks/gst_ledger_app/internal/models"
)

// ToModelPayment converts a domain PaymentEntry to its model shape.
func ToModelPayment(d domain.PaymentEntry) models.PaymentEntry {
	m := models.PaymentEntry{
		PaymentID:   d.PaymentID,
		BookingID:   d.BookingID,
		CompanyID:   d.CompanyID,
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
		Mode:        string(d.Mode),
		Type:        string(d.Type),
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.ReceiptNumber != "" {
		m.ReceiptNumber = &d.ReceiptNumber
	}
	return m
}

// ToDomainPayment converts a model PaymentEntry back to the domain shape.
func ToDomainPayment(m models.PaymentEntry) domain.PaymentEntry {
	d := domain.PaymentEntry{
		PaymentID:   m.PaymentID,
		BookingID:   m.BookingID,
		CompanyID:   m.CompanyID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Mode:        domain.PaymentMode(m.Mode),
		Type:        domain.PaymentType(m.Type),
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.ReceiptNumber != nil {
		d.ReceiptNumber = *m.ReceiptNumber
	}
	return d
}

// ToDomainPaymentSlice converts a slice of model payments.
func ToDomainPaymentSlice(ms []models.PaymentEntry) []domain.PaymentEntry {
	ds := make([]domain.PaymentEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
