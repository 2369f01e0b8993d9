package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	companyRepo := newPgxCompanyRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool, companyRepo)
	creditNoteRepo := newPgxCreditNoteRepository(dbPool, companyRepo)
	paymentRepo := newPgxPaymentRepository(dbPool, companyRepo)
	bookingRepo := newPgxBookingRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:    companyRepo,
		InvoiceRepo:    invoiceRepo,
		CreditNoteRepo: creditNoteRepo,
		PaymentRepo:    paymentRepo,
		BookingRepo:    bookingRepo,
		AuditRepo:      auditRepo,
	}
}
