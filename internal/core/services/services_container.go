package services

import (
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
)

// ContainerConfig carries the tunables the services need.
type ContainerConfig struct {
	LedgerRowCap int
}

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg ContainerConfig) portssvc.ServiceContainer {
	audit := NewAuditService(repos.AuditRepo)

	return portssvc.ServiceContainer{
		Numbering:  NewNumberingService(repos.CompanyRepo),
		Invoice:    NewInvoiceService(repos.InvoiceRepo, repos.BookingRepo, repos.CompanyRepo, repos.PaymentRepo, audit),
		CreditNote: NewCreditNoteService(repos.CreditNoteRepo, repos.InvoiceRepo, audit),
		Payment:    NewPaymentService(repos.PaymentRepo, repos.BookingRepo, repos.CompanyRepo, audit),
		Ledger:     NewLedgerService(repos.InvoiceRepo, repos.PaymentRepo, repos.CreditNoteRepo, repos.BookingRepo, cfg.LedgerRowCap),
		PL:         NewPLService(repos.InvoiceRepo, repos.CreditNoteRepo, repos.BookingRepo),
		Export:     NewExportService(repos.InvoiceRepo, repos.PaymentRepo, repos.CreditNoteRepo, repos.BookingRepo),
		Audit:      audit,
		Company:    NewCompanyService(repos.CompanyRepo),
	}
}
