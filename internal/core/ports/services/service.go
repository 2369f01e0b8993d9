package services

// ServiceContainer bundles all services for dependency injection.
type ServiceContainer struct {
	Numbering  NumberingSvcFacade
	Invoice    InvoiceSvcFacade
	CreditNote CreditNoteSvcFacade
	Payment    PaymentSvcFacade
	Ledger     LedgerSvcFacade
	PL         PLSvcFacade
	Export     ExportSvcFacade
	Audit      AuditSvcFacade
	Company    CompanySvcFacade
}
