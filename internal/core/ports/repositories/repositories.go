package repositories

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	CompanyRepo    CompanyRepositoryFacade
	InvoiceRepo    InvoiceRepositoryFacade
	CreditNoteRepo CreditNoteRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	BookingRepo    BookingReader
	AuditRepo      AuditWriter
}
