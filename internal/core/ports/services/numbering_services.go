package services

import "context"

// NumberingSvcFacade is the sequence registry contract: each call returns a
// formatted document number ({prefix}{year}-{seq:04d}) and atomically advances
// the underlying counter. Numbers are strictly increasing per company and
// series and are never reissued, even across failed callers.
type NumberingSvcFacade interface {
	NextInvoiceNumber(ctx context.Context, companyID string) (string, error)
	NextReceiptNumber(ctx context.Context, companyID string) (string, error)
	NextCreditNoteNumber(ctx context.Context, companyID string) (string, error)
}
