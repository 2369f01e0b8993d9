package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
)

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepository) FindDefaultCompany(ctx context.Context) (*domain.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]domain.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepository) AllocateNext(ctx context.Context, tx pgx.Tx, companyID string, series domain.NumberSeries) (domain.SequenceGrant, error) {
	args := m.Called(ctx, tx, companyID, series)
	return args.Get(0).(domain.SequenceGrant), args.Error(1)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.GSTInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByBookingID(ctx context.Context, bookingID string) (*domain.GSTInvoice, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.GSTInvoice, error) {
	args := m.Called(ctx, from, to, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.GSTInvoice) (*domain.GSTInvoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, creditNoteID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, creditNoteID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock CreditNoteRepository ---
type MockCreditNoteRepository struct {
	mock.Mock
}

var _ portsrepo.CreditNoteRepositoryFacade = (*MockCreditNoteRepository)(nil)

func (m *MockCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.GSTCreditNote, error) {
	args := m.Called(ctx, creditNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTCreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindCreditNotesByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.GSTCreditNote, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GSTCreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) ListCreditNotesByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.GSTCreditNote, error) {
	args := m.Called(ctx, from, to, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTCreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) SaveCreditNote(ctx context.Context, note domain.GSTCreditNote) (*domain.GSTCreditNote, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTCreditNote), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) ListPaymentsByBookingID(ctx context.Context, bookingID string) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.PaymentEntry, error) {
	args := m.Called(ctx, from, to, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentEntry), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentEntry) (*domain.PaymentEntry, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentEntry), args.Error(1)
}

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

var _ portsrepo.BookingReader = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindBookingsByIDs(ctx context.Context, bookingIDs []string) (map[string]domain.Booking, error) {
	args := m.Called(ctx, bookingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Booking), args.Error(1)
}

// --- Stub audit service ---
// Records everything, fails nothing; business flows never depend on audit results.
type stubAuditService struct {
	records []domain.AuditRecord
}

var _ portssvc.AuditSvcFacade = (*stubAuditService)(nil)

func (s *stubAuditService) LogAction(_ context.Context, record domain.AuditRecord) {
	s.records = append(s.records, record)
}
