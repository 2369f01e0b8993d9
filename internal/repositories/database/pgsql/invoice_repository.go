package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/tripbooks/gst_ledger_app/internal/models"
	"github.com/tripbooks/gst_ledger_app/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
	sequences portsrepo.SequenceAllocator
}

// newPgxInvoiceRepository creates a new repository for tax invoices. The
// sequence allocator is injected so invoice numbering joins the insert
// transaction.
func newPgxInvoiceRepository(pool *pgxpool.Pool, sequences portsrepo.SequenceAllocator) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequences:      sequences,
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, invoice_number, invoice_date, booking_id, booking_ref, company_id, customer_name,
	taxable_amount, gst_rate, tax_regime, cgst_amount, sgst_amount, igst_amount,
	total_tax, total_amount, status, credit_note_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanInvoice(row pgx.Row) (models.GSTInvoice, error) {
	var m models.GSTInvoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.InvoiceDate,
		&m.BookingID,
		&m.BookingRef,
		&m.CompanyID,
		&m.CustomerName,
		&m.TaxableAmount,
		&m.GSTRate,
		&m.TaxRegime,
		&m.CGSTAmount,
		&m.SGSTAmount,
		&m.IGSTAmount,
		&m.TotalTax,
		&m.TotalAmount,
		&m.Status,
		&m.CreditNoteID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindInvoiceByID retrieves an invoice by its identifier.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.GSTInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM gst_invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by id %s: %w", invoiceID, err)
	}

	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// FindInvoiceByBookingID retrieves the (at most one) invoice for a booking.
func (r *PgxInvoiceRepository) FindInvoiceByBookingID(ctx context.Context, bookingID string) (*domain.GSTInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM gst_invoices WHERE booking_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by booking id %s: %w", bookingID, err)
	}

	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// ListInvoicesByDateRange retrieves invoices dated in [from, to), oldest first.
func (r *PgxInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.GSTInvoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM gst_invoices
		WHERE invoice_date >= $1 AND invoice_date < $2
		  AND ($3::text IS NULL OR company_id = $3)
		ORDER BY invoice_date, invoice_number;`

	rows, err := r.Pool.Query(ctx, query, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []models.GSTInvoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}

	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// SaveInvoice allocates the next invoice number and inserts the invoice inside
// one transaction, so the counter never advances without the invoice row
// existing. A unique violation on booking_id from a concurrent insert surfaces
// as apperrors.ErrDuplicate; the loser's counter advance rolls back with it.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.GSTInvoice) (*domain.GSTInvoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	grant, err := r.sequences.AllocateNext(ctx, tx, invoice.CompanyID, domain.SeriesInvoice)
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = grant.Format(invoice.InvoiceDate.Year())

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO gst_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.InvoiceDate,
		m.BookingID,
		m.BookingRef,
		m.CompanyID,
		m.CustomerName,
		m.TaxableAmount,
		m.GSTRate,
		m.TaxRegime,
		m.CGSTAmount,
		m.SGSTAmount,
		m.IGSTAmount,
		m.TotalTax,
		m.TotalAmount,
		m.Status,
		m.CreditNoteID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "invoice already exists for booking "+invoice.BookingID, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoiceStatus transitions an invoice's status and optionally links the
// credit note that caused the transition.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, creditNoteID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE gst_invoices
		SET status = $2,
		    credit_note_id = COALESCE($3, credit_note_id),
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), creditNoteID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
