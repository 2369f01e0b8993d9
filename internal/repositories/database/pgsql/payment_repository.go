package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/tripbooks/gst_ledger_app/internal/models"
	"github.com/tripbooks/gst_ledger_app/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
	sequences portsrepo.SequenceAllocator
}

// newPgxPaymentRepository creates a new repository for booking payments.
func newPgxPaymentRepository(pool *pgxpool.Pool, sequences portsrepo.SequenceAllocator) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequences:      sequences,
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `
	payment_id, booking_id, company_id, amount, payment_date, mode, type, reference, receipt_number,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPayment(row pgx.Row) (models.PaymentEntry, error) {
	var m models.PaymentEntry
	err := row.Scan(
		&m.PaymentID,
		&m.BookingID,
		&m.CompanyID,
		&m.Amount,
		&m.PaymentDate,
		&m.Mode,
		&m.Type,
		&m.Reference,
		&m.ReceiptNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.PaymentEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.PaymentEntry{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}

// ListPaymentsByBookingID retrieves a booking's payment history, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByBookingID(ctx context.Context, bookingID string) ([]domain.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY payment_date, created_at;`
	return r.queryPayments(ctx, query, bookingID)
}

// ListPaymentsByDateRange retrieves payments dated in [from, to), oldest first.
func (r *PgxPaymentRepository) ListPaymentsByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_date >= $1 AND payment_date < $2
		  AND ($3::text IS NULL OR company_id = $3)
		ORDER BY payment_date, created_at;`
	return r.queryPayments(ctx, query, from, to, companyID)
}

// SavePayment allocates a receipt number for non-refund payments and inserts
// the entry, both inside one transaction. Refunds carry no receipt number.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentEntry) (*domain.PaymentEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if payment.Type != domain.PaymentRefund {
		grant, err := r.sequences.AllocateNext(ctx, tx, payment.CompanyID, domain.SeriesReceipt)
		if err != nil {
			return nil, err
		}
		payment.ReceiptNumber = grant.Format(payment.PaymentDate.Year())
	}

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.BookingID,
		m.CompanyID,
		m.Amount,
		m.PaymentDate,
		m.Mode,
		m.Type,
		m.Reference,
		m.ReceiptNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &payment, nil
}
