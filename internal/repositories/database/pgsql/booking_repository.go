package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/tripbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/tripbooks/gst_ledger_app/internal/models"
	"github.com/tripbooks/gst_ledger_app/internal/utils/mapping"
)

// PgxBookingRepository reads the bookings table maintained by the booking
// workflow. This side never writes it.
type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a read-only repository over bookings.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingReader {
	return &PgxBookingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BookingReader = (*PgxBookingRepository)(nil)

const bookingColumns = `
	booking_id, booking_ref, company_id, customer_name, agent_id, agent_name,
	destination, selling_price, net_cost, refund_amount
`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.BookingRef,
		&m.CompanyID,
		&m.CustomerName,
		&m.AgentID,
		&m.AgentName,
		&m.Destination,
		&m.SellingPrice,
		&m.NetCost,
		&m.RefundAmount,
	)
	return m, err
}

// FindBookingByID retrieves a booking by its identifier.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`

	m, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by id %s: %w", bookingID, err)
	}

	booking := mapping.ToDomainBooking(m)
	return &booking, nil
}

// FindBookingsByIDs retrieves bookings keyed by ID; missing IDs are simply
// absent from the map.
func (r *PgxBookingRepository) FindBookingsByIDs(ctx context.Context, bookingIDs []string) (map[string]domain.Booking, error) {
	bookings := make(map[string]domain.Booking, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return bookings, nil
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings[m.BookingID] = mapping.ToDomainBooking(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return bookings, nil
}
