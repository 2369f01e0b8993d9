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

type PgxCreditNoteRepository struct {
	BaseRepository
	sequences portsrepo.SequenceAllocator
}

// newPgxCreditNoteRepository creates a new repository for credit notes.
func newPgxCreditNoteRepository(pool *pgxpool.Pool, sequences portsrepo.SequenceAllocator) portsrepo.CreditNoteRepositoryFacade {
	return &PgxCreditNoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequences:      sequences,
	}
}

// Ensure implementation matches interface
var _ portsrepo.CreditNoteRepositoryFacade = (*PgxCreditNoteRepository)(nil)

const creditNoteColumns = `
	credit_note_id, credit_note_number, issue_date, invoice_id, company_id,
	refund_taxable, tax_regime, refund_cgst, refund_sgst, refund_igst, total_refund, reason,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCreditNote(row pgx.Row) (models.GSTCreditNote, error) {
	var m models.GSTCreditNote
	err := row.Scan(
		&m.CreditNoteID,
		&m.CreditNoteNumber,
		&m.IssueDate,
		&m.InvoiceID,
		&m.CompanyID,
		&m.RefundTaxable,
		&m.TaxRegime,
		&m.RefundCGST,
		&m.RefundSGST,
		&m.RefundIGST,
		&m.TotalRefund,
		&m.Reason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCreditNoteByID retrieves a credit note by its identifier.
func (r *PgxCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.GSTCreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM gst_credit_notes WHERE credit_note_id = $1;`

	m, err := scanCreditNote(r.Pool.QueryRow(ctx, query, creditNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit note by id %s: %w", creditNoteID, err)
	}

	note := mapping.ToDomainCreditNote(m)
	return &note, nil
}

// FindCreditNotesByInvoiceIDs retrieves credit notes keyed by their parent
// invoice ID. Invoices without a note are absent from the map.
func (r *PgxCreditNoteRepository) FindCreditNotesByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.GSTCreditNote, error) {
	notes := make(map[string]domain.GSTCreditNote, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return notes, nil
	}

	query := `SELECT ` + creditNoteColumns + ` FROM gst_credit_notes WHERE invoice_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit notes by invoice ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanCreditNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit note: %w", err)
		}
		notes[m.InvoiceID] = mapping.ToDomainCreditNote(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read credit notes: %w", err)
	}

	return notes, nil
}

// ListCreditNotesByDateRange retrieves credit notes issued in [from, to), oldest first.
func (r *PgxCreditNoteRepository) ListCreditNotesByDateRange(ctx context.Context, from, to time.Time, companyID *string) ([]domain.GSTCreditNote, error) {
	query := `SELECT ` + creditNoteColumns + `
		FROM gst_credit_notes
		WHERE issue_date >= $1 AND issue_date < $2
		  AND ($3::text IS NULL OR company_id = $3)
		ORDER BY issue_date, credit_note_number;`

	rows, err := r.Pool.Query(ctx, query, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit notes: %w", err)
	}
	defer rows.Close()

	notes := []models.GSTCreditNote{}
	for rows.Next() {
		m, err := scanCreditNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit note: %w", err)
		}
		notes = append(notes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read credit notes: %w", err)
	}

	return mapping.ToDomainCreditNoteSlice(notes), nil
}

// SaveCreditNote allocates the next credit-note number, inserts the note and
// marks the parent invoice REFUNDED with a link to the note, all inside one
// transaction. A concurrent second note for the same invoice loses on the
// unique invoice_id constraint and rolls back its counter advance.
func (r *PgxCreditNoteRepository) SaveCreditNote(ctx context.Context, note domain.GSTCreditNote) (*domain.GSTCreditNote, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	grant, err := r.sequences.AllocateNext(ctx, tx, note.CompanyID, domain.SeriesCreditNote)
	if err != nil {
		return nil, err
	}
	note.CreditNoteNumber = grant.Format(note.IssueDate.Year())

	m := mapping.ToModelCreditNote(note)
	insertQuery := `
		INSERT INTO gst_credit_notes (` + creditNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.CreditNoteID,
		m.CreditNoteNumber,
		m.IssueDate,
		m.InvoiceID,
		m.CompanyID,
		m.RefundTaxable,
		m.TaxRegime,
		m.RefundCGST,
		m.RefundSGST,
		m.RefundIGST,
		m.TotalRefund,
		m.Reason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "credit note already exists for invoice "+note.InvoiceID, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert credit note %s: %w", m.CreditNoteID, err)
	}

	updateQuery := `
		UPDATE gst_invoices
		SET status = $2, credit_note_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		note.InvoiceID,
		string(domain.InvoiceRefunded),
		note.CreditNoteID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark invoice %s refunded: %w", note.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("parent invoice " + note.InvoiceID + " not found")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &note, nil
}
