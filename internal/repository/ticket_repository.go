package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquaflow/ticketing/internal/domain"
)

// ErrDuplicateTicketID signals an id collision during insert. Ids are minted
// fresh per ticket, so hitting this means the generator is broken; callers
// treat it as fatal rather than retrying.
var ErrDuplicateTicketID = errors.New("duplicate ticket id")

// TicketFilter captures ledger enumeration parameters. Nil fields are
// ignored; all supplied filters must match.
type TicketFilter struct {
	BatchID     *string
	Status      *domain.TicketStatus
	CreatedBy   *string
	Shift       *string
	ShiftPrefix *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	// CreatedBefore is an exclusive upper bound, used for calendar-month
	// windows. CreatedTo is inclusive.
	CreatedBefore *time.Time
	ScannedFrom   *time.Time
	ScannedTo     *time.Time
	Limit         int
}

// TicketRepository is the ticket ledger: durable ticket records keyed by id.
// MarkUsed is the only mutation after insertion.
type TicketRepository interface {
	InsertMany(ctx context.Context, tickets []domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	MarkUsed(ctx context.Context, id, scannedBy string, scannedAt time.Time) (bool, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, batch_id, category_id, category_name, status, price, nim, qr_code,
               created_by, created_by_name, shift, created_at, scanned_at, scanned_by`

// InsertMany appends all tickets in one transaction. The whole set fails if
// any id collides with an existing record.
func (r *ticketRepository) InsertMany(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO tickets (` + ticketColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	for i := range tickets {
		t := &tickets[i]
		if _, err := tx.Exec(ctx, query,
			t.ID,
			t.BatchID,
			t.CategoryID,
			t.CategoryName,
			t.Status,
			t.Price,
			t.NIM,
			t.QRCode,
			t.CreatedBy,
			t.CreatedByName,
			t.Shift,
			t.CreatedAt,
			t.ScannedAt,
			t.ScannedBy,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: %s", ErrDuplicateTicketID, t.ID)
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.BatchID,
		&ticket.CategoryID,
		&ticket.CategoryName,
		&ticket.Status,
		&ticket.Price,
		&ticket.NIM,
		&ticket.QRCode,
		&ticket.CreatedBy,
		&ticket.CreatedByName,
		&ticket.Shift,
		&ticket.CreatedAt,
		&ticket.ScannedAt,
		&ticket.ScannedBy,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// MarkUsed performs the single conditional UNUSED->USED transition. Concurrent
// callers racing on one id produce exactly one winner; the loser sees false.
func (r *ticketRepository) MarkUsed(ctx context.Context, id, scannedBy string, scannedAt time.Time) (bool, error) {
	const query = `
        UPDATE tickets SET status=$1, scanned_at=$2, scanned_by=$3
        WHERE id=$4 AND status=$5`
	cmd, err := r.pool.Exec(ctx, query,
		domain.TicketStatusUsed,
		scannedAt,
		scannedBy,
		id,
		domain.TicketStatusUnused,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BatchID != nil {
		args = append(args, *filter.BatchID)
		clauses = append(clauses, fmt.Sprintf("batch_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.Shift != nil {
		args = append(args, *filter.Shift)
		clauses = append(clauses, fmt.Sprintf("shift=$%d", len(args)))
	}
	if filter.ShiftPrefix != nil {
		args = append(args, *filter.ShiftPrefix+"%")
		clauses = append(clauses, fmt.Sprintf("shift LIKE $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if filter.ScannedFrom != nil {
		args = append(args, *filter.ScannedFrom)
		clauses = append(clauses, fmt.Sprintf("scanned_at >= $%d", len(args)))
	}
	if filter.ScannedTo != nil {
		args = append(args, *filter.ScannedTo)
		clauses = append(clauses, fmt.Sprintf("scanned_at <= $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC", base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.BatchID,
			&ticket.CategoryID,
			&ticket.CategoryName,
			&ticket.Status,
			&ticket.Price,
			&ticket.NIM,
			&ticket.QRCode,
			&ticket.CreatedBy,
			&ticket.CreatedByName,
			&ticket.Shift,
			&ticket.CreatedAt,
			&ticket.ScannedAt,
			&ticket.ScannedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
