package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquaflow/ticketing/internal/domain"
)

// ScanLogRepository persists the append-only redemption audit log.
type ScanLogRepository interface {
	Create(ctx context.Context, entry *domain.ScanLog) error
	List(ctx context.Context, limit int) ([]domain.ScanLog, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ScanLog, error)
}

type scanLogRepository struct {
	pool *pgxpool.Pool
}

// NewScanLogRepository instantiates repository.
func NewScanLogRepository(pool *pgxpool.Pool) ScanLogRepository {
	return &scanLogRepository{pool: pool}
}

func (r *scanLogRepository) Create(ctx context.Context, entry *domain.ScanLog) error {
	const query = `
        INSERT INTO scan_logs (id, ticket_id, scanned_by, scanned_by_name, scanned_at, category_name)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.TicketID,
		entry.ScannedBy,
		entry.ScannedByName,
		entry.ScannedAt,
		entry.CategoryName,
	)
	return err
}

func (r *scanLogRepository) List(ctx context.Context, limit int) ([]domain.ScanLog, error) {
	if limit <= 0 {
		limit = 1000
	}
	const query = `
        SELECT id, ticket_id, scanned_by, scanned_by_name, scanned_at, category_name
        FROM scan_logs ORDER BY scanned_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ScanLog
	for rows.Next() {
		var entry domain.ScanLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.ScannedBy,
			&entry.ScannedByName,
			&entry.ScannedAt,
			&entry.CategoryName,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *scanLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ScanLog, error) {
	const query = `
        SELECT id, ticket_id, scanned_by, scanned_by_name, scanned_at, category_name
        FROM scan_logs WHERE ticket_id=$1 ORDER BY scanned_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ScanLog
	for rows.Next() {
		var entry domain.ScanLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.ScannedBy,
			&entry.ScannedByName,
			&entry.ScannedAt,
			&entry.CategoryName,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
