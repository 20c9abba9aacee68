package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquaflow/ticketing/internal/domain"
)

// PriceRepository stores the single active price per category.
type PriceRepository interface {
	Upsert(ctx context.Context, price *domain.Price) error
	GetByCategory(ctx context.Context, categoryID string) (*domain.Price, error)
	List(ctx context.Context) ([]domain.Price, error)
}

type priceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository returns a Postgres-backed implementation.
func NewPriceRepository(pool *pgxpool.Pool) PriceRepository {
	return &priceRepository{pool: pool}
}

func (r *priceRepository) Upsert(ctx context.Context, price *domain.Price) error {
	const query = `
        INSERT INTO prices (id, category_id, category_name, price, updated_at, updated_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (category_id) DO UPDATE
        SET category_name=EXCLUDED.category_name, price=EXCLUDED.price,
            updated_at=EXCLUDED.updated_at, updated_by=EXCLUDED.updated_by`
	_, err := r.pool.Exec(ctx, query,
		price.ID,
		price.CategoryID,
		price.CategoryName,
		price.Price,
		price.UpdatedAt,
		price.UpdatedBy,
	)
	return err
}

func (r *priceRepository) GetByCategory(ctx context.Context, categoryID string) (*domain.Price, error) {
	const query = `
        SELECT id, category_id, category_name, price, updated_at, updated_by
        FROM prices WHERE category_id=$1`
	var price domain.Price
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(
		&price.ID,
		&price.CategoryID,
		&price.CategoryName,
		&price.Price,
		&price.UpdatedAt,
		&price.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *priceRepository) List(ctx context.Context) ([]domain.Price, error) {
	const query = `
        SELECT id, category_id, category_name, price, updated_at, updated_by
        FROM prices ORDER BY category_name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Price
	for rows.Next() {
		var price domain.Price
		if err := rows.Scan(
			&price.ID,
			&price.CategoryID,
			&price.CategoryName,
			&price.Price,
			&price.UpdatedAt,
			&price.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, price)
	}
	return result, rows.Err()
}
