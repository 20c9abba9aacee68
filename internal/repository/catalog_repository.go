package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquaflow/ticketing/internal/domain"
)

// SessionRepository stores operating-session records.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Update(ctx context.Context, session *domain.Session) error
	List(ctx context.Context) ([]domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// PackageRepository stores swim-package records.
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	Update(ctx context.Context, pkg *domain.Package) error
	List(ctx context.Context) ([]domain.Package, error)
	Delete(ctx context.Context, id string) error
}

// LocationRepository stores pool-location records.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	Update(ctx context.Context, location *domain.Location) error
	List(ctx context.Context) ([]domain.Location, error)
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct{ pool *pgxpool.Pool }
type packageRepository struct{ pool *pgxpool.Pool }
type locationRepository struct{ pool *pgxpool.Pool }

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

// NewPackageRepository returns a Postgres-backed implementation.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

// NewLocationRepository returns a Postgres-backed implementation.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (id, name, start_time, end_time, days, is_recurring, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Name,
		session.StartTime,
		session.EndTime,
		session.Days,
		session.IsRecurring,
		session.CreatedAt,
	)
	return err
}

func (r *sessionRepository) Update(ctx context.Context, session *domain.Session) error {
	const query = `
        UPDATE sessions SET name=$1, start_time=$2, end_time=$3, days=$4, is_recurring=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		session.Name,
		session.StartTime,
		session.EndTime,
		session.Days,
		session.IsRecurring,
		session.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	const query = `
        SELECT id, name, start_time, end_time, days, is_recurring, created_at
        FROM sessions ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(
			&session.ID,
			&session.Name,
			&session.StartTime,
			&session.EndTime,
			&session.Days,
			&session.IsRecurring,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, session)
	}
	return result, rows.Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "sessions", id)
}

func (r *packageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	const query = `
        INSERT INTO packages (id, name, depth_range, description, created_at)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.DepthRange,
		pkg.Description,
		pkg.CreatedAt,
	)
	return err
}

func (r *packageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	const query = `
        UPDATE packages SET name=$1, depth_range=$2, description=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		pkg.Name,
		pkg.DepthRange,
		pkg.Description,
		pkg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *packageRepository) List(ctx context.Context) ([]domain.Package, error) {
	const query = `
        SELECT id, name, depth_range, description, created_at
        FROM packages ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Package
	for rows.Next() {
		var pkg domain.Package
		if err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.DepthRange,
			&pkg.Description,
			&pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}

func (r *packageRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "packages", id)
}

func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	const query = `
        INSERT INTO locations (id, name, capacity, created_at)
        VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, query,
		location.ID,
		location.Name,
		location.Capacity,
		location.CreatedAt,
	)
	return err
}

func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	const query = `UPDATE locations SET name=$1, capacity=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		location.Name,
		location.Capacity,
		location.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	const query = `SELECT id, name, capacity, created_at FROM locations ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(
			&location.ID,
			&location.Name,
			&location.Capacity,
			&location.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, location)
	}
	return result, rows.Err()
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "locations", id)
}

func deleteByID(ctx context.Context, pool *pgxpool.Pool, table, id string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
