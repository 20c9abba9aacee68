package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aquaflow/ticketing/internal/auth"
	"github.com/aquaflow/ticketing/internal/config"
	"github.com/aquaflow/ticketing/internal/domain"
)

// Seed creates the bootstrap records the facility needs on first start: one
// admin account, the default ticket categories, and the default swim
// packages. Each step is skipped when matching records already exist.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) error {
	if pool == nil || !cfg.Enabled {
		return nil
	}
	now := time.Now().UTC()

	var admins int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role=$1`, domain.RoleAdmin).Scan(&admins); err != nil {
		return fmt.Errorf("seed: count admins: %w", err)
	}
	if admins == 0 {
		hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
		if err != nil {
			return fmt.Errorf("seed: hash admin password: %w", err)
		}
		_, err = pool.Exec(ctx, `
            INSERT INTO users (id, email, name, role, password_hash, is_active, created_at)
            VALUES ($1,$2,$3,$4,$5,TRUE,$6)`,
			uuid.NewString(), cfg.AdminEmail, cfg.AdminName, domain.RoleAdmin, hash, now)
		if err != nil {
			return fmt.Errorf("seed: create admin: %w", err)
		}
		logger.Info("created default admin user", zap.String("email", cfg.AdminEmail))
	}

	var categories int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		return fmt.Errorf("seed: count categories: %w", err)
	}
	if categories == 0 {
		defaults := []struct {
			name        string
			requiresNIM bool
			description string
		}{
			{"Umum", false, "General admission"},
			{"Mahasiswa", true, "Student with NIM"},
			{"Khusus", false, "Special admission"},
			{"Liburan", false, "Holiday admission (includes Sat & Sun)"},
		}
		for _, c := range defaults {
			_, err := pool.Exec(ctx, `
                INSERT INTO categories (id, name, requires_nim, description, created_at)
                VALUES ($1,$2,$3,$4,$5)`,
				uuid.NewString(), c.name, c.requiresNIM, c.description, now)
			if err != nil {
				return fmt.Errorf("seed: create category %s: %w", c.name, err)
			}
		}
		logger.Info("created default ticket categories")
	}

	var packages int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM packages`).Scan(&packages); err != nil {
		return fmt.Errorf("seed: count packages: %w", err)
	}
	if packages == 0 {
		defaults := []struct{ name, depthRange string }{
			{"PAUD", "0-40 cm"},
			{"SD", "40-100 cm"},
			{"SMP", "100-150 cm"},
			{"Pemanasan", "Shallow end"},
			{"Khusus", "Custom"},
		}
		for _, p := range defaults {
			_, err := pool.Exec(ctx, `
                INSERT INTO packages (id, name, depth_range, created_at)
                VALUES ($1,$2,$3,$4)`,
				uuid.NewString(), p.name, p.depthRange, now)
			if err != nil {
				return fmt.Errorf("seed: create package %s: %w", p.name, err)
			}
		}
		logger.Info("created default packages")
	}

	return nil
}
