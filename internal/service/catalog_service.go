package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aquaflow/ticketing/internal/domain"
	"github.com/aquaflow/ticketing/internal/repository"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

// CatalogService manages the record-CRUD surfaces the ticket engine reads
// from: categories, prices, sessions, packages and locations.
type CatalogService struct {
	categories repository.CategoryRepository
	prices     repository.PriceRepository
	sessions   repository.SessionRepository
	packages   repository.PackageRepository
	locations  repository.LocationRepository
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	CategoryRepo repository.CategoryRepository
	PriceRepo    repository.PriceRepository
	SessionRepo  repository.SessionRepository
	PackageRepo  repository.PackageRepository
	LocationRepo repository.LocationRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		categories: deps.CategoryRepo,
		prices:     deps.PriceRepo,
		sessions:   deps.SessionRepo,
		packages:   deps.PackageRepo,
		locations:  deps.LocationRepo,
	}
}

// CategoryInput describes category create/update payloads.
type CategoryInput struct {
	Name        string
	RequiresNIM bool
	Description *string
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		RequiresNIM: input.RequiresNIM,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or reflags a category. Already-issued tickets keep
// their snapshots; only future mints observe the change.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return nil, err
	}
	category.Name = strings.TrimSpace(input.Name)
	category.RequiresNIM = input.RequiresNIM
	category.Description = input.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListPrices(ctx context.Context) ([]domain.Price, error) {
	return s.prices.List(ctx)
}

// SetPrice upserts the single active price for a category. Issued tickets
// are not touched; they carry the price snapshot from mint time.
func (s *CatalogService) SetPrice(ctx context.Context, updatedBy *domain.User, categoryID string, amount float64) (*domain.Price, error) {
	if amount < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": categoryID})
		}
		return nil, err
	}

	price := &domain.Price{
		ID:           uuid.NewString(),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Price:        amount,
		UpdatedAt:    time.Now().UTC(),
		UpdatedBy:    updatedBy.ID,
	}
	if existing, err := s.prices.GetByCategory(ctx, categoryID); err == nil {
		price.ID = existing.ID
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err := s.prices.Upsert(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

// SessionInput describes session create/update payloads.
type SessionInput struct {
	Name        string
	StartTime   string
	EndTime     string
	Days        []string
	IsRecurring bool
}

func (s *CatalogService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *CatalogService) CreateSession(ctx context.Context, input SessionInput) (*domain.Session, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	session := &domain.Session{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Days:        input.Days,
		IsRecurring: input.IsRecurring,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CatalogService) UpdateSession(ctx context.Context, id string, input SessionInput) (*domain.Session, error) {
	session := &domain.Session{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Days:        input.Days,
		IsRecurring: input.IsRecurring,
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("session", map[string]any{"session_id": id})
		}
		return nil, err
	}
	return session, nil
}

func (s *CatalogService) DeleteSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("session", map[string]any{"session_id": id})
		}
		return err
	}
	return nil
}

// PackageInput describes package create/update payloads.
type PackageInput struct {
	Name        string
	DepthRange  string
	Description *string
}

func (s *CatalogService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.packages.List(ctx)
}

func (s *CatalogService) CreatePackage(ctx context.Context, input PackageInput) (*domain.Package, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	pkg := &domain.Package{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		DepthRange:  input.DepthRange,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *CatalogService) UpdatePackage(ctx context.Context, id string, input PackageInput) (*domain.Package, error) {
	pkg := &domain.Package{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		DepthRange:  input.DepthRange,
		Description: input.Description,
	}
	if err := s.packages.Update(ctx, pkg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("package", map[string]any{"package_id": id})
		}
		return nil, err
	}
	return pkg, nil
}

func (s *CatalogService) DeletePackage(ctx context.Context, id string) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("package", map[string]any{"package_id": id})
		}
		return err
	}
	return nil
}

// LocationInput describes location create/update payloads.
type LocationInput struct {
	Name     string
	Capacity *int
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

func (s *CatalogService) CreateLocation(ctx context.Context, input LocationInput) (*domain.Location, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	location := &domain.Location{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Capacity:  input.Capacity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *CatalogService) UpdateLocation(ctx context.Context, id string, input LocationInput) (*domain.Location, error) {
	location := &domain.Location{
		ID:       id,
		Name:     strings.TrimSpace(input.Name),
		Capacity: input.Capacity,
	}
	if err := s.locations.Update(ctx, location); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("location", map[string]any{"location_id": id})
		}
		return nil, err
	}
	return location, nil
}

func (s *CatalogService) DeleteLocation(ctx context.Context, id string) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("location", map[string]any{"location_id": id})
		}
		return err
	}
	return nil
}
