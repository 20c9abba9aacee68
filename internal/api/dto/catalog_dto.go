package dto

import (
	"time"

	"github.com/aquaflow/ticketing/internal/domain"
)

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name        string  `json:"name"`
	RequiresNIM bool    `json:"requires_nim"`
	Description *string `json:"description"`
}

// CategoryResponse shape.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RequiresNIM bool      `json:"requires_nim"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PriceRequest payload for price upsert.
type PriceRequest struct {
	CategoryID string  `json:"category_id"`
	Price      float64 `json:"price"`
}

// PriceResponse shape.
type PriceResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Price        float64   `json:"price"`
	UpdatedAt    time.Time `json:"updated_at"`
	UpdatedBy    string    `json:"updated_by"`
}

// SessionRequest payload for session create/update.
type SessionRequest struct {
	Name        string   `json:"name"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Days        []string `json:"days"`
	IsRecurring bool     `json:"is_recurring"`
}

// SessionResponse shape.
type SessionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Days        []string  `json:"days"`
	IsRecurring bool      `json:"is_recurring"`
	CreatedAt   time.Time `json:"created_at"`
}

// PackageRequest payload for package create/update.
type PackageRequest struct {
	Name        string  `json:"name"`
	DepthRange  string  `json:"depth_range"`
	Description *string `json:"description"`
}

// PackageResponse shape.
type PackageResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DepthRange  string    `json:"depth_range"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationRequest payload for location create/update.
type LocationRequest struct {
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
}

// LocationResponse shape.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  *int      `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		RequiresNIM: category.RequiresNIM,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

// NewPriceResponse maps a domain price.
func NewPriceResponse(price *domain.Price) PriceResponse {
	return PriceResponse{
		ID:           price.ID,
		CategoryID:   price.CategoryID,
		CategoryName: price.CategoryName,
		Price:        price.Price,
		UpdatedAt:    price.UpdatedAt,
		UpdatedBy:    price.UpdatedBy,
	}
}

// NewSessionResponse maps a domain session.
func NewSessionResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		ID:          session.ID,
		Name:        session.Name,
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		Days:        session.Days,
		IsRecurring: session.IsRecurring,
		CreatedAt:   session.CreatedAt,
	}
}

// NewPackageResponse maps a domain package.
func NewPackageResponse(pkg *domain.Package) PackageResponse {
	return PackageResponse{
		ID:          pkg.ID,
		Name:        pkg.Name,
		DepthRange:  pkg.DepthRange,
		Description: pkg.Description,
		CreatedAt:   pkg.CreatedAt,
	}
}

// NewLocationResponse maps a domain location.
func NewLocationResponse(location *domain.Location) LocationResponse {
	return LocationResponse{
		ID:        location.ID,
		Name:      location.Name,
		Capacity:  location.Capacity,
		CreatedAt: location.CreatedAt,
	}
}
