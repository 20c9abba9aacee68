package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aquaflow/ticketing/internal/api/dto"
	"github.com/aquaflow/ticketing/internal/auth"
	"github.com/aquaflow/ticketing/internal/service"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

// CatalogHandler manages categories, prices, sessions, packages and locations.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// ListCategories GET /api/categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.NewCategoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /api/categories.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.CreateCategory(c.Context(), service.CategoryInput{
		Name:        req.Name,
		RequiresNIM: req.RequiresNIM,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// UpdateCategory PUT /api/categories/:id.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.UpdateCategory(c.Context(), c.Params("id"), service.CategoryInput{
		Name:        req.Name,
		RequiresNIM: req.RequiresNIM,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// DeleteCategory DELETE /api/categories/:id.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListPrices GET /api/prices.
func (h *CatalogHandler) ListPrices(c *fiber.Ctx) error {
	prices, err := h.service.ListPrices(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PriceResponse, 0, len(prices))
	for i := range prices {
		items = append(items, dto.NewPriceResponse(&prices[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetPrice POST /api/prices. Upserts the active price for a category; tickets
// already issued keep the price they were minted at.
func (h *CatalogHandler) SetPrice(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CategoryID == "" {
		return apperrors.NewValidationError("category_id required", nil)
	}

	price, err := h.service.SetPrice(c.Context(), principal, req.CategoryID, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPriceResponse(price)})
}

// ListSessions GET /api/sessions.
func (h *CatalogHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, dto.NewSessionResponse(&sessions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateSession POST /api/sessions.
func (h *CatalogHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.service.CreateSession(c.Context(), sessionInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// UpdateSession PUT /api/sessions/:id.
func (h *CatalogHandler) UpdateSession(c *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.service.UpdateSession(c.Context(), c.Params("id"), sessionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}

// DeleteSession DELETE /api/sessions/:id.
func (h *CatalogHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListPackages GET /api/packages.
func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.service.ListPackages(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PackageResponse, 0, len(packages))
	for i := range packages {
		items = append(items, dto.NewPackageResponse(&packages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreatePackage POST /api/packages.
func (h *CatalogHandler) CreatePackage(c *fiber.Ctx) error {
	var req dto.PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	pkg, err := h.service.CreatePackage(c.Context(), packageInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPackageResponse(pkg)})
}

// UpdatePackage PUT /api/packages/:id.
func (h *CatalogHandler) UpdatePackage(c *fiber.Ctx) error {
	var req dto.PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	pkg, err := h.service.UpdatePackage(c.Context(), c.Params("id"), packageInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPackageResponse(pkg)})
}

// DeletePackage DELETE /api/packages/:id.
func (h *CatalogHandler) DeletePackage(c *fiber.Ctx) error {
	if err := h.service.DeletePackage(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListLocations GET /api/locations.
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.service.ListLocations(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		items = append(items, dto.NewLocationResponse(&locations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateLocation POST /api/locations.
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	location, err := h.service.CreateLocation(c.Context(), service.LocationInput{Name: req.Name, Capacity: req.Capacity})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLocationResponse(location)})
}

// UpdateLocation PUT /api/locations/:id.
func (h *CatalogHandler) UpdateLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	location, err := h.service.UpdateLocation(c.Context(), c.Params("id"), service.LocationInput{Name: req.Name, Capacity: req.Capacity})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLocationResponse(location)})
}

// DeleteLocation DELETE /api/locations/:id.
func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.service.DeleteLocation(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func sessionInput(req dto.SessionRequest) service.SessionInput {
	return service.SessionInput{
		Name:        req.Name,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Days:        req.Days,
		IsRecurring: req.IsRecurring,
	}
}

func packageInput(req dto.PackageRequest) service.PackageInput {
	return service.PackageInput{
		Name:        req.Name,
		DepthRange:  req.DepthRange,
		Description: req.Description,
	}
}
