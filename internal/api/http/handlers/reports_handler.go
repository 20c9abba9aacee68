package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aquaflow/ticketing/internal/api/dto"
	"github.com/aquaflow/ticketing/internal/auth"
	"github.com/aquaflow/ticketing/internal/service"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

// ReportsHandler serves the aggregation endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Daily GET /api/reports/daily?date=YYYY-MM-DD.
func (h *ReportsHandler) Daily(c *fiber.Ctx) error {
	report, err := h.service.Daily(c.Context(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Shift GET /api/reports/shift?shift=<label>. Without a label the current
// hour bucket is reported.
func (h *ReportsHandler) Shift(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	report, err := h.service.Shift(c.Context(), principal, c.Query("shift"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"shift":           report.Shift,
		"total_tickets":   report.TotalTickets,
		"tickets_scanned": report.TicketsScanned,
		"total_revenue":   report.TotalRevenue,
		"tickets":         dto.NewTicketResponses(report.Tickets),
	}})
}

// Monthly GET /api/reports/monthly?year=YYYY&month=M. Defaults to the
// current month.
func (h *ReportsHandler) Monthly(c *fiber.Ctx) error {
	now := time.Now().UTC()
	year := parseIntQuery(c.Query("year"), now.Year())
	month := parseIntQuery(c.Query("month"), int(now.Month()))

	report, err := h.service.Monthly(c.Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// StaffActivity GET /api/reports/staff-activity.
func (h *ReportsHandler) StaffActivity(c *fiber.Ctx) error {
	entries, err := h.service.StaffActivity(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
