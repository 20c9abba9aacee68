package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aquaflow/ticketing/internal/api/dto"
	"github.com/aquaflow/ticketing/internal/auth"
	"github.com/aquaflow/ticketing/internal/observability"
	"github.com/aquaflow/ticketing/internal/service"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

// TicketsHandler manages ticket issuance, listing and scanning endpoints.
type TicketsHandler struct {
	issuance *service.IssuanceService
	scans    *service.ScanService
	metrics  *observability.Metrics
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(issuance *service.IssuanceService, scans *service.ScanService, metrics *observability.Metrics) *TicketsHandler {
	return &TicketsHandler{issuance: issuance, scans: scans, metrics: metrics}
}

// CreateBatch POST /api/tickets/batch.
func (h *TicketsHandler) CreateBatch(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Tickets) == 0 {
		return apperrors.NewValidationError("tickets required", nil)
	}

	items := make([]service.BatchItemInput, 0, len(req.Tickets))
	for _, item := range req.Tickets {
		items = append(items, service.BatchItemInput{
			CategoryID: item.CategoryID,
			Quantity:   item.Quantity,
			NIM:        item.NIM,
		})
	}

	result, err := h.issuance.IssueBatch(c.Context(), principal, items)
	if err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.RecordIssued(len(result.Tickets))
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.BatchResponse{
		BatchID:      result.BatchID,
		TotalTickets: len(result.Tickets),
		Tickets:      dto.NewTicketResponses(result.Tickets),
	}})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.issuance.ListTickets(c.Context(), principal, service.TicketListInput{
		BatchID: c.Query("batch_id"),
		Status:  strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Limit:   parseLimit(c.Query("limit"), 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.issuance.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Scan POST /api/tickets/scan. Always responds 200; the scan outcome lives in the
// response body so scanner clients can give operator feedback.
func (h *TicketsHandler) Scan(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TicketID) == "" {
		return apperrors.NewValidationError("ticket_id required", nil)
	}

	result, err := h.scans.Scan(c.Context(), strings.TrimSpace(req.TicketID), principal)
	if err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.RecordScan(string(result.Status))
	}

	resp := dto.ScanResponse{
		Success: result.Success,
		Status:  result.Status,
		Message: result.Message,
	}
	if result.Ticket != nil {
		ticket := dto.NewTicketResponse(result.Ticket)
		resp.Ticket = &ticket
	}
	return c.JSON(resp)
}

// ListScanLogs GET /api/scan-logs.
func (h *TicketsHandler) ListScanLogs(c *fiber.Ctx) error {
	logs, err := h.scans.ListScanLogs(c.Context(), parseLimit(c.Query("limit"), 0))
	if err != nil {
		return err
	}
	items := make([]dto.ScanLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, dto.NewScanLogResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseLimit(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
