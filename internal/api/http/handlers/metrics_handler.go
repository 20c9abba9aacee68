package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaflow/ticketing/internal/observability"
)

// MetricsHandler exposes in-process counters for operators.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Snapshot GET /api/metrics.
func (h *MetricsHandler) Snapshot(c *fiber.Ctx) error {
	requests, errCounts, scans, issued := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests":       requests,
		"errors":         errCounts,
		"scans":          scans,
		"tickets_issued": issued,
	}})
}
