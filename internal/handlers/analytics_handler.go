package handlers

import (
	"log/slog"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/middleware"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	eventService     *services.EventService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, eventService *services.EventService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		eventService:     eventService,
	}
}

// GetAnalytics handles GET /api/analytics?days=N.
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	days := c.QueryInt("days", 30)
	analytics, err := h.analyticsService.GetAnalytics(userID, days)
	if err != nil {
		slog.Error("failed to fetch analytics", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch analytics",
		})
	}
	return c.JSON(analytics)
}

// ListEvents handles GET /api/events?limit=N - recent raw events, newest first.
func (h *AnalyticsHandler) ListEvents(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 50)
	events, err := h.eventService.ListByProfile(userID, limit)
	if err != nil {
		slog.Error("failed to fetch events", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch events",
		})
	}
	return c.JSON(events)
}
