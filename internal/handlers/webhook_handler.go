package handlers

import (
	"errors"
	"log/slog"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/middleware"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/cardtaphq/cardtap-backend/internal/webhook"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WebhookHandler struct {
	webhookService *services.WebhookService
	dispatcher     *webhook.Dispatcher
}

func NewWebhookHandler(webhookService *services.WebhookService, dispatcher *webhook.Dispatcher) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		dispatcher:     dispatcher,
	}
}

// List handles GET /api/webhooks. Secrets are never included.
func (h *WebhookHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	webhooks, err := h.webhookService.List(userID)
	if err != nil {
		slog.Error("failed to fetch webhooks", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch webhooks",
		})
	}
	return c.JSON(webhooks)
}

// Create handles POST /api/webhooks. The response is the only place the
// generated secret is ever exposed.
func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	created, err := h.webhookService.Create(userID, &req)
	if err != nil {
		slog.Error("failed to create webhook", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create webhook",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateWebhookResponse{
		ID:        created.ID,
		ProfileID: created.ProfileID,
		Name:      created.Name,
		URL:       created.URL,
		Secret:    created.Secret,
		Events:    req.Events,
		Enabled:   created.Enabled,
		CreatedAt: created.CreatedAt,
	})
}

// Update handles PUT /api/webhooks/:id. The secret is immutable and is not
// echoed back.
func (h *WebhookHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook id",
		})
	}

	var req dto.UpdateWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	updated, err := h.webhookService.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrWebhookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Webhook not found",
			})
		}
		slog.Error("failed to update webhook", "user_id", userID, "webhook_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update webhook",
		})
	}
	return c.JSON(updated)
}

// Delete handles DELETE /api/webhooks/:id. Delivery history cascades.
func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook id",
		})
	}

	if err := h.webhookService.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrWebhookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Webhook not found",
			})
		}
		slog.Error("failed to delete webhook", "user_id", userID, "webhook_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete webhook",
		})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Test handles POST /api/webhooks/:id/test - a synchronous synthetic
// delivery, recorded as attempt 1 and exempt from the retry policy.
func (h *WebhookHandler) Test(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook id",
		})
	}

	wh, err := h.webhookService.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrWebhookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Webhook not found",
			})
		}
		slog.Error("failed to fetch webhook", "user_id", userID, "webhook_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send test webhook",
		})
	}

	status, err := h.dispatcher.SendTest(wh)
	if err != nil {
		return c.JSON(dto.TestWebhookResponse{
			Success: false,
			Status:  status,
			Message: "Test webhook delivery failed",
		})
	}
	return c.JSON(dto.TestWebhookResponse{
		Success: true,
		Status:  status,
		Message: "Test webhook sent",
	})
}
