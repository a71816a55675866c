package routes

import (
	"time"

	"github.com/cardtaphq/cardtap-backend/internal/config"
	"github.com/cardtaphq/cardtap-backend/internal/handlers"
	"github.com/cardtaphq/cardtap-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	profileHandler *handlers.ProfileHandler,
	linkHandler *handlers.LinkHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	publicHandler *handlers.PublicHandler,
	webhookHandler *handlers.WebhookHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Public profile surfaces
	api.Get("/public/profile/:username", publicHandler.GetProfile)
	api.Get("/public/links/:profileId", publicHandler.GetLinks)
	api.Get("/qr/:username", publicHandler.QRCode)
	api.Get("/vcard/:username", publicHandler.VCard)

	// Public event tracking
	api.Post("/track/link-click", publicHandler.TrackLinkClick)
	api.Post("/track/event", publicHandler.TrackEvent)

	// Profile (owner)
	api.Get("/profile", middleware.JWTProtected(cfg), profileHandler.Get)
	api.Post("/profile", middleware.JWTProtected(cfg), profileHandler.Create)
	api.Put("/profile", middleware.JWTProtected(cfg), profileHandler.Update)
	api.Delete("/profile", middleware.JWTProtected(cfg), profileHandler.Delete)
	api.Get("/profile/check-username/:username", middleware.JWTProtected(cfg), profileHandler.CheckUsername)

	// Links (owner)
	links := api.Group("/links", middleware.JWTProtected(cfg))
	links.Get("/", linkHandler.List)
	links.Post("/", linkHandler.Create)
	links.Post("/reorder", linkHandler.Reorder)
	links.Put("/:id", linkHandler.Update)
	links.Delete("/:id", linkHandler.Delete)

	// Analytics (owner)
	api.Get("/analytics", middleware.JWTProtected(cfg), analyticsHandler.GetAnalytics)
	api.Get("/events", middleware.JWTProtected(cfg), analyticsHandler.ListEvents)

	// Webhooks (owner)
	webhooks := api.Group("/webhooks", middleware.JWTProtected(cfg))
	webhooks.Get("/", webhookHandler.List)
	webhooks.Post("/", webhookHandler.Create)
	webhooks.Put("/:id", webhookHandler.Update)
	webhooks.Delete("/:id", webhookHandler.Delete)
	webhooks.Post("/:id/test", webhookHandler.Test)
}
