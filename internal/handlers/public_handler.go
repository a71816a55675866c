package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cardtaphq/cardtap-backend/internal/config"
	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/cardtaphq/cardtap-backend/internal/vcard"
	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/datatypes"
)

// PublicHandler serves the unauthenticated surfaces: the public profile page
// data, enabled links, event tracking, QR codes and vCards.
type PublicHandler struct {
	cfg            *config.Config
	profileService *services.ProfileService
	linkService    *services.LinkService
	eventService   *services.EventService
}

func NewPublicHandler(
	cfg *config.Config,
	profileService *services.ProfileService,
	linkService *services.LinkService,
	eventService *services.EventService,
) *PublicHandler {
	return &PublicHandler{
		cfg:            cfg,
		profileService: profileService,
		linkService:    linkService,
		eventService:   eventService,
	}
}

// visibleProfile resolves a username to a public profile, hiding private and
// missing profiles behind the same 404.
func (h *PublicHandler) visibleProfile(username string) (*models.Profile, error) {
	profile, err := h.profileService.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic {
		return nil, services.ErrProfileNotFound
	}
	return profile, nil
}

func (h *PublicHandler) profileURL(username string) string {
	return h.cfg.PublicBaseURL + "/@" + username
}

// GetProfile handles GET /api/public/profile/:username. Viewing records a
// profile_view event with UTM parameters captured from the query string.
func (h *PublicHandler) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	profile, err := h.visibleProfile(username)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		slog.Error("failed to fetch public profile", "username", username, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch profile",
		})
	}

	event := &models.Event{
		ProfileID: profile.ID,
		EventType: models.EventProfileView,
		UTM: utmJSON(&dto.UTMParams{
			Source:   c.Query("utm_source"),
			Medium:   c.Query("utm_medium"),
			Campaign: c.Query("utm_campaign"),
			Term:     c.Query("utm_term"),
			Content:  c.Query("utm_content"),
		}),
		Referrer:  c.Get("Referer"),
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if err := h.eventService.Record(event); err != nil {
		// The view still renders; losing one data point beats a broken page.
		slog.Error("failed to record profile view", "profile_id", profile.ID, "error", err)
	}

	return c.JSON(profile)
}

// GetLinks handles GET /api/public/links/:profileId - enabled links only.
func (h *PublicHandler) GetLinks(c *fiber.Ctx) error {
	profileID := c.Params("profileId")
	links, err := h.linkService.ListEnabled(profileID)
	if err != nil {
		slog.Error("failed to fetch public links", "profile_id", profileID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch links",
		})
	}
	return c.JSON(links)
}

// TrackLinkClick handles POST /api/track/link-click.
func (h *PublicHandler) TrackLinkClick(c *fiber.Ctx) error {
	var req dto.TrackLinkClickRequest
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

	linkID := req.LinkID
	event := &models.Event{
		ProfileID: req.ProfileID,
		EventType: models.EventLinkClick,
		LinkID:    &linkID,
		UTM:       utmJSON(req.UTM),
		Referrer:  req.Referrer,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if err := h.eventService.Record(event); err != nil {
		slog.Error("failed to track link click", "profile_id", req.ProfileID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to track event",
		})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// TrackEvent handles POST /api/track/event, the write path for the remaining
// enumerated event types (nfc_scan, wallet_add, contact_save, ...).
func (h *PublicHandler) TrackEvent(c *fiber.Ctx) error {
	var req dto.TrackEventRequest
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
	if !models.ValidEventType(req.EventType) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown event type",
		})
	}

	event := &models.Event{
		ProfileID: req.ProfileID,
		EventType: req.EventType,
		LinkID:    req.LinkID,
		UTM:       utmJSON(req.UTM),
		Referrer:  req.Referrer,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if req.Metadata != nil {
		event.Metadata = datatypes.JSON(req.Metadata)
	}
	if err := h.eventService.Record(event); err != nil {
		slog.Error("failed to track event", "profile_id", req.ProfileID, "event_type", req.EventType, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to track event",
		})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// QRCode handles GET /api/qr/:username - a base64 PNG encoding the public
// profile URL.
func (h *PublicHandler) QRCode(c *fiber.Ctx) error {
	username := c.Params("username")
	if _, err := h.visibleProfile(username); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		slog.Error("failed to fetch profile for QR code", "username", username, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate QR code",
		})
	}

	profileURL := h.profileURL(username)
	png, err := qrcode.Encode(profileURL, qrcode.Medium, 400)
	if err != nil {
		slog.Error("failed to generate QR code", "username", username, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate QR code",
		})
	}

	return c.JSON(dto.QRCodeResponse{
		QRCode:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ProfileURL: profileURL,
	})
}

// VCard handles GET /api/vcard/:username - a text/vcard attachment.
func (h *PublicHandler) VCard(c *fiber.Ctx) error {
	username := c.Params("username")
	profile, err := h.visibleProfile(username)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		slog.Error("failed to fetch profile for vCard", "username", username, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate vCard",
		})
	}

	c.Set("Content-Type", "text/vcard")
	c.Set("Content-Disposition", `attachment; filename="`+username+`.vcf"`)
	return c.SendString(vcard.Build(profile, h.profileURL(username)))
}

// utmJSON marshals UTM parameters, returning nil when nothing was captured so
// the column stays NULL instead of storing an empty object.
func utmJSON(utm *dto.UTMParams) datatypes.JSON {
	if utm == nil || utm.IsZero() {
		return nil
	}
	b, err := json.Marshal(utm)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
