package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWebhookRequest struct {
	Name    string   `json:"name" validate:"required,max=255"`
	URL     string   `json:"url" validate:"required,url"`
	Events  []string `json:"events" validate:"required,min=1,dive,oneof=profile_view link_click nfc_scan wallet_add contact_save contact_exchange social_click"`
	Enabled *bool    `json:"enabled"`
}

type UpdateWebhookRequest struct {
	Name    *string  `json:"name" validate:"omitempty,max=255"`
	URL     *string  `json:"url" validate:"omitempty,url"`
	Events  []string `json:"events" validate:"omitempty,min=1,dive,oneof=profile_view link_click nfc_scan wallet_add contact_save contact_exchange social_click"`
	Enabled *bool    `json:"enabled"`
}

// CreateWebhookResponse is the only place the generated secret leaves the
// server; list and get responses never carry it.
type CreateWebhookResponse struct {
	ID        uuid.UUID `json:"id"`
	ProfileID string    `json:"profileId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Secret    string    `json:"secret"`
	Events    []string  `json:"events"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

type TestWebhookResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}
