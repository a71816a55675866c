package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Webhook is a per-profile subscriber endpoint. The secret is generated
// server-side on creation and never marshals into API responses; the create
// handler copies it into the response exactly once.
type Webhook struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string         `gorm:"type:varchar(64);not null;index" json:"profileId"`
	Profile   Profile        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	URL       string         `gorm:"size:1024;not null" json:"url"`
	Secret    string         `gorm:"size:128;not null" json:"-"`
	Events    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"events"`
	Enabled   bool           `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// WebhookDelivery is one delivery attempt against a webhook endpoint.
// Append-only audit trail; Status is 0 when no HTTP response was received.
type WebhookDelivery struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	WebhookID  uuid.UUID `gorm:"type:uuid;not null;index" json:"webhookId"`
	Webhook    Webhook   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EventID    *uint64   `json:"eventId"`
	Status     int       `json:"status"`
	Attempt    int       `gorm:"default:1" json:"attempt"`
	ResponseMs int       `json:"responseMs"`
	Error      string    `gorm:"type:text" json:"error"`
	CreatedAt  time.Time `json:"createdAt"`
}
