package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is a user-curated outbound URL shown on the public profile page.
// Position drives display order; the reorder operation rewrites positions in
// bulk.
type Link struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   string    `gorm:"type:varchar(64);not null;index" json:"profileId"`
	Profile     Profile   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	Position    int       `gorm:"default:0" json:"position"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
