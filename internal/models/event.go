package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interaction event types recorded against a profile.
const (
	EventProfileView     = "profile_view"
	EventLinkClick       = "link_click"
	EventNFCScan         = "nfc_scan"
	EventWalletAdd       = "wallet_add"
	EventContactSave     = "contact_save"
	EventContactExchange = "contact_exchange"
	EventSocialClick     = "social_click"
)

// EventTypes lists every recordable event type.
var EventTypes = []string{
	EventProfileView,
	EventLinkClick,
	EventNFCScan,
	EventWalletAdd,
	EventContactSave,
	EventContactExchange,
	EventSocialClick,
}

// ValidEventType reports whether t is one of the enumerated event types.
func ValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Event is an immutable, append-only interaction record. Rows are never
// updated or deleted by the application; they only go away when the owning
// profile is deleted.
type Event struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID string         `gorm:"type:varchar(64);not null;index" json:"profileId"`
	Profile   Profile        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EventType string         `gorm:"size:32;not null;index" json:"eventType"`
	LinkID    *uuid.UUID     `gorm:"type:uuid" json:"linkId"`
	UTM       datatypes.JSON `gorm:"type:jsonb" json:"utm"`
	Referrer  string         `gorm:"size:1024" json:"referrer"`
	IP        string         `gorm:"size:64" json:"ip"`
	UserAgent string         `gorm:"size:512" json:"userAgent"`
	Country   string         `gorm:"size:64" json:"country"`
	Device    string         `gorm:"size:64" json:"device"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}
