package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type UTMParams struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
	Term     string `json:"term,omitempty"`
	Content  string `json:"content,omitempty"`
}

// IsZero reports whether no UTM field is set.
func (u UTMParams) IsZero() bool {
	return u == UTMParams{}
}

type TrackLinkClickRequest struct {
	LinkID    uuid.UUID  `json:"linkId" validate:"required"`
	ProfileID string     `json:"profileId" validate:"required"`
	UTM       *UTMParams `json:"utm"`
	Referrer  string     `json:"referrer"`
}

type TrackEventRequest struct {
	ProfileID string          `json:"profileId" validate:"required"`
	EventType string          `json:"eventType" validate:"required"`
	LinkID    *uuid.UUID      `json:"linkId"`
	UTM       *UTMParams      `json:"utm"`
	Referrer  string          `json:"referrer"`
	Metadata  json.RawMessage `json:"metadata"`
}
