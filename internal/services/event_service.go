package services

import (
	"fmt"

	"github.com/cardtaphq/cardtap-backend/internal/models"
	"gorm.io/gorm"
)

// Notifier receives every recorded event for asynchronous webhook delivery.
// It must not block the request path.
type Notifier interface {
	Notify(event *models.Event)
}

type EventService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewEventService(db *gorm.DB, notifier Notifier) *EventService {
	return &EventService{db: db, notifier: notifier}
}

// Record appends an interaction event and hands it to the notifier. Events
// are immutable once written.
func (s *EventService) Record(event *models.Event) error {
	if err := s.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	if s.notifier != nil {
		s.notifier.Notify(event)
	}
	return nil
}

// ListByProfile returns the most recent events for a profile, newest first.
func (s *EventService) ListByProfile(profileID string, limit int) ([]models.Event, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	var events []models.Event
	if err := s.db.Where("profile_id = ?", profileID).
		Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}
