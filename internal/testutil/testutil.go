// Package testutil provides an in-memory database and fixtures for service
// and handler tests.
package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory sqlite database with foreign keys
// enforced and all models migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Link{},
		&models.Event{},
		&models.Webhook{},
		&models.WebhookDelivery{},
		&models.SystemLog{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateProfile inserts a minimal public profile owned by userID.
func CreateProfile(t *testing.T, db *gorm.DB, userID, username string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		ID:          userID,
		Username:    username,
		DisplayName: "Test User",
		IsPublic:    true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreateLink inserts an enabled link at the given position.
func CreateLink(t *testing.T, db *gorm.DB, profileID, title string, position int) *models.Link {
	t.Helper()
	link := &models.Link{
		ID:        uuid.New(),
		ProfileID: profileID,
		Title:     title,
		URL:       "https://example.com/" + title,
		Position:  position,
		Enabled:   true,
	}
	require.NoError(t, db.Create(link).Error)
	return link
}

// CreateEvent inserts an event with an explicit creation timestamp.
func CreateEvent(t *testing.T, db *gorm.DB, profileID, eventType string, linkID *uuid.UUID, createdAt time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		ProfileID: profileID,
		EventType: eventType,
		LinkID:    linkID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// CreateWebhook inserts an enabled webhook subscribed to the given event types.
func CreateWebhook(t *testing.T, db *gorm.DB, profileID, url, secret string, events ...string) *models.Webhook {
	t.Helper()
	eventsJSON, err := json.Marshal(events)
	require.NoError(t, err)
	webhook := &models.Webhook{
		ID:        uuid.New(),
		ProfileID: profileID,
		Name:      "test webhook",
		URL:       url,
		Secret:    secret,
		Events:    datatypes.JSON(eventsJSON),
		Enabled:   true,
	}
	require.NoError(t, db.Create(webhook).Error)
	return webhook
}
