package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrWebhookNotFound = errors.New("webhook not found")

type WebhookService struct {
	db *gorm.DB
}

func NewWebhookService(db *gorm.DB) *WebhookService {
	return &WebhookService{db: db}
}

func (s *WebhookService) List(profileID string) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	if err := s.db.Where("profile_id = ?", profileID).
		Order("created_at").Find(&webhooks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch webhooks: %w", err)
	}
	return webhooks, nil
}

func (s *WebhookService) Get(profileID string, id uuid.UUID) (*models.Webhook, error) {
	var webhook models.Webhook
	if err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&webhook).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebhookNotFound
		}
		return nil, fmt.Errorf("failed to fetch webhook: %w", err)
	}
	return &webhook, nil
}

// Create stores a webhook with a server-generated secret. Clients never
// supply the secret; the caller reads it back from the returned model.
func (s *WebhookService) Create(profileID string, req *dto.CreateWebhookRequest) (*models.Webhook, error) {
	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}

	eventsJSON, err := json.Marshal(req.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to encode events: %w", err)
	}

	webhook := models.Webhook{
		ID:        uuid.New(),
		ProfileID: profileID,
		Name:      req.Name,
		URL:       req.URL,
		Secret:    secret,
		Events:    datatypes.JSON(eventsJSON),
		Enabled:   true,
	}
	if req.Enabled != nil {
		webhook.Enabled = *req.Enabled
	}

	if err := s.db.Create(&webhook).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	return &webhook, nil
}

// Update applies a partial update. The secret is immutable.
func (s *WebhookService) Update(profileID string, id uuid.UUID, req *dto.UpdateWebhookRequest) (*models.Webhook, error) {
	webhook, err := s.Get(profileID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Events != nil {
		eventsJSON, err := json.Marshal(req.Events)
		if err != nil {
			return nil, fmt.Errorf("failed to encode events: %w", err)
		}
		updates["events"] = datatypes.JSON(eventsJSON)
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	if len(updates) > 0 {
		if err := s.db.Model(webhook).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update webhook: %w", err)
		}
	}
	return webhook, nil
}

func (s *WebhookService) Delete(profileID string, id uuid.UUID) error {
	result := s.db.Where("id = ? AND profile_id = ?", id, profileID).Delete(&models.Webhook{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete webhook: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWebhookNotFound
	}
	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
