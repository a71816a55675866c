package services

import (
	"errors"
	"fmt"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLinkNotFound = errors.New("link not found")

type LinkService struct {
	db *gorm.DB
}

func NewLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db}
}

func (s *LinkService) List(profileID string) ([]models.Link, error) {
	var links []models.Link
	if err := s.db.Where("profile_id = ?", profileID).
		Order("position, created_at").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}
	return links, nil
}

// ListEnabled returns only enabled links, for the public profile page.
func (s *LinkService) ListEnabled(profileID string) ([]models.Link, error) {
	var links []models.Link
	if err := s.db.Where("profile_id = ? AND enabled = ?", profileID, true).
		Order("position, created_at").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}
	return links, nil
}

func (s *LinkService) Create(profileID string, req *dto.CreateLinkRequest) (*models.Link, error) {
	link := models.Link{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Position:    req.Position,
		Enabled:     true,
	}
	if req.Enabled != nil {
		link.Enabled = *req.Enabled
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return &link, nil
}

func (s *LinkService) Update(profileID string, id uuid.UUID, req *dto.UpdateLinkRequest) (*models.Link, error) {
	var link models.Link
	if err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to fetch link: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	if len(updates) > 0 {
		if err := s.db.Model(&link).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update link: %w", err)
		}
	}
	return &link, nil
}

func (s *LinkService) Delete(profileID string, id uuid.UUID) error {
	result := s.db.Where("id = ? AND profile_id = ?", id, profileID).Delete(&models.Link{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Reorder rewrites each listed link's position to its index in linkIDs, in a
// single transaction so a failure cannot leave partial ordering. Links not in
// the list keep their position. Ids not owned by profileID are ignored.
func (s *LinkService) Reorder(profileID string, linkIDs []uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range linkIDs {
			if err := tx.Model(&models.Link{}).
				Where("id = ? AND profile_id = ?", id, profileID).
				Update("position", i).Error; err != nil {
				return fmt.Errorf("failed to reorder link %s: %w", id, err)
			}
		}
		return nil
	})
}
