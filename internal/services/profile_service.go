package services

import (
	"errors"
	"fmt"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username is already taken")
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}

// Create inserts the caller's profile. The username pre-check is an optimistic
// hint; the unique index on username is authoritative and a duplicate-key
// error from the insert is reported as ErrUsernameTaken.
func (s *ProfileService) Create(userID string, req *dto.CreateProfileRequest) (*models.Profile, error) {
	available, err := s.CheckUsername(req.Username, userID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUsernameTaken
	}

	profile := models.Profile{
		ID:          userID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Title:       req.Title,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Website:     req.Website,
		IsPublic:    true,
	}
	if req.Theme != nil {
		profile.Theme = datatypes.JSON(req.Theme)
	}
	if req.Socials != nil {
		profile.Socials = datatypes.JSON(req.Socials)
	}
	if req.SEO != nil {
		profile.SEO = datatypes.JSON(req.SEO)
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// Update applies a partial update to the caller's profile.
func (s *ProfileService) Update(userID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != profile.Username {
		available, err := s.CheckUsername(*req.Username, userID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, ErrUsernameTaken
		}
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Theme != nil {
		updates["theme"] = datatypes.JSON(req.Theme)
	}
	if req.Socials != nil {
		updates["socials"] = datatypes.JSON(req.Socials)
	}
	if req.SEO != nil {
		updates["seo"] = datatypes.JSON(req.SEO)
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return profile, nil
}

// Delete removes the profile; links, events and webhooks cascade at the
// storage layer.
func (s *ProfileService) Delete(userID string) error {
	result := s.db.Delete(&models.Profile{}, "id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// CheckUsername reports whether username is free. A row owned by excludeID
// does not count as a conflict, so a user keeping their own username passes.
func (s *ProfileService) CheckUsername(username, excludeID string) (bool, error) {
	var count int64
	q := s.db.Model(&models.Profile{}).Where("username = ?", username)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count == 0, nil
}
