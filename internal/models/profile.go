package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile is a user's public digital business card. Its primary key is the
// owner's user id as issued by the external identity provider, so a user has
// at most one profile.
type Profile struct {
	ID          string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username    string         `gorm:"size:30;not null;uniqueIndex" json:"username"`
	DisplayName string         `gorm:"size:255" json:"displayName"`
	Title       string         `gorm:"size:255" json:"title"`
	Bio         string         `gorm:"type:text" json:"bio"`
	PhotoURL    string         `gorm:"size:1024" json:"photoUrl"`
	Email       string         `gorm:"size:255" json:"email"`
	Phone       string         `gorm:"size:64" json:"phone"`
	Address     string         `gorm:"type:text" json:"address"`
	Website     string         `gorm:"size:1024" json:"website"`
	Theme       datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"theme"`
	Socials     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"socials"`
	SEO         datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"seo"`
	IsPublic    bool           `gorm:"default:true" json:"isPublic"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
