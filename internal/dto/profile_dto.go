package dto

import "encoding/json"

type CreateProfileRequest struct {
	Username    string          `json:"username" validate:"required,username"`
	DisplayName string          `json:"displayName"`
	Title       string          `json:"title"`
	Bio         string          `json:"bio"`
	PhotoURL    string          `json:"photoUrl" validate:"omitempty,url"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Website     string          `json:"website" validate:"omitempty,url"`
	Theme       json.RawMessage `json:"theme"`
	Socials     json.RawMessage `json:"socials"`
	SEO         json.RawMessage `json:"seo"`
	IsPublic    *bool           `json:"isPublic"`
}

// UpdateProfileRequest carries a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Username    *string         `json:"username" validate:"omitempty,username"`
	DisplayName *string         `json:"displayName"`
	Title       *string         `json:"title"`
	Bio         *string         `json:"bio"`
	PhotoURL    *string         `json:"photoUrl" validate:"omitempty,url"`
	Email       *string         `json:"email" validate:"omitempty,email"`
	Phone       *string         `json:"phone"`
	Address     *string         `json:"address"`
	Website     *string         `json:"website" validate:"omitempty,url"`
	Theme       json.RawMessage `json:"theme"`
	Socials     json.RawMessage `json:"socials"`
	SEO         json.RawMessage `json:"seo"`
	IsPublic    *bool           `json:"isPublic"`
}

type UsernameAvailabilityResponse struct {
	Available bool `json:"available"`
}

type QRCodeResponse struct {
	QRCode     string `json:"qrCode"`
	ProfileURL string `json:"profileUrl"`
}
