package dto

import "github.com/google/uuid"

type CreateLinkRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	Enabled     *bool  `json:"enabled"`
}

type UpdateLinkRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	Enabled     *bool   `json:"enabled"`
}

type ReorderLinksRequest struct {
	LinkIDs []uuid.UUID `json:"linkIds" validate:"required,min=1"`
}
