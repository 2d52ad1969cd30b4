package domain

import (
	"time"

	"github.com/google/uuid"
)

// Variant distinguishes the two products sharing the redirect mechanics:
// classic short codes and link-in-bio entries addressed by opaque IDs.
type Variant string

const (
	VariantTinyURL  Variant = "tinyurl"
	VariantLinktree Variant = "linktree"
)

// MaxLongURLLength bounds stored destination URLs.
const MaxLongURLLength = 2048

type Link struct {
	ID           uuid.UUID `json:"id"`
	Variant      Variant   `json:"variant"`
	Name         string    `json:"name,omitempty"`
	ShortCode    string    `json:"short_code,omitempty"`
	LongURL      string    `json:"long_url"`
	Owner        string    `json:"owner,omitempty"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LinkWithClicks is a Link joined with its lifetime click total, used by
// listing endpoints.
type LinkWithClicks struct {
	Link
	ClickCount int64 `json:"click_count"`
}

type ShortenRequest struct {
	LongURL    string `json:"url" validate:"required,url,max=2048"`
	CustomCode string `json:"custom_code" validate:"omitempty,min=4,max=20,shortcode"`
	Owner      string `json:"owner" validate:"omitempty,max=100"`
	WantQR     bool   `json:"want_qr"`
}

type CreateLinkRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	LongURL      string `json:"url" validate:"required,url,max=2048"`
	Owner        string `json:"owner" validate:"required,max=100"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

// UpdateLinkRequest carries a partial update; nil fields are left untouched.
type UpdateLinkRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	LongURL      *string `json:"url" validate:"omitempty,url,max=2048"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,gte=0"`
}
