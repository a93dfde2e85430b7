package models

import "time"

const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformTelegram  = "telegram"
)

const (
	ContentTypePost     = "post"
	ContentTypeStory    = "story"
	ContentTypeReel     = "reel"
	ContentTypeVideo    = "video"
	ContentTypeCarousel = "carousel"
)

type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	TargetAudience string    `json:"target_audience"`
	Platforms      []string  `json:"platforms"`
	Price          float64   `json:"price,omitempty"`
	Category       string    `json:"category,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ContentPlan struct {
	ProductID   string    `json:"product_id"`
	ContentType string    `json:"content_type"`
	PostCount   int       `json:"post_count"`
	Platforms   []string  `json:"platforms"`
	CreatedAt   time.Time `json:"created_at"`
}
