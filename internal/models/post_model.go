package models

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

type Post struct {
	ID            string                 `json:"id,omitempty"`
	ProductID     string                 `json:"product_id"`
	Title         string                 `json:"title,omitempty"`
	Text          string                 `json:"text"`
	Hashtags      []string               `json:"hashtags"`
	Platforms     []string               `json:"platforms"`
	ContentType   string                 `json:"content_type"`
	ScheduledTime *time.Time             `json:"scheduled_time,omitempty"`
	ImageURL      string                 `json:"image_url,omitempty"`
	VideoScript   string                 `json:"video_script,omitempty"`
	Status        string                 `json:"status"`
	PublishedAt   *time.Time             `json:"published_at,omitempty"`
	Analytics     map[string]interface{} `json:"analytics,omitempty"`
}

// PublishOutcome is the per-platform result of one publish attempt.
type PublishOutcome struct {
	Success bool   `json:"success"`
	PostID  string `json:"post_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ArtifactError records a failed optional artifact during content generation.
type ArtifactError struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type GeneratedContent struct {
	Posts        []*Post         `json:"posts"`
	Images       []string        `json:"images"`
	VideoScripts []string        `json:"video_scripts"`
	Hashtags     []string        `json:"hashtags"`
	Failures     []ArtifactError `json:"failures,omitempty"`
}

type CalendarEntry struct {
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Post      *Post    `json:"post"`
	Platforms []string `json:"platforms"`
}
