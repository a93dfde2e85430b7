package transfer

import "smmagent/internal/models"

type GenerationRequest struct {
	ProductID     string   `json:"product_id"`
	ContentType   string   `json:"content_type"`
	PostCount     int      `json:"post_count"`
	Platforms     []string `json:"platforms"`
	Tone          string   `json:"tone"`
	IncludeImages *bool    `json:"include_images"`
	IncludeVideos *bool    `json:"include_videos"`
}

type OptimizeRequest struct {
	Post     *models.Post `json:"post"`
	Platform string       `json:"platform"`
}

type AnalyzeRequest struct {
	Post *models.Post `json:"post"`
}
