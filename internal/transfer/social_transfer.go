package transfer

import "smmagent/internal/models"

type PublishRequest struct {
	Post      *models.Post `json:"post"`
	Platforms []string     `json:"platforms"`
}

type ScheduleRequest struct {
	Posts        []*models.Post `json:"posts"`
	ScheduleType string         `json:"schedule_type"`
	Platforms    []string       `json:"platforms"`
}

type PostUpdateRequest struct {
	NewText string `json:"new_text"`
}
