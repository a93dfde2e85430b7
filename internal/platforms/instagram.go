package platforms

import (
	"context"
	"errors"
	"fmt"

	config "smmagent/configs"
	"smmagent/internal/models"
)

// InstagramAdapter is a stub integration: it validates credentials and
// produces deterministic remote ids derived from the post text.
type InstagramAdapter struct {
	username string
	password string
}

func NewInstagramAdapter(cfg config.Config) *InstagramAdapter {
	return &InstagramAdapter{
		username: cfg.Instagram.Username,
		password: cfg.Instagram.Password,
	}
}

func (a *InstagramAdapter) Name() string { return models.PlatformInstagram }

func (a *InstagramAdapter) Connect(ctx context.Context) error {
	if a.username == "" || a.password == "" {
		return errors.New("instagram credentials are not configured")
	}
	return nil
}

func (a *InstagramAdapter) Publish(ctx context.Context, post *models.Post) (*PublishResult, error) {
	if err := a.Connect(ctx); err != nil {
		return nil, err
	}

	id := contentHash(post.Text)
	return &PublishResult{
		PostID: fmt.Sprintf("ig_%d", id),
		URL:    fmt.Sprintf("https://instagram.com/p/%d", id),
	}, nil
}

func (a *InstagramAdapter) GetAnalytics(ctx context.Context, postID string) (map[string]interface{}, error) {
	return map[string]interface{}{
		"likes":       150,
		"comments":    25,
		"shares":      10,
		"reach":       1000,
		"impressions": 1200,
	}, nil
}

func (a *InstagramAdapter) DeletePost(ctx context.Context, postID string) error {
	return nil
}

func (a *InstagramAdapter) UpdatePost(ctx context.Context, postID, newText string) error {
	return ErrEditNotSupported
}
