package platforms

import (
	"context"
	"errors"
	"fmt"

	config "smmagent/configs"
	"smmagent/internal/models"
)

type FacebookAdapter struct {
	accessToken string
	pageID      string
}

func NewFacebookAdapter(cfg config.Config) *FacebookAdapter {
	return &FacebookAdapter{
		accessToken: cfg.Facebook.AccessToken,
		pageID:      cfg.Facebook.PageID,
	}
}

func (a *FacebookAdapter) Name() string { return models.PlatformFacebook }

func (a *FacebookAdapter) Connect(ctx context.Context) error {
	if a.accessToken == "" || a.pageID == "" {
		return errors.New("facebook access token or page id is not configured")
	}
	return nil
}

func (a *FacebookAdapter) Publish(ctx context.Context, post *models.Post) (*PublishResult, error) {
	if err := a.Connect(ctx); err != nil {
		return nil, err
	}

	id := contentHash(post.Text)
	return &PublishResult{
		PostID: fmt.Sprintf("fb_%d", id),
		URL:    fmt.Sprintf("https://facebook.com/%s/posts/%d", a.pageID, id),
	}, nil
}

func (a *FacebookAdapter) GetAnalytics(ctx context.Context, postID string) (map[string]interface{}, error) {
	return map[string]interface{}{
		"likes":       200,
		"comments":    30,
		"shares":      15,
		"reach":       2000,
		"impressions": 2500,
	}, nil
}

func (a *FacebookAdapter) DeletePost(ctx context.Context, postID string) error {
	return nil
}

func (a *FacebookAdapter) UpdatePost(ctx context.Context, postID, newText string) error {
	return nil
}
