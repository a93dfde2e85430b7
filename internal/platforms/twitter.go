package platforms

import (
	"context"
	"errors"
	"fmt"

	config "smmagent/configs"
	"smmagent/internal/models"
)

type TwitterAdapter struct {
	apiKey            string
	apiSecret         string
	accessToken       string
	accessTokenSecret string
}

func NewTwitterAdapter(cfg config.Config) *TwitterAdapter {
	return &TwitterAdapter{
		apiKey:            cfg.Twitter.APIKey,
		apiSecret:         cfg.Twitter.APISecret,
		accessToken:       cfg.Twitter.AccessToken,
		accessTokenSecret: cfg.Twitter.AccessTokenSecret,
	}
}

func (a *TwitterAdapter) Name() string { return models.PlatformTwitter }

func (a *TwitterAdapter) Connect(ctx context.Context) error {
	if a.apiKey == "" || a.apiSecret == "" || a.accessToken == "" || a.accessTokenSecret == "" {
		return errors.New("twitter credentials are not configured")
	}
	return nil
}

func (a *TwitterAdapter) Publish(ctx context.Context, post *models.Post) (*PublishResult, error) {
	if err := a.Connect(ctx); err != nil {
		return nil, err
	}

	id := contentHash(post.Text)
	return &PublishResult{
		PostID: fmt.Sprintf("tw_%d", id),
		URL:    fmt.Sprintf("https://twitter.com/user/status/%d", id),
	}, nil
}

func (a *TwitterAdapter) GetAnalytics(ctx context.Context, postID string) (map[string]interface{}, error) {
	return map[string]interface{}{
		"likes":           100,
		"retweets":        20,
		"replies":         15,
		"impressions":     800,
		"engagement_rate": 0.05,
	}, nil
}

func (a *TwitterAdapter) DeletePost(ctx context.Context, postID string) error {
	return nil
}

func (a *TwitterAdapter) UpdatePost(ctx context.Context, postID, newText string) error {
	return ErrEditNotSupported
}
