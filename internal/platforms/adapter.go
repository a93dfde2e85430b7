package platforms

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"

	"smmagent/internal/models"
)

// ErrEditNotSupported is returned by adapters for platforms that do not allow
// editing an already published post.
var ErrEditNotSupported = errors.New("platform does not support editing posts")

type PublishResult struct {
	PostID string
	URL    string
}

// Adapter publishes and manages posts on one social network.
type Adapter interface {
	Name() string
	Connect(ctx context.Context) error
	Publish(ctx context.Context, post *models.Post) (*PublishResult, error)
	GetAnalytics(ctx context.Context, postID string) (map[string]interface{}, error)
	DeletePost(ctx context.Context, postID string) error
	UpdatePost(ctx context.Context, postID, newText string) error
}

// TestConnection attempts to connect and reports the result as a boolean
// instead of propagating the error.
func TestConnection(ctx context.Context, a Adapter) bool {
	return a.Connect(ctx) == nil
}

// APIError reports a non-2xx response from a platform API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform api error %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the request is worth retrying.
func (e *APIError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// contentHash derives a stable pseudo remote id from post text.
func contentHash(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32() % 1000000
}
