package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"smmagent/internal/ai"
	"smmagent/internal/models"
	"smmagent/internal/repository"
	"smmagent/internal/transfer"
	"smmagent/pkg/utils"
)

const (
	defaultPostCount    = 5
	defaultTone         = "professional"
	defaultHashtagCount = 5
	defaultPostingTime  = "10:00"
)

// platformLimits holds the per-platform content constraints applied when
// optimizing a post.
var platformLimits = map[string]struct {
	MaxTextLength int
	MaxHashtags   int
}{
	models.PlatformInstagram: {2200, 30},
	models.PlatformFacebook:  {63206, 5},
	models.PlatformTwitter:   {280, 3},
	models.PlatformTelegram:  {4096, 10},
}

type ContentService interface {
	GenerateContent(ctx context.Context, req *transfer.GenerationRequest) (*models.GeneratedContent, error)
	GeneratePosts(ctx context.Context, productID string, count int, tone string) ([]*models.Post, error)
	GenerateImages(ctx context.Context, productID string, count int) ([]string, error)
	GenerateVideoScripts(ctx context.Context, productID string, count int) ([]string, error)
	OptimizeForPlatform(post *models.Post, platform string) *models.Post
	Analyze(ctx context.Context, text string) (map[string]interface{}, error)
	Calendar(ctx context.Context, productID string, days, postsPerDay int) ([]*models.CalendarEntry, error)
}

type contentService struct {
	ai    ai.Client
	pr    repository.ProductRepository
	media *MediaService
}

// NewContentService builds the generator. media may be nil when no R2 bucket
// is configured; generated images then keep their upstream URLs.
func NewContentService(client ai.Client, pr repository.ProductRepository, media *MediaService) ContentService {
	return &contentService{ai: client, pr: pr, media: media}
}

func (s *contentService) product(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (s *contentService) GenerateContent(ctx context.Context, req *transfer.GenerationRequest) (*models.GeneratedContent, error) {
	var err error

	if req == nil {
		err = errors.New("generation request is nil")
		slog.Info(err.Error())
		return nil, err
	}

	product, err := s.product(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// The product stops being editable once content has been derived from it.
	if err := s.pr.Lock(ctx, product.ID); err != nil {
		return nil, err
	}

	count := req.PostCount
	if count <= 0 {
		count = defaultPostCount
	}
	if count > 20 {
		count = 20
	}
	tone := req.Tone
	if tone == "" {
		tone = defaultTone
	}
	targets := req.Platforms
	if len(targets) == 0 {
		targets = product.Platforms
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = models.ContentTypePost
	}

	texts, err := s.generatePostTexts(ctx, product, count, tone)
	if err != nil {
		return nil, fmt.Errorf("error generating posts: %w", err)
	}

	hashtags, err := s.generateHashtags(ctx, product, defaultHashtagCount)
	if err != nil {
		return nil, fmt.Errorf("error generating hashtags: %w", err)
	}

	content := &models.GeneratedContent{
		Hashtags:     hashtags,
		Images:       []string{},
		VideoScripts: []string{},
	}

	for _, text := range texts {
		id, err := utils.NewID()
		if err != nil {
			return nil, err
		}
		content.Posts = append(content.Posts, &models.Post{
			ID:          id,
			ProductID:   product.ID,
			Text:        text,
			Hashtags:    hashtags,
			Platforms:   targets,
			ContentType: contentType,
			Status:      models.PostStatusDraft,
		})
	}

	// Optional artifacts degrade gracefully: a failed image or video script
	// is recorded but never aborts the text result.
	if req.IncludeImages == nil || *req.IncludeImages {
		s.attachImage(ctx, product, content)
	}
	if req.IncludeVideos != nil && *req.IncludeVideos {
		script, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.VideoScriptPrompt(product))
		if err != nil {
			content.Failures = append(content.Failures, models.ArtifactError{Kind: "video_script", Error: err.Error()})
		} else {
			content.VideoScripts = append(content.VideoScripts, script)
		}
	}

	return content, nil
}

func (s *contentService) attachImage(ctx context.Context, product *models.Product, content *models.GeneratedContent) {
	prompt, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.ImagePrompt(product))
	if err != nil {
		content.Failures = append(content.Failures, models.ArtifactError{Kind: "image_prompt", Error: err.Error()})
		return
	}

	imageURL, err := s.ai.GenerateImage(ctx, prompt)
	if err != nil {
		content.Failures = append(content.Failures, models.ArtifactError{Kind: "image", Error: err.Error()})
		return
	}

	if s.media != nil && s.media.Enabled() {
		mirrored, err := s.media.MirrorImage(ctx, imageURL)
		if err != nil {
			log.Printf("Error mirroring image to R2, keeping upstream URL: %v", err)
		} else {
			imageURL = mirrored
		}
	}

	content.Images = append(content.Images, imageURL)
	if len(content.Posts) > 0 {
		content.Posts[0].ImageURL = imageURL
	}
}

func (s *contentService) GeneratePosts(ctx context.Context, productID string, count int, tone string) ([]*models.Post, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.pr.Lock(ctx, product.ID); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = defaultPostCount
	}
	if tone == "" {
		tone = defaultTone
	}

	texts, err := s.generatePostTexts(ctx, product, count, tone)
	if err != nil {
		return nil, fmt.Errorf("error generating posts: %w", err)
	}

	hashtags, err := s.generateHashtags(ctx, product, defaultHashtagCount)
	if err != nil {
		return nil, fmt.Errorf("error generating hashtags: %w", err)
	}

	posts := make([]*models.Post, 0, len(texts))
	for _, text := range texts {
		id, err := utils.NewID()
		if err != nil {
			return nil, err
		}
		posts = append(posts, &models.Post{
			ID:          id,
			ProductID:   product.ID,
			Text:        text,
			Hashtags:    hashtags,
			Platforms:   product.Platforms,
			ContentType: models.ContentTypePost,
			Status:      models.PostStatusDraft,
		})
	}
	return posts, nil
}

func (s *contentService) GenerateImages(ctx context.Context, productID string, count int) ([]string, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.pr.Lock(ctx, product.ID); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = 3
	}

	prompt, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.ImagePrompt(product))
	if err != nil {
		return nil, fmt.Errorf("error generating image prompt: %w", err)
	}

	images := make([]string, 0, count)
	for i := 0; i < count; i++ {
		imageURL, err := s.ai.GenerateImage(ctx, prompt)
		if err != nil {
			log.Printf("Error generating image: %v", err)
			continue
		}
		images = append(images, imageURL)
	}
	return images, nil
}

func (s *contentService) GenerateVideoScripts(ctx context.Context, productID string, count int) ([]string, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.pr.Lock(ctx, product.ID); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = 2
	}

	scripts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		script, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.VideoScriptPrompt(product))
		if err != nil {
			log.Printf("Error generating video script: %v", err)
			continue
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

// OptimizeForPlatform applies the platform's text and hashtag limits to the
// post in place and returns it.
func (s *contentService) OptimizeForPlatform(post *models.Post, platform string) *models.Post {
	lim, ok := platformLimits[platform]
	if !ok {
		lim.MaxTextLength = 1000
		lim.MaxHashtags = 5
	}

	runes := []rune(post.Text)
	if len(runes) > lim.MaxTextLength {
		post.Text = string(runes[:lim.MaxTextLength-3]) + "..."
	}
	if len(post.Hashtags) > lim.MaxHashtags {
		post.Hashtags = post.Hashtags[:lim.MaxHashtags]
	}
	return post
}

func (s *contentService) Analyze(ctx context.Context, text string) (map[string]interface{}, error) {
	raw, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.AnalyzePrompt(text))
	if err != nil {
		return nil, fmt.Errorf("error analyzing content: %w", err)
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return map[string]interface{}{
			"analysis":        raw,
			"score":           7,
			"recommendations": []string{"Check the grammar", "Add more emoji"},
		}, nil
	}
	return result, nil
}

func (s *contentService) Calendar(ctx context.Context, productID string, days, postsPerDay int) ([]*models.CalendarEntry, error) {
	if days <= 0 {
		days = 30
	}
	if postsPerDay <= 0 {
		postsPerDay = 1
	}

	posts, err := s.GeneratePosts(ctx, productID, days*postsPerDay, defaultTone)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]*models.CalendarEntry, 0, len(posts))
	for i, post := range posts {
		date := now.AddDate(0, 0, i/postsPerDay)
		entries = append(entries, &models.CalendarEntry{
			Date:      date.Format("2006-01-02"),
			Time:      defaultPostingTime,
			Post:      post,
			Platforms: post.Platforms,
		})
	}
	return entries, nil
}

func (s *contentService) generatePostTexts(ctx context.Context, product *models.Product, count int, tone string) ([]string, error) {
	raw, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.PostsPrompt(product, count, tone))
	if err != nil {
		return nil, err
	}
	return splitPosts(raw, count), nil
}

func (s *contentService) generateHashtags(ctx context.Context, product *models.Product, count int) ([]string, error) {
	raw, err := s.ai.GenerateText(ctx, ai.SystemPrompt, ai.HashtagsPrompt(product, count))
	if err != nil {
		return nil, err
	}
	return parseHashtags(raw, count), nil
}

// splitPosts cuts the model response into individual post texts. Falls back
// to blank-line splitting when the model skipped the separator.
func splitPosts(raw string, count int) []string {
	var chunks []string
	if strings.Contains(raw, ai.PostSeparator) {
		chunks = strings.Split(raw, ai.PostSeparator)
	} else {
		chunks = strings.Split(raw, "\n\n")
	}

	posts := make([]string, 0, count)
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		posts = append(posts, chunk)
		if len(posts) == count {
			break
		}
	}
	return posts
}

func parseHashtags(raw string, count int) []string {
	tags := make([]string, 0, count)
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimPrefix(tag, "#")
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == count {
			break
		}
	}
	return tags
}
