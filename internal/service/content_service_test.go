package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smmagent/internal/ai"
	"smmagent/internal/models"
	"smmagent/internal/repository"
	"smmagent/internal/transfer"
)

// scriptedAI routes prompts to canned responses by substring match on the
// prompt, so one fake serves posts, hashtags and image prompts at once.
type scriptedAI struct {
	textFn  func(prompt string) (string, error)
	imageFn func() (string, error)
}

func (s *scriptedAI) GenerateText(_ context.Context, _ string, prompt string) (string, error) {
	return s.textFn(prompt)
}

func (s *scriptedAI) GenerateImage(_ context.Context, _ string) (string, error) {
	if s.imageFn != nil {
		return s.imageFn()
	}
	return "https://cdn.example.com/gen.png", nil
}

func defaultTextFn(prompt string) (string, error) {
	if strings.Contains(prompt, "hashtags") {
		return "#go, marketing, , #launch", nil
	}
	return "Post one" + ai.PostSeparator + "Post two" + ai.PostSeparator + "Post three", nil
}

func seededRepo(t *testing.T) (repository.ProductRepository, *models.Product) {
	t.Helper()
	pr := repository.NewProductRepository()
	product := &models.Product{
		Name:        "Widget",
		Description: "A widget for widgets",
		Platforms:   []string{"instagram", "telegram"},
	}
	_, err := pr.Create(context.Background(), product)
	require.NoError(t, err)
	return pr, product
}

func TestGenerateContent(t *testing.T) {
	pr, product := seededRepo(t)
	cs := NewContentService(&scriptedAI{textFn: defaultTextFn}, pr, nil)

	content, err := cs.GenerateContent(context.Background(), &transfer.GenerationRequest{
		ProductID: product.ID,
		PostCount: 3,
	})

	require.NoError(t, err)
	require.Len(t, content.Posts, 3)
	assert.Empty(t, content.Failures)
	assert.Equal(t, []string{"go", "marketing", "launch"}, content.Hashtags)

	for _, post := range content.Posts {
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, product.ID, post.ProductID)
		assert.Equal(t, models.PostStatusDraft, post.Status)
		assert.Equal(t, product.Platforms, post.Platforms)
	}

	// Images default to on; the first post carries the generated image.
	require.Len(t, content.Images, 1)
	assert.Equal(t, content.Images[0], content.Posts[0].ImageURL)

	// The source product is locked once content exists.
	_, err = NewProductService(pr).Update(context.Background(), product.ID, &transfer.ProductUpdate{})
	assert.ErrorIs(t, err, repository.ErrProductLocked)
}

func TestGenerateContentImageFailureIsPartial(t *testing.T) {
	pr, product := seededRepo(t)
	cs := NewContentService(&scriptedAI{
		textFn:  defaultTextFn,
		imageFn: func() (string, error) { return "", errors.New("image model down") },
	}, pr, nil)

	content, err := cs.GenerateContent(context.Background(), &transfer.GenerationRequest{
		ProductID: product.ID,
		PostCount: 2,
	})

	require.NoError(t, err)
	assert.Len(t, content.Posts, 2)
	assert.Empty(t, content.Images)
	require.Len(t, content.Failures, 1)
	assert.Equal(t, "image", content.Failures[0].Kind)
	assert.Contains(t, content.Failures[0].Error, "image model down")
}

func TestGenerateContentPostFailureAborts(t *testing.T) {
	pr, product := seededRepo(t)
	cs := NewContentService(&scriptedAI{
		textFn: func(string) (string, error) { return "", errors.New("model down") },
	}, pr, nil)

	_, err := cs.GenerateContent(context.Background(), &transfer.GenerationRequest{ProductID: product.ID})
	assert.Error(t, err)
}

func TestGenerateContentUnknownProduct(t *testing.T) {
	pr := repository.NewProductRepository()
	cs := NewContentService(&scriptedAI{textFn: defaultTextFn}, pr, nil)

	_, err := cs.GenerateContent(context.Background(), &transfer.GenerationRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestGenerateContentCountClamp(t *testing.T) {
	pr, product := seededRepo(t)

	many := make([]string, 40)
	for i := range many {
		many[i] = "Post"
	}
	cs := NewContentService(&scriptedAI{
		textFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "hashtags") {
				return "#go", nil
			}
			return strings.Join(many, ai.PostSeparator), nil
		},
	}, pr, nil)

	content, err := cs.GenerateContent(context.Background(), &transfer.GenerationRequest{
		ProductID: product.ID,
		PostCount: 100,
	})

	require.NoError(t, err)
	assert.Len(t, content.Posts, 20)
}

func TestGenerationLocksProductOnEveryPath(t *testing.T) {
	cases := []struct {
		name     string
		generate func(cs ContentService, productID string) error
	}{
		{"posts", func(cs ContentService, id string) error {
			_, err := cs.GeneratePosts(context.Background(), id, 2, "casual")
			return err
		}},
		{"images", func(cs ContentService, id string) error {
			_, err := cs.GenerateImages(context.Background(), id, 1)
			return err
		}},
		{"video_scripts", func(cs ContentService, id string) error {
			_, err := cs.GenerateVideoScripts(context.Background(), id, 1)
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pr, product := seededRepo(t)
			cs := NewContentService(&scriptedAI{textFn: defaultTextFn}, pr, nil)

			require.NoError(t, tc.generate(cs, product.ID))

			_, err := NewProductService(pr).Update(context.Background(), product.ID, &transfer.ProductUpdate{})
			assert.ErrorIs(t, err, repository.ErrProductLocked)
		})
	}
}

func TestOptimizeForPlatform(t *testing.T) {
	cs := NewContentService(&scriptedAI{textFn: defaultTextFn}, repository.NewProductRepository(), nil)

	post := &models.Post{
		Text:     strings.Repeat("a", 300),
		Hashtags: []string{"one", "two", "three", "four"},
	}

	got := cs.OptimizeForPlatform(post, models.PlatformTwitter)

	assert.Equal(t, 280, len([]rune(got.Text)))
	assert.True(t, strings.HasSuffix(got.Text, "..."))
	assert.Len(t, got.Hashtags, 3)

	short := &models.Post{Text: "short", Hashtags: []string{"one"}}
	got = cs.OptimizeForPlatform(short, models.PlatformInstagram)
	assert.Equal(t, "short", got.Text)
	assert.Len(t, got.Hashtags, 1)

	// Unknown platforms get the conservative fallback limits.
	long := &models.Post{Text: strings.Repeat("b", 1200)}
	got = cs.OptimizeForPlatform(long, "linkedin")
	assert.Equal(t, 1000, len([]rune(got.Text)))
}

func TestAnalyzeParsesJSON(t *testing.T) {
	pr, _ := seededRepo(t)
	cs := NewContentService(&scriptedAI{
		textFn: func(string) (string, error) {
			return "```json\n{\"score\": 9, \"analysis\": \"solid\"}\n```", nil
		},
	}, pr, nil)

	result, err := cs.Analyze(context.Background(), "some post")
	require.NoError(t, err)
	assert.Equal(t, float64(9), result["score"])
	assert.Equal(t, "solid", result["analysis"])
}

func TestAnalyzeFallsBackOnPlainText(t *testing.T) {
	pr, _ := seededRepo(t)
	cs := NewContentService(&scriptedAI{
		textFn: func(string) (string, error) { return "looks fine to me", nil },
	}, pr, nil)

	result, err := cs.Analyze(context.Background(), "some post")
	require.NoError(t, err)
	assert.Equal(t, "looks fine to me", result["analysis"])
	assert.Equal(t, 7, result["score"])
}

func TestCalendar(t *testing.T) {
	pr, product := seededRepo(t)
	cs := NewContentService(&scriptedAI{
		textFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "hashtags") {
				return "#go", nil
			}
			posts := make([]string, 6)
			for i := range posts {
				posts[i] = "Post"
			}
			return strings.Join(posts, ai.PostSeparator), nil
		},
	}, pr, nil)

	entries, err := cs.Calendar(context.Background(), product.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	// Two posts share each date.
	assert.Equal(t, entries[0].Date, entries[1].Date)
	assert.NotEqual(t, entries[1].Date, entries[2].Date)
	for _, e := range entries {
		assert.Equal(t, "10:00", e.Time)
		require.NotNil(t, e.Post)
	}
}

func TestSplitPosts(t *testing.T) {
	got := splitPosts("a"+ai.PostSeparator+"b"+ai.PostSeparator+"c", 2)
	assert.Equal(t, []string{"a", "b"}, got)

	// Blank-line fallback when the separator is missing.
	got = splitPosts("first\n\nsecond", 5)
	assert.Equal(t, []string{"first", "second"}, got)

	got = splitPosts("  \n\n  ", 5)
	assert.Empty(t, got)
}

func TestParseHashtags(t *testing.T) {
	got := parseHashtags("#one, two , ,#three, four, five, six", 4)
	assert.Equal(t, []string{"one", "two", "three", "four"}, got)
}
