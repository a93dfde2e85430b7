package ai

import "context"

// Client abstracts the generative backend so content generation can run
// against a mock during local development and in tests.
type Client interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
