package ai

import (
	"context"
	"strings"
)

// MockClient is a canned implementation for local runs without an API key.
// It never calls the network.
type MockClient struct{}

func (MockClient) GenerateText(_ context.Context, _ string, prompt string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Sample generated draft.\n\n")
	sb.WriteString("This placeholder text was produced without a model call. Request:\n\n")
	if len(prompt) > 120 {
		prompt = prompt[:120]
	}
	sb.WriteString(prompt)
	return sb.String(), nil
}

func (MockClient) GenerateImage(_ context.Context, _ string) (string, error) {
	return "https://placehold.co/1024x1024.png", nil
}
