package ai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	config "smmagent/configs"
)

// OpenAIClient implements Client using the official openai-go SDK
// (chat completions for text, image generation for visuals).
type OpenAIClient struct {
	model        string
	imageModel   string
	imageSize    string
	imageQuality string
	maxTokens    int64
	temperature  float64
	opts         []option.RequestOption
}

func NewOpenAIClient(cfg config.Config) (*OpenAIClient, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if cfg.OpenAI.Model == "" {
		return nil, errors.New("openai model is required")
	}
	return &OpenAIClient{
		model:        cfg.OpenAI.Model,
		imageModel:   cfg.OpenAI.ImageModel,
		imageSize:    cfg.OpenAI.ImageSize,
		imageQuality: cfg.OpenAI.ImageQuality,
		maxTokens:    int64(cfg.OpenAI.MaxTokens),
		temperature:  cfg.OpenAI.Temperature,
		opts:         []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)},
	}, nil
}

func (c *OpenAIClient) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  prompt,
		Model:   openai.ImageModel(c.imageModel),
		Size:    openai.ImageGenerateParamsSize(c.imageSize),
		Quality: openai.ImageGenerateParamsQuality(c.imageQuality),
		N:       openai.Int(1),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("openai: no image returned")
	}
	return resp.Data[0].URL, nil
}
