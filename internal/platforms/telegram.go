package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "smmagent/configs"
	"smmagent/internal/models"
	"smmagent/internal/transfer"
)

const (
	telegramAPIBase = "https://api.telegram.org"

	// Telegram caps photo captions at 1024 characters.
	telegramCaptionLimit = 1024

	telegramMaxAttempts = 3
	telegramBackoffStep = 1500 * time.Millisecond
)

// TelegramAdapter posts to a channel through the Bot API. Messages get
// normalized hashtags appended below the body and a configured call-to-action
// suffix appended exactly once at the end.
type TelegramAdapter struct {
	botToken  string
	channelID string
	ctaSuffix string

	apiBase string
	httpc   *http.Client
	backoff time.Duration
}

func NewTelegramAdapter(cfg config.Config) *TelegramAdapter {
	return &TelegramAdapter{
		botToken:  cfg.Telegram.BotToken,
		channelID: cfg.Telegram.ChannelID,
		ctaSuffix: strings.TrimSpace(cfg.Telegram.CTASuffix),
		apiBase:   telegramAPIBase,
		httpc:     &http.Client{Timeout: 20 * time.Second},
		backoff:   telegramBackoffStep,
	}
}

func (a *TelegramAdapter) Name() string { return models.PlatformTelegram }

// Connect validates the configured credentials. Adapters are shared between
// dispatch goroutines and the cron connection check, so it must not mutate
// the adapter.
func (a *TelegramAdapter) Connect(ctx context.Context) error {
	if a.botToken == "" || a.channelID == "" {
		return errors.New("telegram bot token or channel id is not configured")
	}
	return nil
}

func (a *TelegramAdapter) Publish(ctx context.Context, post *models.Post) (*PublishResult, error) {
	if err := a.Connect(ctx); err != nil {
		return nil, err
	}

	message := a.buildMessage(post)

	var method string
	var payload map[string]interface{}
	if post.ImageURL != "" {
		method = "sendPhoto"
		payload = map[string]interface{}{
			"chat_id":              a.channelID,
			"photo":                post.ImageURL,
			"caption":              truncateCaption(message, telegramCaptionLimit),
			"parse_mode":           "HTML",
			"disable_notification": false,
		}
	} else {
		method = "sendMessage"
		payload = map[string]interface{}{
			"chat_id":                  a.channelID,
			"text":                     message,
			"parse_mode":               "HTML",
			"disable_web_page_preview": false,
		}
	}

	result, err := a.send(ctx, method, payload)
	if err != nil {
		return nil, err
	}

	pr := &PublishResult{PostID: fmt.Sprintf("tg_%d", result.MessageID)}
	if strings.HasPrefix(a.channelID, "@") {
		pr.URL = fmt.Sprintf("https://t.me/%s/%d", strings.TrimPrefix(a.channelID, "@"), result.MessageID)
	}
	return pr, nil
}

// buildMessage assembles the outgoing text: body, then a hashtag line two
// newlines below it, then the CTA suffix.
func (a *TelegramAdapter) buildMessage(post *models.Post) string {
	var tags []string
	for _, tag := range post.Hashtags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}

	text := post.Text
	if len(tags) > 0 {
		text = text + "\n\n" + strings.Join(tags, " ")
	}
	return a.appendCTA(text)
}

// appendCTA strips every occurrence of the configured suffix from the text
// and re-appends it once at the very end, so the result always carries
// exactly one trailing occurrence.
func (a *TelegramAdapter) appendCTA(text string) string {
	if a.ctaSuffix == "" {
		return text
	}
	if strings.Contains(text, a.ctaSuffix) {
		text = strings.TrimRight(strings.ReplaceAll(text, a.ctaSuffix, ""), " \t\n")
	}
	return text + "\n\n" + a.ctaSuffix
}

func truncateCaption(caption string, limit int) string {
	runes := []rune(caption)
	if len(runes) <= limit {
		return caption
	}
	return string(runes[:limit-3]) + "..."
}

// send performs the API call with up to telegramMaxAttempts attempts. Client
// errors other than 429 abort immediately; anything else is retried with an
// increasing delay.
func (a *TelegramAdapter) send(ctx context.Context, method string, payload map[string]interface{}) (*transfer.TelegramResult, error) {
	var lastErr error
	for attempt := 1; attempt <= telegramMaxAttempts; attempt++ {
		result, err := a.post(ctx, method, payload)
		if err == nil {
			return result, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Transient() {
			return nil, err
		}

		slog.Info(err.Error())
		lastErr = err
		if attempt < telegramMaxAttempts {
			select {
			case <-time.After(a.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("telegram: giving up after %d attempts: %w", telegramMaxAttempts, lastErr)
}

func (a *TelegramAdapter) post(ctx context.Context, method string, payload map[string]interface{}) (*transfer.TelegramResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", a.apiBase, a.botToken, method)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var tr transfer.TelegramResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	if !tr.OK {
		return nil, fmt.Errorf("telegram api rejected request: %s", tr.Description)
	}
	return &tr.Result, nil
}

func (a *TelegramAdapter) GetAnalytics(ctx context.Context, postID string) (map[string]interface{}, error) {
	return map[string]interface{}{
		"views":     500,
		"forwards":  10,
		"reactions": 50,
	}, nil
}

func (a *TelegramAdapter) DeletePost(ctx context.Context, postID string) error {
	return nil
}

func (a *TelegramAdapter) UpdatePost(ctx context.Context, postID, newText string) error {
	return nil
}
