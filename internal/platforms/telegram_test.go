package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smmagent/internal/models"
)

func testAdapter(apiBase string) *TelegramAdapter {
	return &TelegramAdapter{
		botToken:  "test-token",
		channelID: "@testchannel",
		ctaSuffix: "Subscribe to our channel!",
		apiBase:   apiBase,
		httpc:     &http.Client{Timeout: 5 * time.Second},
		backoff:   time.Millisecond,
	}
}

func telegramOK(t *testing.T, messageID int64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":     true,
			"result": map[string]interface{}{"message_id": messageID},
		})
	}
}

func TestBuildMessageNormalizesHashtags(t *testing.T) {
	a := &TelegramAdapter{}

	msg := a.buildMessage(&models.Post{
		Text:     "Launch day",
		Hashtags: []string{"ai", "#ai", " promo ", ""},
	})

	assert.Equal(t, "Launch day\n\n#ai #ai #promo", msg)
}

func TestBuildMessageNoHashtags(t *testing.T) {
	a := &TelegramAdapter{}

	msg := a.buildMessage(&models.Post{Text: "Plain text"})

	assert.Equal(t, "Plain text", msg)
}

func TestAppendCTAOnce(t *testing.T) {
	a := &TelegramAdapter{ctaSuffix: "Follow us"}

	out := a.appendCTA("Hello")
	assert.Equal(t, "Hello\n\nFollow us", out)

	// A suffix already in the text, even repeated, collapses to one
	// trailing occurrence.
	out = a.appendCTA("Follow us early. Follow us\n\nFollow us")
	assert.Equal(t, 1, strings.Count(out, "Follow us"))
	assert.True(t, strings.HasSuffix(out, "\n\nFollow us"))
}

func TestAppendCTAEmptySuffix(t *testing.T) {
	a := &TelegramAdapter{}
	assert.Equal(t, "Hello", a.appendCTA("Hello"))
}

func TestTruncateCaption(t *testing.T) {
	long := strings.Repeat("x", 1100)

	got := truncateCaption(long, telegramCaptionLimit)

	assert.Equal(t, telegramCaptionLimit, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))

	short := strings.Repeat("x", 1024)
	assert.Equal(t, short, truncateCaption(short, telegramCaptionLimit))
}

func TestPublishSendsMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		telegramOK(t, 42)(w, r)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	res, err := a.Publish(context.Background(), &models.Post{
		Text:     "Hello world",
		Hashtags: []string{"go"},
	})

	require.NoError(t, err)
	assert.Equal(t, "tg_42", res.PostID)
	assert.Equal(t, "https://t.me/testchannel/42", res.URL)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "@testchannel", gotPayload["chat_id"])
	assert.Equal(t, "Hello world\n\n#go\n\nSubscribe to our channel!", gotPayload["text"])
}

func TestPublishWithImageSendsPhoto(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		telegramOK(t, 7)(w, r)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	res, err := a.Publish(context.Background(), &models.Post{
		Text:     strings.Repeat("y", 1100),
		ImageURL: "https://example.com/pic.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "tg_7", res.PostID)
	assert.Equal(t, "/bottest-token/sendPhoto", gotPath)
	assert.Equal(t, "https://example.com/pic.png", gotPayload["photo"])

	caption, ok := gotPayload["caption"].(string)
	require.True(t, ok)
	assert.Equal(t, telegramCaptionLimit, len([]rune(caption)))
	assert.True(t, strings.HasSuffix(caption, "..."))
}

func TestPublishNumericChannelHasNoURL(t *testing.T) {
	srv := httptest.NewServer(telegramOK(t, 9))
	defer srv.Close()

	a := testAdapter(srv.URL)
	a.channelID = "-1001234567890"

	res, err := a.Publish(context.Background(), &models.Post{Text: "no public link"})

	require.NoError(t, err)
	assert.Equal(t, "tg_9", res.PostID)
	assert.Empty(t, res.URL)
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	_, err := a.Publish(context.Background(), &models.Post{Text: "retry me"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "giving up after 3 attempts")
	assert.Equal(t, int32(telegramMaxAttempts), atomic.LoadInt32(&calls))
}

func TestSendAbortsOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	_, err := a.Publish(context.Background(), &models.Post{Text: "bad request"})

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendRetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		telegramOK(t, 11)(w, r)
	}))
	defer srv.Close()

	a := testAdapter(srv.URL)
	res, err := a.Publish(context.Background(), &models.Post{Text: "rate limited"})

	require.NoError(t, err)
	assert.Equal(t, "tg_11", res.PostID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPublishConcurrentWithConnectionChecks(t *testing.T) {
	srv := httptest.NewServer(telegramOK(t, 3))
	defer srv.Close()

	a := testAdapter(srv.URL)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := a.Publish(context.Background(), &models.Post{Text: "shared"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.True(t, TestConnection(context.Background(), a))
		}()
	}
	wg.Wait()
}

func TestConnectRequiresCredentials(t *testing.T) {
	a := &TelegramAdapter{}
	assert.Error(t, a.Connect(context.Background()))
	assert.False(t, TestConnection(context.Background(), a))

	a.botToken = "t"
	a.channelID = "@c"
	assert.NoError(t, a.Connect(context.Background()))
	assert.True(t, TestConnection(context.Background(), a))
}
