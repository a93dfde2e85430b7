package config

import (
	"os"
	"strconv"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicHost string
}

type OpenAI struct {
	APIKey       string
	Model        string
	ImageModel   string
	ImageSize    string
	ImageQuality string
	MaxTokens    int
	Temperature  float64
}

type Instagram struct {
	Username string
	Password string
}

type Facebook struct {
	AccessToken string
	PageID      string
}

type Twitter struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

type Telegram struct {
	BotToken  string
	ChannelID string
	CTASuffix string
}

type Config struct {
	Port         string
	PostgresURI  string
	PollInterval int // scheduler poll interval, seconds
	OpenAI       OpenAI
	Instagram    Instagram
	Facebook     Facebook
	Twitter      Twitter
	Telegram     Telegram
	R2           R2
}

func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		PostgresURI:  getEnv("POSTGRES_URI", ""),
		PollInterval: getEnvInt("SCHEDULER_POLL_INTERVAL", 60),
		OpenAI: OpenAI{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			ImageModel:   getEnv("DALL_E_MODEL", "dall-e-3"),
			ImageSize:    getEnv("DALL_E_SIZE", "1024x1024"),
			ImageQuality: getEnv("DALL_E_QUALITY", "standard"),
			MaxTokens:    getEnvInt("OPENAI_MAX_TOKENS", 2000),
			Temperature:  getEnvFloat("OPENAI_TEMPERATURE", 0.7),
		},
		Instagram: Instagram{
			Username: getEnv("INSTAGRAM_USERNAME", ""),
			Password: getEnv("INSTAGRAM_PASSWORD", ""),
		},
		Facebook: Facebook{
			AccessToken: getEnv("FACEBOOK_ACCESS_TOKEN", ""),
			PageID:      getEnv("FACEBOOK_PAGE_ID", ""),
		},
		Twitter: Twitter{
			APIKey:            getEnv("TWITTER_API_KEY", ""),
			APISecret:         getEnv("TWITTER_API_SECRET", ""),
			AccessToken:       getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		},
		Telegram: Telegram{
			BotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChannelID: getEnv("TELEGRAM_CHANNEL_ID", ""),
			CTASuffix: getEnv("TELEGRAM_CTA_SUFFIX", ""),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicHost: getEnv("R2_PUBLIC_HOST", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
