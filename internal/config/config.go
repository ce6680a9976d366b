package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	AuthBaseURL  string
	APIBaseURL   string
	ProjectKey   string
	ClientID     string
	ClientSecret string
	Currency     string
	Country      string
	StorePath    string
	HTTPTimeout  time.Duration
}

// Load reads an optional .env file and then builds Config from the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		AuthBaseURL:  envOrDefault("CT_AUTH_URL", "https://auth.europe-west1.gcp.commercetools.com"),
		APIBaseURL:   envOrDefault("CT_API_URL", "https://api.europe-west1.gcp.commercetools.com"),
		ProjectKey:   envOrDefault("CT_PROJECT_KEY", "storefront"),
		ClientID:     envOrDefault("CT_CLIENT_ID", ""),
		ClientSecret: envOrDefault("CT_CLIENT_SECRET", ""),
		Currency:     envOrDefault("CT_CURRENCY", "EUR"),
		Country:      envOrDefault("CT_COUNTRY", "DE"),
		StorePath:    envOrDefault("STORE_PATH", "storefront.db"),
		HTTPTimeout:  envDuration("HTTP_TIMEOUT_SECONDS", 30*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
