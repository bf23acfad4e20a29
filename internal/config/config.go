package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Brand being monitored
	BrandName string

	// Azure Storage configuration (feedback records)
	StorageAccount   string
	StorageContainer string

	// Reddit API credentials
	RedditClientID     string
	RedditClientSecret string
	RedditBearerToken  string
	RedditUserAgent    string
	RedditBaseURL      string

	// LLM enrichment configuration
	EnrichmentAPIKey  string
	EnrichmentBaseURL string
	EnrichmentModel   string

	// Scheduled digest configuration
	DigestSchedule    string // "daily", "weekly" or "" to disable
	DigestQuery       string
	DigestLimit       int
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	WebhookURL        string

	// Default subreddits to fan out across when a request supplies none
	Subreddits []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Debug:     getBoolEnv("DEBUG", false),
		BrandName: getEnv("BRAND_NAME", "T-Mobile"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "feedback"),

		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditBearerToken:  getEnv("REDDIT_BEARER_TOKEN", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "FeedbackAI/1.0"),
		RedditBaseURL:      getEnv("REDDIT_BASE_URL", "https://oauth.reddit.com"),

		EnrichmentAPIKey:  getEnv("ENRICHMENT_API_KEY", ""),
		EnrichmentBaseURL: getEnv("ENRICHMENT_BASE_URL", "https://integrate.api.nvidia.com/v1"),
		EnrichmentModel:   getEnv("ENRICHMENT_MODEL", "mistralai/mistral-nemotron"),

		DigestSchedule:    getEnv("DIGEST_SCHEDULE", ""),
		DigestQuery:       getEnv("DIGEST_QUERY", "network coverage"),
		DigestLimit:       getIntEnv("DIGEST_LIMIT", 25),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		WebhookURL:        getEnv("WEBHOOK_URL", ""),

		Subreddits: getSliceEnv("SUBREDDITS", []string{"tmobile"}),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BrandName == "" {
		return fmt.Errorf("BRAND_NAME must not be empty")
	}

	if c.DigestSchedule != "" && c.DigestSchedule != "daily" && c.DigestSchedule != "weekly" {
		return fmt.Errorf("DIGEST_SCHEDULE must be 'daily', 'weekly' or unset")
	}

	if c.DigestLimit < 1 || c.DigestLimit > 100 {
		return fmt.Errorf("DIGEST_LIMIT must be between 1 and 100")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// HasRedditCredentials reports whether any Reddit auth strategy is configured.
func (c *Config) HasRedditCredentials() bool {
	return c.RedditBearerToken != "" || (c.RedditClientID != "" && c.RedditClientSecret != "")
}

// HasEnrichmentCredentials reports whether the LLM enrichment call can be made.
func (c *Config) HasEnrichmentCredentials() bool {
	return c.EnrichmentAPIKey != ""
}

// HasStorageCredentials reports whether the feedback record store is configured.
func (c *Config) HasStorageCredentials() bool {
	return c.StorageAccount != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var out []string
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
