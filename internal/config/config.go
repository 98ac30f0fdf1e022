// Package config provides configuration management for ytetl.
// Configuration is loaded from environment variables with sensible defaults;
// main loads a .env file into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// Default values
	DefaultMongoDatabase = "youtube_dataset"
	DefaultS3Endpoint    = "s3.amazonaws.com"
	DefaultS3Region      = "us-east-1"
	DefaultS3Bucket      = "youtube-data-krc"
	DefaultS3KeyPrefix   = "youtube"
	DefaultMaxPages      = 10
	DefaultSchedule      = "@daily"
	DefaultRetries       = 1
	DefaultRetryDelay    = 5 * time.Minute
	DefaultLogLevel      = "info"

	// Environment variable names
	EnvYouTubeAPIKey     = "YOUTUBE_API_KEY"
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabase     = "MONGO_DATABASE"
	EnvS3Endpoint        = "S3_ENDPOINT"
	EnvS3Region          = "S3_REGION"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
	EnvS3UseSSL          = "S3_USE_SSL"
	EnvS3Bucket          = "S3_BUCKET"
	EnvS3KeyPrefix       = "S3_KEY_PREFIX"
	EnvKeywords          = "YTETL_KEYWORDS"
	EnvMaxPages          = "YTETL_MAX_PAGES"
	EnvSchedule          = "YTETL_SCHEDULE"
	EnvRetries           = "YTETL_RETRIES"
	EnvRetryDelay        = "YTETL_RETRY_DELAY"
	EnvLogLevel          = "YTETL_LOG_LEVEL"
)

// DefaultKeywords are searched when YTETL_KEYWORDS is unset.
var DefaultKeywords = []string{
	"Machine Learning",
	"Artificial Intelligence",
	"Devops",
	"Deep Learning",
	"Data Science",
	"Data Engineering",
}

// Config holds everything a run needs.
type Config struct {
	YouTubeAPIKey string

	MongoURI      string
	MongoDatabase string

	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UseSSL          bool
	S3Bucket          string
	S3KeyPrefix       string

	Keywords   []string
	MaxPages   int
	Schedule   string
	Retries    int
	RetryDelay time.Duration
	LogLevel   string
}

// New creates a Config with defaults and environment variable overrides
func New() (*Config, error) {
	cfg := &Config{
		YouTubeAPIKey:     os.Getenv(EnvYouTubeAPIKey),
		MongoURI:          os.Getenv(EnvMongoURI),
		MongoDatabase:     envOr(EnvMongoDatabase, DefaultMongoDatabase),
		S3Endpoint:        envOr(EnvS3Endpoint, DefaultS3Endpoint),
		S3Region:          envOr(EnvS3Region, DefaultS3Region),
		S3AccessKeyID:     os.Getenv(EnvS3AccessKeyID),
		S3SecretAccessKey: os.Getenv(EnvS3SecretAccessKey),
		S3UseSSL:          true,
		S3Bucket:          envOr(EnvS3Bucket, DefaultS3Bucket),
		S3KeyPrefix:       envOr(EnvS3KeyPrefix, DefaultS3KeyPrefix),
		Keywords:          append([]string(nil), DefaultKeywords...),
		MaxPages:          DefaultMaxPages,
		Schedule:          envOr(EnvSchedule, DefaultSchedule),
		Retries:           DefaultRetries,
		RetryDelay:        DefaultRetryDelay,
		LogLevel:          envOr(EnvLogLevel, DefaultLogLevel),
	}

	if v := os.Getenv(EnvS3UseSSL); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvS3UseSSL, err)
		}
		cfg.S3UseSSL = b
	}

	if v := os.Getenv(EnvKeywords); v != "" {
		cfg.Keywords = ParseKeywords(v)
	}

	if v := os.Getenv(EnvMaxPages); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvMaxPages, err)
		}
		cfg.MaxPages = n
	}

	if v := os.Getenv(EnvRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvRetries, err)
		}
		cfg.Retries = n
	}

	if v := os.Getenv(EnvRetryDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvRetryDelay, err)
		}
		cfg.RetryDelay = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values every command depends on.
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("invalid %s: must be at least 1, got %d", EnvMaxPages, c.MaxPages)
	}
	if c.Retries < 0 {
		return fmt.Errorf("invalid %s: must not be negative, got %d", EnvRetries, c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("invalid %s: must not be negative", EnvRetryDelay)
	}
	return nil
}

// RequireAPI reports a missing YouTube credential.
func (c *Config) RequireAPI() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("missing YouTube API key: set %s environment variable", EnvYouTubeAPIKey)
	}
	return nil
}

// RequireSinks reports missing object-store or document-store settings.
func (c *Config) RequireSinks() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, EnvMongoURI)
	}
	if c.S3AccessKeyID == "" {
		missing = append(missing, EnvS3AccessKeyID)
	}
	if c.S3SecretAccessKey == "" {
		missing = append(missing, EnvS3SecretAccessKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing sink configuration: set %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseKeywords splits a comma separated list, trimming blanks and dropping empties.
// Keyword casing is kept as given.
func ParseKeywords(s string) []string {
	var keywords []string
	for _, part := range strings.Split(s, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)
