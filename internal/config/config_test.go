package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvYouTubeAPIKey, EnvMongoURI, EnvMongoDatabase,
		EnvS3Endpoint, EnvS3Region, EnvS3AccessKeyID, EnvS3SecretAccessKey,
		EnvS3UseSSL, EnvS3Bucket, EnvS3KeyPrefix,
		EnvKeywords, EnvMaxPages, EnvSchedule, EnvRetries, EnvRetryDelay, EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultKeywords, cfg.Keywords)
	assert.Equal(t, 10, cfg.MaxPages)
	assert.Equal(t, "youtube_dataset", cfg.MongoDatabase)
	assert.Equal(t, "youtube-data-krc", cfg.S3Bucket)
	assert.Equal(t, "youtube", cfg.S3KeyPrefix)
	assert.Equal(t, "@daily", cfg.Schedule)
	assert.Equal(t, 1, cfg.Retries)
	assert.Equal(t, 5*time.Minute, cfg.RetryDelay)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNew_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvYouTubeAPIKey, "key")
	t.Setenv(EnvKeywords, " Go , Rust Lang ,,")
	t.Setenv(EnvMaxPages, "3")
	t.Setenv(EnvRetries, "0")
	t.Setenv(EnvRetryDelay, "30s")
	t.Setenv(EnvS3UseSSL, "false")
	t.Setenv(EnvS3Endpoint, "localhost:9000")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.YouTubeAPIKey)
	assert.Equal(t, []string{"Go", "Rust Lang"}, cfg.Keywords)
	assert.Equal(t, 3, cfg.MaxPages)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, 30*time.Second, cfg.RetryDelay)
	assert.False(t, cfg.S3UseSSL)
	assert.Equal(t, "localhost:9000", cfg.S3Endpoint)
}

func TestNew_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"max pages not a number", EnvMaxPages, "ten"},
		{"max pages zero", EnvMaxPages, "0"},
		{"negative retries", EnvRetries, "-1"},
		{"bad retry delay", EnvRetryDelay, "soon"},
		{"bad ssl flag", EnvS3UseSSL, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := New()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestRequireSinks(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://localhost"}
	err := cfg.RequireSinks()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvS3AccessKeyID)
	assert.NotContains(t, err.Error(), EnvMongoURI)

	cfg.S3AccessKeyID = "id"
	cfg.S3SecretAccessKey = "secret"
	assert.NoError(t, cfg.RequireSinks())
}

func TestRequireAPI(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireAPI())
	cfg.YouTubeAPIKey = "key"
	assert.NoError(t, cfg.RequireAPI())
}
