package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("GEMINI_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 16, cfg.Server.MaxUploadMB)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.Gemini.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "studymate", cfg.App.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  padded-key  ")
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:1234/v1/")
	t.Setenv("GEMINI_TIMEOUT", "0s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "padded-key", cfg.Gemini.APIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Gemini.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Gemini.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 16, cfg.Server.MaxUploadMB, "invalid integers fall back to the default")
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestRedacted(t *testing.T) {
	cfg := Config{Gemini: GeminiConfig{APIKey: "secret"}}

	red := cfg.Redacted()

	assert.Equal(t, "****", red.Gemini.APIKey)
	assert.Equal(t, "secret", cfg.Gemini.APIKey, "original must be untouched")
}
