package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 0.60, cfg.Grading.F2FWeight)
	assert.Equal(t, 0.40, cfg.Grading.OnlineWeight)
	assert.Equal(t, 3.00, cfg.Grading.PassingGrade)
	assert.False(t, cfg.Reports.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.Reports.CacheTTL)
	assert.True(t, cfg.Exports.Enabled)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, time.Hour, cfg.Exports.LinkTTL)
	assert.Equal(t, cfg.JWT.Secret, cfg.Exports.SigningSecret)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_REPORT_CACHE", "true")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("GRADING_F2F_WEIGHT", "0.7")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("EXPORT_SIGNING_SECRET", "exports")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Reports.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.Reports.CacheTTL)
	assert.Equal(t, 0.7, cfg.Grading.F2FWeight)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "exports", cfg.Exports.SigningSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
