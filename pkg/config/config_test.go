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
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 6, cfg.Verification.WindowMonths)
	assert.Equal(t, 10*time.Minute, cfg.Search.CacheTTL)
	assert.False(t, cfg.Search.CacheEnabled)
	assert.False(t, cfg.Search.FlushOnStart)
	assert.True(t, cfg.Exports.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, "admission-planner", cfg.Redis.Namespace)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.ReadTimeout)
	assert.Equal(t, TimelineConfig{
		TotalWeeks:             8,
		TranslationBufferDays:  7,
		NotarizationBufferDays: 5,
		DefaultDocumentDays:    7,
		CriticalRatio:          0.7,
		DefaultIntake:          "September",
	}, cfg.Timeline)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("TIMELINE_TOTAL_WEEKS", "12")
	t.Setenv("TIMELINE_CRITICAL_RATIO", "0.5")
	t.Setenv("SEARCH_CACHE_TTL", "90s")
	t.Setenv("ENABLE_SEARCH_CACHE", "true")
	t.Setenv("SEARCH_CACHE_FLUSH_ON_START", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Timeline.TotalWeeks)
	assert.Equal(t, 0.5, cfg.Timeline.CriticalRatio)
	assert.Equal(t, 90*time.Second, cfg.Search.CacheTTL)
	assert.True(t, cfg.Search.CacheEnabled)
	assert.True(t, cfg.Search.FlushOnStart)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	t.Setenv("TIMELINE_TOTAL_WEEKS", "3")
	t.Setenv("TIMELINE_CRITICAL_RATIO", "1.5")
	t.Setenv("SEARCH_CACHE_TTL", "soon")
	t.Setenv("VERIFICATION_WINDOW_MONTHS", "-2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Timeline.TotalWeeks)
	assert.Equal(t, 0.7, cfg.Timeline.CriticalRatio)
	assert.Equal(t, 10*time.Minute, cfg.Search.CacheTTL)
	assert.Equal(t, 6, cfg.Verification.WindowMonths)
}
