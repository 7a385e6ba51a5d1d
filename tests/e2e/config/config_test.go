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
		"CI", "E2E_BASE_URL", "E2E_RETRIES", "E2E_WORKERS", "E2E_HEADLESS",
		"E2E_FOCUS", "E2E_NAV_TIMEOUT", "E2E_ARTIFACTS_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg := GetConfig()
	assert.Equal(t, "https://www.coastpass.com", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.NavTimeout)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.Screenshots)
	assert.True(t, cfg.Trace)
	assert.Equal(t, 0, cfg.Retries)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Empty(t, cfg.Focus)
	assert.False(t, cfg.CI)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("E2E_BASE_URL", "https://staging.coastpass.com/")
	t.Setenv("E2E_RETRIES", "2")
	t.Setenv("E2E_NAV_TIMEOUT", "45s")
	t.Setenv("E2E_HEADLESS", "false")

	cfg := GetConfig()
	assert.Equal(t, "https://staging.coastpass.com", cfg.BaseURL,
		"trailing slash should be trimmed")
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 45*time.Second, cfg.NavTimeout)
	assert.False(t, cfg.Headless)
}

func TestCIPolicy(t *testing.T) {
	clearEnv(t)
	t.Setenv("CI", "true")
	t.Setenv("E2E_RETRIES", "5")
	t.Setenv("E2E_WORKERS", "8")

	cfg := GetConfig()
	require.True(t, cfg.CI)
	assert.Equal(t, 1, cfg.Retries, "CI retries are fixed at 1")
	assert.Equal(t, 1, cfg.Workers, "CI workers are serialized")
}

func TestFocus(t *testing.T) {
	clearEnv(t)
	t.Setenv("E2E_FOCUS", "core elements, venue data")

	cfg := GetConfig()
	require.Len(t, cfg.Focus, 2)
	assert.True(t, cfg.Focused("core elements"))
	assert.True(t, cfg.Focused("Venue Data"), "focus match is case-insensitive")
	assert.False(t, cfg.Focused("mobile layout"))
}

func TestFocusedWithEmptyList(t *testing.T) {
	cfg := &RunConfig{}
	assert.True(t, cfg.Focused("anything"))
}
