package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CFG_STR", "hello")
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_INT_BAD", "not-a-number")
	t.Setenv("CFG_BOOL", "yes")
	t.Setenv("CFG_DUR", "90s")
	t.Setenv("CFG_DUR_BAD", "soon")

	assert.Equal(t, "hello", envStr("CFG_STR", "fallback"))
	assert.Equal(t, "fallback", envStr("CFG_UNSET", "fallback"))

	assert.Equal(t, 42, envInt("CFG_INT", 7))
	assert.Equal(t, 7, envInt("CFG_INT_BAD", 7))
	assert.Equal(t, 7, envInt("CFG_UNSET", 7))

	assert.True(t, envBool("CFG_BOOL", false))
	assert.False(t, envBool("CFG_UNSET", false))

	assert.Equal(t, 90*time.Second, envDur("CFG_DUR", time.Second))
	assert.Equal(t, time.Second, envDur("CFG_DUR_BAD", time.Second))
}

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 100, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 9*time.Second, cfg.RefillInterval)
	assert.Equal(t, "ip", cfg.KeyStrategy)
}

func TestLoadRateLimitConfig_ClampsTTL(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "30s")

	cfg := LoadRateLimitConfig()

	// TTL must outlive the bucket or counters expire mid-window.
	assert.Equal(t, 5*time.Minute, cfg.TTL)
}
