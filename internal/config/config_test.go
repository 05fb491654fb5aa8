package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "LLM_PROVIDER", "LLM_API_KEY", "GROQ_API_KEY", "LLM_ATTEMPT_TIMEOUT", "ASSISTANT_TREND_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "assistant.turn.completed", cfg.App.TurnTopic)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.Equal(t, 2, cfg.Ai.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Ai.AttemptTimeout)
	assert.Equal(t, 30, cfg.Assistant.TrendDays)
	assert.Equal(t, 10*time.Minute, cfg.Assistant.TrendCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("LLM_ATTEMPT_TIMEOUT", "45")
	t.Setenv("ASSISTANT_TREND_CACHE_TTL", "90s")
	t.Setenv("ASSISTANT_SEARCH_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "ollama", cfg.Ai.LLMProvider)
	assert.InDelta(t, 0.7, cfg.Ai.Temperature, 1e-9)
	assert.Equal(t, 45*time.Second, cfg.Ai.AttemptTimeout)
	assert.Equal(t, 90*time.Second, cfg.Assistant.TrendCacheTTL)
	assert.Equal(t, 8, cfg.Assistant.SearchLimit)
}

func TestLoad_GroqKeyFallback(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	assert.Equal(t, "gsk-test", Load().Ai.LLMApiKey)
}
