package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "remote", cfg.GetString("analysis.provider"))
	assert.Equal(t, "memory", cfg.GetString("store.type"))
	assert.Equal(t, "jsonl", cfg.GetString("export.type"))
	assert.True(t, cfg.GetBool("intake.http.enabled"))
	assert.False(t, cfg.GetBool("intake.smtp.enabled"))
	assert.Equal(t, "0.0.0.0:8085", cfg.GetString("intake.http.listen_address"))
	assert.Equal(t, "info", cfg.GetString("logging.level"))

	debounce, err := cfg.GetDuration("scanner.debounce")
	require.NoError(t, err)
	assert.Equal(t, "1s", debounce.String())
}

func TestTypedGetters(t *testing.T) {
	v := NewEmptyViper()
	v.Set("openai.api_key", "sk-test")
	v.Set("openai.temperature", 0.5)
	cfg := NewFromViper(v)

	openaiCfg := cfg.GetOpenAI()
	assert.Equal(t, "sk-test", openaiCfg.APIKey)
	assert.Equal(t, float32(0.5), openaiCfg.Temperature)
	assert.Equal(t, 1000, openaiCfg.MaxTokens)

	remoteCfg := cfg.GetRemote()
	assert.Equal(t, "http://localhost:3000/api/analyze", remoteCfg.Endpoint)
	assert.Equal(t, "30s", remoteCfg.Timeout)
}
