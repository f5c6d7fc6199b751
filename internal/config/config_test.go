package config

import (
	"testing"

	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadFresh resets the singleton around a load so subtests do not
// observe each other's state.
func loadFresh(t *testing.T) (*Configuration, error) {
	t.Helper()
	ResetConfig()
	t.Cleanup(ResetConfig)
	return GetConfig()
}

func TestGetConfigGeminiKeys(t *testing.T) {
	t.Setenv(EnvGeminiKeys, "AIzaKey1, AIzaKey2 ,AIzaKey1,")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderGemini, cfg.Provider.Kind)
	// Whitespace is trimmed and empties dropped; duplicates survive here
	// and are deduped by the key ring.
	assert.Equal(t, []string{"AIzaKey1", "AIzaKey2", "AIzaKey1"}, cfg.Provider.GeminiKeys)
}

func TestGetConfigSingleKeyFallback(t *testing.T) {
	t.Setenv(EnvGeminiKey, "AIzaOnlyKey")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderGemini, cfg.Provider.Kind)
	assert.Equal(t, []string{"AIzaOnlyKey"}, cfg.Provider.GeminiKeys)
}

func TestGetConfigAnthropicSelectsClaude(t *testing.T) {
	t.Setenv(EnvAnthropicKey, "sk-ant-test")
	t.Setenv(EnvGeminiKeys, "AIzaKey1")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	// Claude wins when both credentials are present and kind is unset.
	assert.Equal(t, domain.ProviderClaude, cfg.Provider.Kind)
	assert.Equal(t, "sk-ant-test", cfg.Provider.AnthropicKey)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Provider.Models.Router)
}

func TestGetConfigExplicitKindWins(t *testing.T) {
	t.Setenv("MILO_PROVIDER_KIND", "gemini")
	t.Setenv(EnvAnthropicKey, "sk-ant-test")
	t.Setenv(EnvGeminiKeys, "AIzaKey1")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderGemini, cfg.Provider.Kind)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Models.Command)
}

func TestGetConfigDefaults(t *testing.T) {
	t.Setenv(EnvGeminiKeys, "AIzaKey1")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 30, cfg.Provider.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Models.Router)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Models.Transcribe)
}

func TestGetConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvGeminiKeys, "AIzaKey1")
	t.Setenv("MILO_SERVER_PORT", "8080")
	t.Setenv("MILO_LOGGING_LEVEL", "debug")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestGetConfigNoCredentials(t *testing.T) {
	t.Setenv(EnvGeminiKeys, "")
	t.Setenv(EnvGeminiKey, "")
	t.Setenv(EnvAnthropicKey, "")

	_, err := loadFresh(t)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasError("provider.gemini_keys"))
}

func TestValidate(t *testing.T) {
	valid := Configuration{
		Server:   ServerConfig{Port: 3000},
		Provider: ProviderConfig{Kind: domain.ProviderGemini, GeminiKeys: []string{"k"}},
		Cache:    CacheConfig{TTLSeconds: 300},
		Logging:  LoggingConfig{Level: "info"},
	}

	tests := []struct {
		name      string
		mutate    func(*Configuration)
		wantField string
	}{
		{"valid", func(c *Configuration) {}, ""},
		{"bad port", func(c *Configuration) { c.Server.Port = 0 }, "server.port"},
		{"bad kind", func(c *Configuration) { c.Provider.Kind = "openai" }, "provider.kind"},
		{"gemini without keys", func(c *Configuration) { c.Provider.GeminiKeys = nil }, "provider.gemini_keys"},
		{"claude without key", func(c *Configuration) {
			c.Provider.Kind = domain.ProviderClaude
		}, "provider.anthropic_key"},
		{"bad ttl", func(c *Configuration) { c.Cache.TTLSeconds = 0 }, "cache.ttl_seconds"},
		{"bad log level", func(c *Configuration) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.True(t, ve.HasError(tt.wantField), "expected an error mentioning %s, got %v", tt.wantField, ve.Errors)
		})
	}
}

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, splitKeys(tt.input))
		})
	}
}
