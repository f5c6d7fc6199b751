// Package config provides configuration management using the Singleton pattern.
package config

import (
	"os"
	"strings"

	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "MILO"

	// EnvGeminiKeys is the primary environment variable for Gemini API
	// keys (comma-separated). It takes priority over file configuration.
	EnvGeminiKeys = "MILO_GEMINI_API_KEYS"

	// EnvGeminiKey is the single-key fallback variable.
	EnvGeminiKey = "MILO_GEMINI_API_KEY"

	// EnvAnthropicKey selects the Claude provider when set.
	EnvAnthropicKey = "MILO_ANTHROPIC_API_KEY"
)

// Default model identifiers per provider kind.
const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultClaudeModel = "claude-3-5-sonnet-20241022"
)

// loadConfig loads the configuration from environment variables and files.
// Priority order (highest to lowest):
// 1. MILO_GEMINI_API_KEYS / MILO_ANTHROPIC_API_KEY env vars
// 2. Environment variables (prefixed with MILO_)
// 3. config.yaml - fallback for local development only
// 4. Default values
func loadConfig(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/milo-backend")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars are the preferred source.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{Op: "read", Err: err}
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Op: "unmarshal", Err: err}
	}

	loadCredentialsFromEnv(&cfg)
	resolveProviderKind(&cfg)
	applyModelDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Provider defaults. Empty registrations make the keys visible to
	// AutomaticEnv so MILO_PROVIDER_KIND and friends are honored.
	v.SetDefault("provider.kind", "")
	v.SetDefault("provider.timeout_seconds", 30)
	v.SetDefault("provider.models.router", "")
	v.SetDefault("provider.models.command", "")
	v.SetDefault("provider.models.conversation", "")
	v.SetDefault("provider.models.transcribe", "")

	// Cache defaults
	v.SetDefault("cache.ttl_seconds", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// loadCredentialsFromEnv reads provider credentials from the primary
// environment variables, overriding any file-based values.
func loadCredentialsFromEnv(cfg *Configuration) {
	if keys := os.Getenv(EnvGeminiKeys); keys != "" {
		cfg.Provider.GeminiKeys = splitKeys(keys)
	} else if key := strings.TrimSpace(os.Getenv(EnvGeminiKey)); key != "" {
		cfg.Provider.GeminiKeys = []string{key}
	}

	if key := strings.TrimSpace(os.Getenv(EnvAnthropicKey)); key != "" {
		cfg.Provider.AnthropicKey = key
	}
}

// resolveProviderKind infers the provider when not explicitly set:
// Claude wins when an Anthropic key is present, otherwise Gemini.
func resolveProviderKind(cfg *Configuration) {
	if cfg.Provider.Kind != "" {
		return
	}
	if cfg.Provider.AnthropicKey != "" {
		cfg.Provider.Kind = domain.ProviderClaude
		return
	}
	cfg.Provider.Kind = domain.ProviderGemini
}

// applyModelDefaults fills empty model identifiers with the per-kind default.
func applyModelDefaults(cfg *Configuration) {
	def := defaultGeminiModel
	if cfg.Provider.Kind == domain.ProviderClaude {
		def = defaultClaudeModel
	}

	m := &cfg.Provider.Models
	if m.Router == "" {
		m.Router = def
	}
	if m.Command == "" {
		m.Command = def
	}
	if m.Conversation == "" {
		m.Conversation = def
	}
	if m.Transcribe == "" {
		m.Transcribe = def
	}
}

// splitKeys parses a comma-separated credential list, trimming
// whitespace and dropping empty items.
func splitKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
