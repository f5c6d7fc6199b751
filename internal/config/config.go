// Package config provides configuration management using the Singleton pattern.
// It loads configuration from environment variables and config.yaml using Viper.
package config

import (
	"fmt"
	"sync"

	"github.com/milo-ai/milo-backend/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Provider holds AI provider selection, credentials and models.
	Provider ProviderConfig `json:"provider" mapstructure:"provider"`

	// Cache configuration
	Cache CacheConfig `json:"cache" mapstructure:"cache"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeoutSeconds is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// ProviderConfig holds AI provider configuration. It is built once at
// process start and treated as immutable afterwards.
type ProviderConfig struct {
	// Kind selects the backing provider: gemini or claude. When empty,
	// the loader infers it from which credentials are present.
	Kind domain.ProviderKind `json:"kind" mapstructure:"kind"`

	// GeminiKeys is the ordered credential list for key rotation.
	GeminiKeys []string `json:"gemini_keys" mapstructure:"gemini_keys"`

	// AnthropicKey is the single Claude credential.
	AnthropicKey string `json:"anthropic_key" mapstructure:"anthropic_key"`

	// TimeoutSeconds bounds every provider HTTP call.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`

	// Models are the per-purpose model identifiers.
	Models ModelsConfig `json:"models" mapstructure:"models"`
}

// ModelsConfig holds the per-purpose model identifiers.
type ModelsConfig struct {
	Router       string `json:"router" mapstructure:"router"`
	Command      string `json:"command" mapstructure:"command"`
	Conversation string `json:"conversation" mapstructure:"conversation"`
	Transcribe   string `json:"transcribe" mapstructure:"transcribe"`
}

// CacheConfig holds intent-cache configuration.
type CacheConfig struct {
	// TTLSeconds is the lifetime of cached intents and answers.
	TTLSeconds int `json:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default config path.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig("")
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance with a
// custom config file path.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(configPath)
	})
	return configInstance, configErr
}

// MustGetConfig returns the singleton Configuration instance and panics
// if it cannot be loaded. Use only where the application cannot proceed
// without configuration.
func MustGetConfig() *Configuration {
	cfg, err := GetConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if required
// fields are missing or inconsistent.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if !c.Provider.Kind.IsValid() {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"provider.kind '%s' is invalid, must be one of: gemini, claude",
			c.Provider.Kind,
		))
	}

	switch c.Provider.Kind {
	case domain.ProviderGemini:
		if len(c.Provider.GeminiKeys) == 0 {
			validationErrors = append(validationErrors,
				"provider.gemini_keys cannot be empty, at least one API key is required")
		}
	case domain.ProviderClaude:
		if c.Provider.AnthropicKey == "" {
			validationErrors = append(validationErrors,
				"provider.anthropic_key is required for the claude provider")
		}
	}

	if c.Cache.TTLSeconds <= 0 {
		validationErrors = append(validationErrors, "cache.ttl_seconds must be positive")
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
