// Package main is the entry point for the milo-backend server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/milo-ai/milo-backend/internal/adapter"
	"github.com/milo-ai/milo-backend/internal/assistant"
	"github.com/milo-ai/milo-backend/internal/config"
	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/milo-ai/milo-backend/internal/handler"
	"github.com/milo-ai/milo-backend/internal/security"
	"github.com/milo-ai/milo-backend/internal/ui"
)

func main() {
	// A .env file is a local development convenience; absence is normal.
	_ = godotenv.Load()

	logger := setupLogger()

	logger.Info("starting milo-backend")

	cfg, err := config.GetConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("provider", string(cfg.Provider.Kind)),
		slog.Int("gemini_keys", len(cfg.Provider.GeminiKeys)),
	)

	provider, ring, err := buildProvider(cfg, logger)
	if err != nil {
		logger.Error("failed to build provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := assistant.NewCache(
		assistant.WithCacheTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second),
		assistant.WithCacheLogger(logger),
	)

	asst := assistant.New(provider, assistant.Models{
		Router:       cfg.Provider.Models.Router,
		Command:      cfg.Provider.Models.Command,
		Conversation: cfg.Provider.Models.Conversation,
		Transcribe:   cfg.Provider.Models.Transcribe,
	},
		assistant.WithCache(cache),
		assistant.WithLogger(logger),
	)

	aiHandler := handler.NewAIHandler(asst,
		handler.WithLogger(logger),
		handler.WithKeyRing(ring),
	)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(handler.CORSMiddleware())
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.LoggingMiddleware(logger))

	api := router.Group("/api/v1/ai")
	{
		api.POST("/response", aiHandler.HandleResponse)
		api.POST("/router", aiHandler.HandleRouter)
		api.POST("/transcribe", aiHandler.HandleTranscribe)
	}

	// Unprefixed routes kept for wallet clients that predate the /api/v1
	// namespace.
	router.POST("/response", aiHandler.HandleResponse)
	router.POST("/router", aiHandler.HandleRouter)
	router.POST("/transcribe", aiHandler.HandleTranscribe)

	router.GET("/health", aiHandler.HandleHealth)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("address", addr))

		ui.PrintBanner()
		keys := 1
		if ring != nil {
			keys = ring.Len()
		}
		ui.PrintStartupInfo(cfg.Server.Host, cfg.Server.Port, string(cfg.Provider.Kind), keys)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	ui.PrintShutdown()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
	ui.PrintGoodbye()
}

// buildProvider constructs the configured provider. Gemini gets a key
// ring with rotation; Claude runs on its single credential. The ring is
// nil for Claude.
func buildProvider(cfg *config.Configuration, logger *slog.Logger) (adapter.Provider, *domain.KeyRing, error) {
	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second

	switch cfg.Provider.Kind {
	case domain.ProviderClaude:
		client := &http.Client{Timeout: timeout}
		return adapter.NewClaudeAdapter(cfg.Provider.AnthropicKey,
			adapter.WithClaudeHTTPClient(client),
		), nil, nil

	case domain.ProviderGemini:
		ring := domain.NewKeyRing(cfg.Provider.GeminiKeys)
		if ring.Len() == 0 {
			return nil, nil, domain.ErrNoKeysAvailable
		}

		factory := func(apiKey string) adapter.Provider {
			return adapter.NewGeminiAdapter(apiKey, adapter.WithTimeout(timeout))
		}

		rotating := adapter.NewRotatingAdapter(ring, factory,
			adapter.WithRotationLogger(logger),
		)
		return rotating, ring, nil

	default:
		return nil, nil, fmt.Errorf("unsupported provider kind: %s", cfg.Provider.Kind)
	}
}

// setupLogger creates a structured JSON logger with credential redaction.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo

	if envLevel := os.Getenv("MILO_LOGGING_LEVEL"); envLevel != "" {
		switch envLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	inner := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(security.NewRedactedHandler(inner))

	slog.SetDefault(logger)

	return logger
}
