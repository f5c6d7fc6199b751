// Package handler provides the HTTP handlers for the Milo AI backend.
package handler

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/milo-ai/milo-backend/internal/assistant"
	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/milo-ai/milo-backend/internal/normalize"
)

// internalErrorMessage is the generic user-facing message for failures
// that must not leak provider detail to the client.
const internalErrorMessage = "An internal server error occurred. Please try again later."

// AIHandler exposes the assistant flows over HTTP.
type AIHandler struct {
	assistant *assistant.Assistant
	ring      *domain.KeyRing
	logger    *slog.Logger
}

// AIHandlerOption is a functional option for configuring AIHandler.
type AIHandlerOption func(*AIHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) AIHandlerOption {
	return func(h *AIHandler) {
		h.logger = logger
	}
}

// WithKeyRing attaches the provider key ring for health reporting.
func WithKeyRing(ring *domain.KeyRing) AIHandlerOption {
	return func(h *AIHandler) {
		h.ring = ring
	}
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(asst *assistant.Assistant, opts ...AIHandlerOption) *AIHandler {
	h := &AIHandler{
		assistant: asst,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

type responseRequest struct {
	Prompt   string           `json:"prompt"`
	Contacts []domain.Contact `json:"contacts"`
}

type routerRequest struct {
	Prompt string `json:"prompt"`
}

type transcribeRequest struct {
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType"`
	Language string `json:"language"`
}

// HandleResponse handles POST /response: classify the prompt, then
// branch to command extraction or conversation.
func (h *AIHandler) HandleResponse(c *gin.Context) {
	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: 'prompt' must be a string.",
		})
		return
	}

	result, err := h.assistant.Respond(c.Request.Context(), req.Prompt, req.Contacts)
	if err != nil {
		h.logger.Error("response flow failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, domain.ErrorAction(internalErrorMessage))
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleRouter handles POST /router: intent classification only.
// A reply the normalizer cannot parse degrades to {"intent":"error"};
// an out-of-set label or provider failure is a hard 500.
func (h *AIHandler) HandleRouter(c *gin.Context) {
	var req routerRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: 'prompt' must be a string.",
		})
		return
	}

	label, err := h.assistant.Classify(c.Request.Context(), req.Prompt)
	if err != nil {
		var pe *normalize.ParseError
		if errors.As(err, &pe) {
			h.logger.Warn("router reply was not valid JSON",
				slog.String("raw", pe.Raw),
			)
			c.JSON(http.StatusOK, gin.H{"intent": "error"})
			return
		}

		h.logger.Error("intent classification failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"action":  "error",
			"message": internalErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"intent": label})
}

// HandleTranscribe handles POST /transcribe. Input shape is validated
// here so a bad request never reaches the provider.
func (h *AIHandler) HandleTranscribe(c *gin.Context) {
	var req transcribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Audio == "" || req.MimeType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing audio or mimeType"})
		return
	}

	if _, err := base64.StdEncoding.DecodeString(req.Audio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base64 audio data"})
		return
	}

	transcription, err := h.assistant.Transcribe(c.Request.Context(), req.Audio, req.MimeType, req.Language)
	if err != nil {
		h.logger.Error("transcription failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transcribe audio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcription": transcription})
}

// HandleHealth handles GET /health.
func (h *AIHandler) HandleHealth(c *gin.Context) {
	keys := 1
	if h.ring != nil {
		keys = h.ring.Len()
	}

	status := "healthy"
	if keys == 0 {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"api_keys": keys,
	})
}
