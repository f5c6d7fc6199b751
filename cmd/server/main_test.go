package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/milo-ai/milo-backend/internal/adapter"
	"github.com/milo-ai/milo-backend/internal/assistant"
	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/milo-ai/milo-backend/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGemini is a fake Gemini endpoint that rejects a known bad key and
// answers prompt templates with canned model replies.
type mockGemini struct {
	mu       sync.Mutex
	keyCalls map[string]int
	server   *httptest.Server
}

func newMockGemini(t *testing.T) *mockGemini {
	t.Helper()
	m := &mockGemini{keyCalls: map[string]int{}}

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		m.mu.Lock()
		m.keyCalls[key]++
		m.mu.Unlock()

		if key == "bad-key" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
			return
		}

		var req adapter.GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contents) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var promptText string
		for _, part := range req.Contents[0].Parts {
			promptText += part.Text
		}

		var reply string
		switch {
		case strings.Contains(promptText, "Classify the user's intent"):
			reply = "```json\n{\"intent\":\"command\"}\n```"
		case strings.Contains(promptText, "parses natural language commands"):
			reply = "```json\n{\"action\":\"transfer\",\"asset\":\"SUI\",\"amount\":\"5\",\"recipient\":\"0xabc\",\"reply\":\"Sending 5 SUI to Alex.\"}\n```"
		default:
			reply = "Hello from Milo!"
		}

		resp := adapter.GeminiResponse{
			Candidates: []adapter.GeminiCandidate{
				{Content: adapter.GeminiContent{Role: "model", Parts: []adapter.GeminiPart{{Text: reply}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	t.Cleanup(m.server.Close)
	return m
}

func (m *mockGemini) calls(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keyCalls[key]
}

// buildTestRouter assembles the same stack main builds, pointed at the
// mock endpoint.
func buildTestRouter(mock *mockGemini, keys []string) (*gin.Engine, *domain.KeyRing) {
	gin.SetMode(gin.TestMode)

	ring := domain.NewKeyRing(keys)
	factory := func(apiKey string) adapter.Provider {
		return adapter.NewGeminiAdapter(apiKey, adapter.WithBaseURL(mock.server.URL))
	}
	rotating := adapter.NewRotatingAdapter(ring, factory)

	asst := assistant.New(rotating, assistant.Models{
		Router:       "gemini-2.5-flash",
		Command:      "gemini-2.5-flash",
		Conversation: "gemini-2.5-flash",
		Transcribe:   "gemini-2.5-flash",
	})

	aiHandler := handler.NewAIHandler(asst, handler.WithKeyRing(ring))

	r := gin.New()
	r.POST("/response", aiHandler.HandleResponse)
	r.GET("/health", aiHandler.HandleHealth)
	return r, ring
}

func TestResponseFlowWithKeyRotation(t *testing.T) {
	mock := newMockGemini(t)
	router, ring := buildTestRouter(mock, []string{"bad-key", "good-key"})

	body := `{"prompt":"send 5 SUI to Alex","contacts":[{"name":"Alex","address":"0xabc"}]}`
	req := httptest.NewRequest(http.MethodPost, "/response", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var action domain.StructuredAction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &action))
	assert.Equal(t, domain.ActionTransfer, action.Action)
	assert.Equal(t, "SUI", action.Asset)
	assert.Equal(t, "0xabc", action.Recipient)

	// The bad key was tried once on the first provider call, then the
	// ring rotated and stayed on the working key for the second call.
	assert.Equal(t, 1, mock.calls("bad-key"))
	assert.Equal(t, 2, mock.calls("good-key"))
	assert.Equal(t, 1, ring.Index())
}

func TestResponseFlowSecondRequestSkipsBadKey(t *testing.T) {
	mock := newMockGemini(t)
	router, _ := buildTestRouter(mock, []string{"bad-key", "good-key"})

	send := func(prompt string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]any{
			"prompt":   prompt,
			"contacts": []domain.Contact{{Name: "Alex", Address: "0xabc"}},
		})
		req := httptest.NewRequest(http.MethodPost, "/response", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, send("send 5 SUI to Alex").Code)
	badAfterFirst := mock.calls("bad-key")

	require.Equal(t, http.StatusOK, send("send 2 USDC to Alex").Code)

	assert.Equal(t, badAfterFirst, mock.calls("bad-key"),
		"the rotated-away key must not be retried on later requests")
}

func TestHealthEndpoint(t *testing.T) {
	mock := newMockGemini(t)
	router, _ := buildTestRouter(mock, []string{"good-key"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(1), body["api_keys"])
}
