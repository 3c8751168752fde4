package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

// capturingBackend records every request body sent to it and replies with the
// queued responses in order, repeating the last one once the queue drains.
type capturingBackend struct {
	mu        sync.Mutex
	paths     []string
	auths     []string
	bodies    []map[string]any
	responses []backendResponse
}

type backendResponse struct {
	status int
	body   string
}

func (b *capturingBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		b.mu.Lock()
		b.paths = append(b.paths, r.URL.Path)
		b.auths = append(b.auths, r.Header.Get("Authorization"))
		b.bodies = append(b.bodies, body)
		idx := len(b.paths) - 1
		if idx >= len(b.responses) {
			idx = len(b.responses) - 1
		}
		resp := b.responses[idx]
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}
}

func (b *capturingBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.paths)
}

// outputTextBody builds a minimal Responses API payload whose assistant
// message carries the given output_text.
func outputTextBody(text string) string {
	payload := map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", baseURL)
	t.Setenv("OPENAI_MODEL", "gpt-5.2")
	t.Setenv("OPENAI_MAX_RETRIES", "2")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "10")

	c, err := NewClient(testLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewClient(testLogger(t)); err == nil {
		t.Fatalf("expected error when OPENAI_API_KEY is unset")
	}
}

func TestNewClientRequiresLogger(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	if _, err := NewClient(nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

func TestGenerateJSON(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusOK, body: outputTextBody(`{"config":{"font_size":48},"explanation":"clean look"}`)},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	schema := map[string]any{"type": "object"}

	out, err := c.GenerateJSON(context.Background(), "system prompt", "user prompt", "design_config", schema)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	cfg, ok := out["config"].(map[string]any)
	if !ok {
		t.Fatalf("config missing from parsed output: %#v", out)
	}
	if got := cfg["font_size"].(float64); got != 48 {
		t.Fatalf("font_size = %v, want 48", got)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.paths[0] != "/v1/responses" {
		t.Fatalf("request path = %q, want /v1/responses", backend.paths[0])
	}
	if backend.auths[0] != "Bearer test-key" {
		t.Fatalf("authorization = %q, want Bearer test-key", backend.auths[0])
	}
	body := backend.bodies[0]
	if body["model"] != "gpt-5.2" {
		t.Fatalf("model = %v, want gpt-5.2", body["model"])
	}
	text, ok := body["text"].(map[string]any)
	if !ok {
		t.Fatalf("text block missing from request body: %#v", body)
	}
	format, ok := text["format"].(map[string]any)
	if !ok {
		t.Fatalf("text.format missing: %#v", text)
	}
	if format["type"] != "json_schema" {
		t.Fatalf("format type = %v, want json_schema", format["type"])
	}
	if format["name"] != "design_config" {
		t.Fatalf("format name = %v, want design_config", format["name"])
	}
	if format["strict"] != true {
		t.Fatalf("format strict = %v, want true", format["strict"])
	}
}

func TestGenerateJSONRequiresSchema(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusOK, body: outputTextBody(`{}`)},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.GenerateJSON(context.Background(), "s", "u", "", map[string]any{"type": "object"}); err == nil {
		t.Fatalf("expected error for empty schema name")
	}
	if _, err := c.GenerateJSON(context.Background(), "s", "u", "cfg", nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
	if backend.calls() != 0 {
		t.Fatalf("backend called %d times, want 0", backend.calls())
	}
}

func TestGenerateJSONRetriesServerError(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{status: http.StatusOK, body: outputTextBody(`{"ok":true}`)},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	out, err := c.GenerateJSON(context.Background(), "s", "u", "cfg", map[string]any{"type": "object"})
	if err != nil {
		t.Fatalf("GenerateJSON after retry: %v", err)
	}
	if out["ok"] != true {
		t.Fatalf("parsed output = %#v, want ok=true", out)
	}
	if backend.calls() != 2 {
		t.Fatalf("backend called %d times, want 2", backend.calls())
	}
}

func TestGenerateJSONDoesNotRetryClientError(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusBadRequest, body: `{"error":"bad schema"}`},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GenerateJSON(context.Background(), "s", "u", "cfg", map[string]any{"type": "object"})
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "openai http 400") {
		t.Fatalf("error = %v, want openai http 400", err)
	}
	if backend.calls() != 1 {
		t.Fatalf("backend called %d times, want 1", backend.calls())
	}
}

func TestGenerateJSONRefusal(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusOK, body: `{"refusal":"cannot comply","output":[]}`},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GenerateJSON(context.Background(), "s", "u", "cfg", map[string]any{"type": "object"})
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("error = %v, want refusal error", err)
	}
}

func TestGenerateJSONEmptyOutput(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusOK, body: `{"output":[]}`},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GenerateJSON(context.Background(), "s", "u", "cfg", map[string]any{"type": "object"})
	if err == nil || !strings.Contains(err.Error(), "no output_text") {
		t.Fatalf("error = %v, want no output_text error", err)
	}
}

func TestGenerateText(t *testing.T) {
	backend := &capturingBackend{responses: []backendResponse{
		{status: http.StatusOK, body: outputTextBody("plain answer")},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	got, err := c.GenerateText(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "plain answer" {
		t.Fatalf("GenerateText = %q, want %q", got, "plain answer")
	}
}
