package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/carousel-backend/internal/pkg/httpx"
	"github.com/yungbote/carousel-backend/internal/platform/envutil"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// Client calls the OpenAI Responses API. Config generation only needs two
// shapes: schema-constrained JSON and plain text.
type Client interface {
	// GenerateJSON asks for output conforming to the given JSON schema and
	// returns the parsed object.
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)

	// GenerateText returns the raw assistant text.
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type client struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
}

// NewClient reads its configuration from the environment: OPENAI_API_KEY
// (required), OPENAI_BASE_URL, OPENAI_MODEL, OPENAI_TIMEOUT_SECONDS and
// OPENAI_MAX_RETRIES.
func NewClient(log *logger.Logger) (Client, error) {
	apiKey := envutil.String("OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	timeout := envutil.Int("OPENAI_TIMEOUT_SECONDS", 60)
	if timeout <= 0 {
		timeout = 60
	}
	maxRetries := envutil.Int("OPENAI_MAX_RETRIES", 4)
	if maxRetries < 0 {
		maxRetries = 4
	}

	return &client{
		log:        log.With("client", "openai"),
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL:    strings.TrimRight(envutil.String("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		apiKey:     apiKey,
		model:      envutil.String("OPENAI_MODEL", "gpt-5.2"),
		maxRetries: maxRetries,
	}, nil
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// Wire types for POST /v1/responses.

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type schemaFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict"`
}

type textOptions struct {
	Format schemaFormat `json:"format"`
}

type responsesRequest struct {
	Model       string         `json:"model"`
	Input       []inputMessage `json:"input"`
	Temperature float64        `json:"temperature,omitempty"`
	Text        *textOptions   `json:"text,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

// post sends the request, retrying transient failures with capped
// exponential backoff. A server Retry-After header wins over the backoff.
func (c *client) post(ctx context.Context, req responsesRequest) (*responsesResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	backoff := 1 * time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		parsed, resp, err := c.send(ctx, payload)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return nil, err
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("openai request failed; retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err)
		time.Sleep(sleepFor)
		backoff *= 2
	}
	return nil, lastErr
}

func (c *client) send(ctx context.Context, payload []byte) (*responsesResponse, *http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/responses", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, &openAIHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed responsesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, resp, fmt.Errorf("decode response: %w", err)
	}
	return &parsed, resp, nil
}

// firstOutputText pulls the first non-empty assistant output_text block.
func firstOutputText(resp *responsesResponse) string {
	for _, out := range resp.Output {
		if out.Type != "message" || out.Role != "assistant" {
			continue
		}
		for _, content := range out.Content {
			if content.Type == "output_text" && strings.TrimSpace(content.Text) != "" {
				return content.Text
			}
		}
	}
	return ""
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	if schemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if schema == nil {
		return nil, errors.New("schema required")
	}

	resp, err := c.post(ctx, responsesRequest{
		Model: c.model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
		Text: &textOptions{Format: schemaFormat{
			Type:   "json_schema",
			Name:   schemaName,
			Schema: schema,
			Strict: true,
		}},
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Refusal) != "" {
		return nil, fmt.Errorf("model refused: %s", resp.Refusal)
	}
	raw := firstOutputText(resp)
	if raw == "" {
		return nil, errors.New("no output_text found in response")
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return out, nil
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	resp, err := c.post(ctx, responsesRequest{
		Model: c.model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Refusal) != "" {
		return "", fmt.Errorf("model refused: %s", resp.Refusal)
	}
	raw := firstOutputText(resp)
	if raw == "" {
		return "", errors.New("no output_text found in response")
	}
	return raw, nil
}
