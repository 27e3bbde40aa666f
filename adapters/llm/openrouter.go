package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"

	// One bounded shot per model, then move on.
	attemptTimeout = 15 * time.Second

	temperature = 0.7
	maxTokens   = 500

	// OpenRouter wants these for free-tier models.
	httpReferer = "https://github.com/lozanofamily/madrid-guide"
	appTitle    = "Los Lozano Madrid Travel Guide"
)

// DefaultModels is the fallback order: cheapest and most reliable options
// first. This is a cost tradeoff, not a latency one.
var DefaultModels = []string{
	"openrouter/auto",
	"meta-llama/llama-3.3-70b-instruct:free",
	"google/gemini-2.0-flash-exp:free",
	"mistralai/mistral-7b-instruct:free",
}

// OpenRouterClient implements domain.Completer against the OpenRouter
// chat-completions API, walking the model list until one answers.
type OpenRouterClient struct {
	apiKey  string
	baseURL string
	models  []string
	client  *http.Client
}

type Option func(*OpenRouterClient)

// WithBaseURL points the client at a different endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *OpenRouterClient) { c.baseURL = u }
}

// WithModels replaces the fallback list.
func WithModels(models []string) Option {
	return func(c *OpenRouterClient) { c.models = models }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *OpenRouterClient) { c.client = h }
}

func NewOpenRouterClient(apiKey string, opts ...Option) *OpenRouterClient {
	c := &OpenRouterClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		models:  DefaultModels,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete tries each model in order and returns the first usable reply.
// Attempts are strictly sequential; after the list is exhausted the last
// per-model reason is wrapped in domain.ErrExhausted.
func (c *OpenRouterClient) Complete(ctx context.Context, window []domain.ChatMessage) (domain.ChatMessage, error) {
	if c.apiKey == "" {
		return domain.ChatMessage{}, domain.ErrNoAPIKey
	}

	var lastReason string
	for _, model := range c.models {
		content, reason := c.attempt(ctx, model, window)
		if reason == "" {
			log.WithCtx(ctx).Info("completion succeeded", zap.String("model", model))
			return domain.ChatMessage{Role: domain.AssistantRole, Content: content}, nil
		}
		lastReason = reason
		log.WithCtx(ctx).Warn("completion attempt failed",
			zap.String("model", model),
			zap.String("reason", reason))
	}

	if lastReason == "" {
		lastReason = "all models busy"
	}
	return domain.ChatMessage{}, fmt.Errorf("%w: %s", domain.ErrExhausted, lastReason)
}

// attempt issues one request for one model. An empty reason means success.
func (c *OpenRouterClient) attempt(ctx context.Context, model string, window []domain.ChatMessage) (content, reason string) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	payload, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    window,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", "encoding request: " + err.Error()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", "building request: " + err.Error()
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", httpReferer)
	req.Header.Set("X-Title", appTitle)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "connection error"
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "connection error"
	}

	return classify(resp.StatusCode, body)
}

// classify decides whether one attempt produced a usable completion.
// Kept pure so the decision is testable without a network.
func classify(status int, body []byte) (content, reason string) {
	var cr completionResponse

	if status < 200 || status >= 300 {
		if err := json.Unmarshal(body, &cr); err == nil && cr.Error != nil && cr.Error.Message != "" {
			return "", cr.Error.Message
		}
		return "", fmt.Sprintf("model returned status %d", status)
	}

	if err := json.Unmarshal(body, &cr); err != nil {
		return "", "malformed completion response"
	}
	if len(cr.Choices) == 0 {
		return "", "model returned empty content"
	}

	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	if text == "" {
		return "", "model returned empty content"
	}
	return text, ""
}
