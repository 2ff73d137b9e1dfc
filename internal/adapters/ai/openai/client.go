// Package openai implements the explanation client against an
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/aicalc/internal/domain"
	"github.com/bnema/aicalc/internal/ports"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	// Near-deterministic sampling: the narrative should be reproducible.
	defaultTemperature = 0.1

	maxResponseBytes = 1 << 20
)

// promptTemplate embeds the raw expression verbatim. A hostile expression
// can alter prompt semantics; accepted for a single-user local tool.
const promptTemplate = "You are a scientific calculator assistant. " +
	"Provide a critical step-by-step extract explaining the evaluation of the following expression. " +
	"State the result if it is computable and call out any symbolic placeholders that cannot be resolved.\n\n" +
	"Expression: %s"

type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	HTTPClient  *http.Client
}

type Client struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	httpClient  *http.Client
}

var _ ports.Explainer = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		httpClient:  cfg.HTTPClient,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Explain issues exactly one synchronous request and returns the narrative
// with surrounding whitespace trimmed. No retry, no backoff; the transport
// timeout is whatever the configured http.Client carries.
func (c *Client) Explain(ctx context.Context, expression string) (string, error) {
	if strings.TrimSpace(expression) == "" {
		return "", domain.ErrMissingInput
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return "", domain.ErrUnconfiguredClient
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(promptTemplate, expression)},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "aicalc/explain")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExplainFailed, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrExplainFailed, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrExplainFailed, response.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded chatResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrExplainFailed, err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrExplainFailed, decoded.Error.Type, decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", domain.ErrExplainFailed)
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
