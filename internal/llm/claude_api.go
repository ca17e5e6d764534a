package llm

import (
	"context"
	"strings"
	"time"
)

const (
	defaultClaudeBaseURL   = "https://api.anthropic.com/v1"
	defaultClaudeMaxTokens = 1024
	claudeAPIVersion       = "2023-06-01"
)

// ClaudeAPIClient is a direct HTTP client for the Anthropic messages API.
type ClaudeAPIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  httpDoer
}

// NewClaudeAPIClient creates a new Claude API client.
func NewClaudeAPIClient(apiKey, model, baseURL string) *ClaudeAPIClient {
	if baseURL == "" {
		baseURL = defaultClaudeBaseURL
	}
	return &ClaudeAPIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

// Name returns the provider name.
func (c *ClaudeAPIClient) Name() string { return "claude" }

// Complete sends a non-streaming completion request to the messages API.
func (c *ClaudeAPIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := checkMessages(c.Name(), req.Messages); err != nil {
		return nil, err
	}
	start := time.Now()

	var result claudeAPIResponse
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": claudeAPIVersion,
	}
	if err := postJSON(ctx, c.client, c.Name(), c.baseURL+"/messages", headers, c.buildRequestBody(req), &result); err != nil {
		return nil, err
	}

	return c.responseToCompletion(&result, time.Since(start)), nil
}

// buildRequestBody lifts system messages into the top-level system field,
// since the messages API only accepts user and assistant turns.
func (c *ClaudeAPIClient) buildRequestBody(req CompletionRequest) claudeAPIRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultClaudeMaxTokens
	}

	var system []string
	turns := make([]Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	return claudeAPIRequest{
		Model:       model,
		System:      strings.Join(system, "\n\n"),
		Messages:    turns,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}
}

func (c *ClaudeAPIClient) responseToCompletion(resp *claudeAPIResponse, duration time.Duration) *CompletionResponse {
	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	out := &CompletionResponse{
		Content:    content.String(),
		StopReason: resp.StopReason,
		Model:      resp.Model,
		Duration:   duration,
	}
	if resp.Usage != nil {
		out.Usage = Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		}
	}
	return out
}

// API request/response structures

type claudeAPIRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type claudeAPIResponse struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Role       string               `json:"role"`
	Content    []claudeContentBlock `json:"content"`
	Model      string               `json:"model"`
	StopReason string               `json:"stop_reason"`
	Usage      *claudeUsage         `json:"usage"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type claudeUsage struct {
	InputTokens  *int `json:"input_tokens"`
	OutputTokens *int `json:"output_tokens"`
}
