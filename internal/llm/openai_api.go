package llm

import (
	"context"
	"strings"
	"time"
)

const (
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "gpt-4.1-nano"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// OpenAIAPIClient is a direct HTTP client for the OpenAI chat completions API.
type OpenAIAPIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  httpDoer
}

// NewOpenAIAPIClient creates a new OpenAI API client. An empty baseURL uses
// the public endpoint; an empty model uses DefaultOpenAIModel.
func NewOpenAIAPIClient(apiKey, model, baseURL string) *OpenAIAPIClient {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIAPIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

// Name returns the provider name.
func (c *OpenAIAPIClient) Name() string { return "openai" }

// Complete sends a non-streaming chat completion request.
func (c *OpenAIAPIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := checkMessages(c.Name(), req.Messages); err != nil {
		return nil, err
	}
	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.model
	}
	body := openAIRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = req.MaxTokens
	}

	var result openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := postJSON(ctx, c.client, c.Name(), c.baseURL+"/chat/completions", headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, providerErrorf(c.Name(), 0, "response contained no choices")
	}

	resp := &CompletionResponse{
		Content:    result.Choices[0].Message.Content,
		StopReason: result.Choices[0].FinishReason,
		Model:      result.Model,
		Duration:   time.Since(start),
	}
	if result.Usage != nil {
		resp.Usage = Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
		}
	}
	return resp, nil
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_completion_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type openAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   *openAIUsage   `json:"usage"`
}

type openAIChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type openAIUsage struct {
	PromptTokens     *int `json:"prompt_tokens"`
	CompletionTokens *int `json:"completion_tokens"`
}
