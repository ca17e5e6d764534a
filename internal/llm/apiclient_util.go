package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soyeahso/llmsession/internal/version"
)

// defaultHTTPTimeout bounds a single provider round-trip.
const defaultHTTPTimeout = 120 * time.Second

// httpDoer is the subset of *http.Client the providers use.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// postJSON sends body as JSON to url and decodes a 200 response into out.
// Every failure is returned as a *ProviderError tagged with provider.
func postJSON(ctx context.Context, hc httpDoer, provider, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return providerErrorf(provider, 0, "failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return providerErrorf(provider, 0, "failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return providerErrorf(provider, 0, "request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return providerErrorf(provider, resp.StatusCode, "failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return providerErrorf(provider, resp.StatusCode, "%s", apiErrorMessage(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return providerErrorf(provider, 0, "failed to parse response: %v", err)
	}
	return nil
}

// apiErrorMessage extracts a readable message from a provider error body.
// OpenAI and Anthropic both use {"error":{"message":...}}; Ollama uses
// {"error":"..."}. Anything else is returned verbatim.
func apiErrorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		if nested.Error.Type != "" {
			return nested.Error.Type + ": " + nested.Error.Message
		}
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	return strings.TrimSpace(string(body))
}
