package llm

import (
	"fmt"
	"net/http"
)

// ProviderError is returned when an LLM provider fails. It is the only
// failure kind a Client produces: transport, auth, rate-limit and
// service-side errors all surface through it.
type ProviderError struct {
	Provider string
	Message  string
	Code     int // HTTP-like status code (401, 429, 500, etc.)
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// RateLimited reports whether the provider rejected the call for rate limits.
func (e *ProviderError) RateLimited() bool { return e.Code == http.StatusTooManyRequests }

// Unauthorized reports whether the provider rejected the credentials.
func (e *ProviderError) Unauthorized() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

func providerErrorf(provider string, code int, format string, args ...any) *ProviderError {
	return &ProviderError{Provider: provider, Code: code, Message: fmt.Sprintf(format, args...)}
}

// checkMessages rejects request payloads the remote service cannot accept.
func checkMessages(provider string, msgs []Message) error {
	if len(msgs) == 0 {
		return providerErrorf(provider, 0, "empty message sequence")
	}
	return nil
}
