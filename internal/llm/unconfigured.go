package llm

import (
	"context"
	"net/http"
)

// unconfiguredClient stands in for a provider whose credentials are missing.
// Every call fails with an authentication error so the invocation layer
// still logs and propagates it like any other provider failure.
type unconfiguredClient struct {
	provider string
	reason   string
}

// NewUnconfiguredClient returns a Client that always fails with a 401
// ProviderError carrying reason.
func NewUnconfiguredClient(provider, reason string) Client {
	return &unconfiguredClient{provider: provider, reason: reason}
}

func (u *unconfiguredClient) Name() string { return u.provider }

func (u *unconfiguredClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return nil, providerErrorf(u.provider, http.StatusUnauthorized, "%s", u.reason)
}
