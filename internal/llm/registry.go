package llm

import (
	"fmt"
	"sync"

	"github.com/soyeahso/llmsession/internal/config"
	"github.com/soyeahso/llmsession/internal/logging"
)

// Registry manages LLM provider clients and resolves model references to clients.
type Registry struct {
	mu       sync.RWMutex
	clients  map[string]Client // provider name → client
	aliases  map[string]string // model alias → provider name
	fallback string            // default provider name
	log      *logging.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		clients: make(map[string]Client),
		aliases: make(map[string]string),
		log:     log.Sub("llm.registry"),
	}
}

// Register adds a client under the given provider name.
func (r *Registry) Register(name string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	r.log.Debug().Str("provider", name).Msg("registered LLM provider")
}

// Alias maps a model name/alias to a provider.
// e.g., Alias("gpt-4.1-nano", "openai") means "gpt-4.1-nano" resolves to the "openai" provider.
func (r *Registry) Alias(model, provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[model] = provider
}

// SetFallback sets the default provider used when no model/provider match is found.
func (r *Registry) SetFallback(provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = provider
}

// Resolve returns the Client for the given model reference.
// Resolution order: exact provider name → alias → fallback.
func (r *Registry) Resolve(model string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.clients[model]; ok {
		return c, nil
	}

	if provider, ok := r.aliases[model]; ok {
		if c, ok := r.clients[provider]; ok {
			return c, nil
		}
	}

	if r.fallback != "" {
		if c, ok := r.clients[r.fallback]; ok {
			return c, nil
		}
	}

	return nil, fmt.Errorf("no LLM provider for model %q", model)
}

// List returns all registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for n := range r.clients {
		names = append(names, n)
	}
	return names
}

// providerAliases are well-known model names per provider.
var providerAliases = map[string][]string{
	"openai": {"gpt-4.1-nano", "gpt-4.1-mini", "gpt-4.1", "gpt-4o", "gpt-4o-mini"},
	"claude": {"sonnet", "opus", "haiku", "claude-sonnet", "claude-opus", "claude-haiku"},
	"ollama": {"llama", "llama3", "mistral"},
}

// NewRegistryFromConfig builds a Registry holding the configured provider,
// which also becomes the fallback. A provider that needs an API key but has
// none is registered as an unconfigured client: resolution still succeeds,
// and every call fails with an authentication error.
func NewRegistryFromConfig(cfg config.Config, log *logging.Logger) *Registry {
	reg := NewRegistry(log)

	var client Client
	switch cfg.Provider {
	case "openai":
		client = NewOpenAIAPIClient(cfg.APIKey, cfg.Model, cfg.Endpoint)
	case "claude":
		client = NewClaudeAPIClient(cfg.APIKey, cfg.Model, cfg.Endpoint)
	case "ollama":
		client = NewOllamaAPIClient(cfg.Endpoint, cfg.Model)
	default:
		reg.log.Warn().Str("provider", cfg.Provider).Msg("unknown provider, nothing registered")
		return reg
	}

	if cfg.NeedsAPIKey() && cfg.APIKey == "" {
		reg.log.Warn().Str("provider", cfg.Provider).Msg("no API key configured; calls will fail")
		client = NewUnconfiguredClient(cfg.Provider, fmt.Sprintf("missing API key for provider %q", cfg.Provider))
	}

	reg.Register(cfg.Provider, client)
	reg.SetFallback(cfg.Provider)
	for _, alias := range providerAliases[cfg.Provider] {
		reg.Alias(alias, cfg.Provider)
	}
	if cfg.Model != "" {
		reg.Alias(cfg.Model, cfg.Provider)
	}
	return reg
}
