package config

// Config is the root configuration for llmsession.
type Config struct {
	Provider     string        `yaml:"provider,omitempty"` // "openai" | "claude" | "ollama"
	APIKey       string        `yaml:"apiKey,omitempty"`   // may reference ${ENV_VAR}
	Model        string        `yaml:"model,omitempty"`
	Endpoint     string        `yaml:"endpoint,omitempty"` // base URL override
	MaxTokens    int           `yaml:"maxTokens,omitempty"`
	Temperature  *float64      `yaml:"temperature,omitempty"`
	SystemPrompt string        `yaml:"systemPrompt,omitempty"` // stateful sessions only
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Journal      JournalConfig `yaml:"journal,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	Style string `yaml:"style,omitempty"` // "json" | "pretty"
	File  string `yaml:"file,omitempty"`
}

// JournalConfig controls the SQLite event journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // defaults to <data>/journal.db
}

// NeedsAPIKey reports whether the configured provider requires credentials.
func (c Config) NeedsAPIKey() bool {
	return c.Provider != "ollama"
}
