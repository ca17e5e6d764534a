package config

import "fmt"

// DefaultSystemPrompt seeds the conversation state of stateful sessions.
const DefaultSystemPrompt = "You are a concise, professional, and friendly assistant."

// DefaultOpenAIModel is used when the provider is openai and no model is set.
// Other providers have no default model.
const DefaultOpenAIModel = "gpt-4.1-nano"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied. Model is left
// empty: the default model depends on the final provider and is filled in
// by Load.
func Defaults() Config {
	return Config{
		Provider:     "openai",
		SystemPrompt: DefaultSystemPrompt,
		Logging: LoggingConfig{
			Level: "info",
			Style: "json",
		},
		Journal: JournalConfig{
			Enabled: false,
		},
	}
}
