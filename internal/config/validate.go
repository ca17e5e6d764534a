package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
//
// A missing API key is deliberately not an issue: calls made without one
// fail at invocation time with an authentication error, which is then
// logged like any other provider failure.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	validProviders := []string{"openai", "claude", "ollama"}
	if !slices.Contains(validProviders, cfg.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.Provider),
		})
	}

	if cfg.Provider != "openai" && cfg.Model == "" {
		issues = append(issues, ValidationIssue{
			Path:    "model",
			Message: fmt.Sprintf("required for provider %q", cfg.Provider),
		})
	}

	if cfg.MaxTokens < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "maxTokens",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.MaxTokens),
		})
	}

	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		issues = append(issues, ValidationIssue{
			Path:    "temperature",
			Message: fmt.Sprintf("must be 0-2, got %g", *cfg.Temperature),
		})
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStyles := []string{"json", "pretty"}
	if cfg.Logging.Style != "" && !slices.Contains(validStyles, cfg.Logging.Style) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.style",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.Style),
		})
	}

	return issues
}
