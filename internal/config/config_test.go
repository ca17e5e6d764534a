package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LLMSESSION_PROVIDER", "LLMSESSION_MODEL", "LLMSESSION_ENDPOINT",
		"LLMSESSION_LOG_LEVEL", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Empty(t, cfg.Model, "model default depends on the final provider")
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Style)
	assert.False(t, cfg.Journal.Enabled)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	// Should return defaults
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadNonOpenAIProviderHasNoDefaultModel(t *testing.T) {
	for _, provider := range []string{"claude", "ollama"} {
		t.Run(provider, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte("provider: "+provider+"\napiKey: k\n"), 0o600))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, provider, cfg.Provider)
			assert.Empty(t, cfg.Model)
			assert.Contains(t, issuePaths(Validate(&cfg)), "model")
		})
	}
}

func TestLoadProviderEnvOverrideHasNoDefaultModel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMSESSION_PROVIDER", "ollama")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Empty(t, cfg.Model)
	assert.Contains(t, issuePaths(Validate(&cfg)), "model")
}

func TestLoadProviderEnvOverrideToOpenAIGetsDefaultModel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMSESSION_PROVIDER", "openai")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: ollama\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.Model)
}

func TestLoadValidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
provider: claude
apiKey: sk-test
model: claude-haiku-4-5
maxTokens: 512
temperature: 0.2
systemPrompt: Be brief.
logging:
  level: debug
  style: pretty
  file: /tmp/llmsession.log
journal:
  enabled: true
  path: /tmp/journal.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "claude-haiku-4-5", cfg.Model)
	assert.Equal(t, 512, cfg.MaxTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-9)
	assert.Equal(t, "Be brief.", cfg.SystemPrompt)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Style)
	assert.Equal(t, "/tmp/llmsession.log", cfg.Logging.File)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal.Path)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  enabled: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4.1-nano", cfg.Model)
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.True(t, cfg.Journal.Enabled)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{invalid yaml"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMSESSION_PROVIDER", "OLLAMA")
	t.Setenv("LLMSESSION_MODEL", "llama3")
	t.Setenv("LLMSESSION_LOG_LEVEL", "TRACE")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "llama3", cfg.Model)
	assert.Equal(t, "trace", cfg.Logging.Level)
}

func TestLoadAPIKeyFromProviderEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.APIKey)
}

func TestLoadAPIKeyExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("MY_KEY", "sk-expanded")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiKey: ${MY_KEY}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-expanded", cfg.APIKey)
}

func TestLoadAPIKeyUnsetReference(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiKey: ${LLMSESSION_TEST_UNSET_KEY}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOO_TOKEN", "abc")
	assert.Equal(t, "abc", expandEnvVars("${FOO_TOKEN}"))
	assert.Equal(t, "pre-abc-post", expandEnvVars("pre-${FOO_TOKEN}-post"))
	assert.Equal(t, "${NOT_SET_XYZ_123}", expandEnvVars("${NOT_SET_XYZ_123}"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=sk-dotenv\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "sk-dotenv", os.Getenv("OPENAI_API_KEY"))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-existing")
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=sk-dotenv\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "sk-existing", os.Getenv("OPENAI_API_KEY"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestNeedsAPIKey(t *testing.T) {
	assert.True(t, Config{Provider: "openai"}.NeedsAPIKey())
	assert.True(t, Config{Provider: "claude"}.NeedsAPIKey())
	assert.False(t, Config{Provider: "ollama"}.NeedsAPIKey())
}

func TestLoadRawAndSaveRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	raw := map[string]any{
		"logging": map[string]any{
			"level": "debug",
		},
	}

	require.NoError(t, SaveRaw(path, raw))

	loaded, err := LoadRaw(path)
	require.NoError(t, err)

	val, ok := GetValueAtPath(loaded, []string{"logging", "level"})
	assert.True(t, ok)
	assert.Equal(t, "debug", val)
}

func TestLoadRawMissingFile(t *testing.T) {
	raw, err := LoadRaw(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, raw)
}
