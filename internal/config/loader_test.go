package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("ZDOC_TEST_HOST", "db.internal")

	assert.Equal(t, "host: db.internal", expandEnv("host: ${ZDOC_TEST_HOST}"))
	assert.Equal(t, "port: 5433", expandEnv("port: ${ZDOC_TEST_PORT_UNSET:5433}"))
	assert.Equal(t, "key: ", expandEnv("key: ${ZDOC_TEST_KEY_UNSET:}"))
	assert.Equal(t, "raw: ${ZDOC_TEST_RAW_UNSET}", expandEnv("raw: ${ZDOC_TEST_RAW_UNSET}"))
}

func TestLoadFrom_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "z-doc-ai-api", cfg.App.Name)
	assert.Equal(t, 500, cfg.Generation.ContextMaxRunes)
	assert.Equal(t, 200, cfg.Generation.PreviewRunes)
	assert.Equal(t, 5, cfg.Generation.DefaultOutlineCount)
	assert.Equal(t, 20, cfg.Generation.MaxOutlineCount)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout)
	assert.False(t, cfg.Cache.Redis.Enabled)
}

func TestLoadFrom_FileWithProviders(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZDOC_TEST_API_KEY", "sk-test")
	yaml := `
llm:
  default_provider: primary
  request_timeout: 15s
  providers:
    primary:
      kind: openai
      api_key: ${ZDOC_TEST_API_KEY}
      model: gpt-4o-mini
      max_tokens: 1024
generation:
  context_max_runes: 800
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.LLM.RequestTimeout)
	require.Contains(t, cfg.LLM.Providers, "primary")
	p := cfg.LLM.Providers["primary"]
	assert.Equal(t, ProviderKindOpenAI, p.Kind)
	assert.Equal(t, "sk-test", p.APIKey)
	assert.Equal(t, 1024, p.MaxTokens)
	assert.Equal(t, 800, cfg.Generation.ContextMaxRunes)
	assert.Equal(t, 200, cfg.Generation.PreviewRunes)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Generation: GenerationConfig{
			ContextMaxRunes: 500, PreviewRunes: 200, DefaultOutlineCount: 5, MaxOutlineCount: 20,
		}}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Generation.DefaultOutlineCount = 21
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LLM.DefaultProvider = "missing"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LLM.DefaultProvider = "p"
	cfg.LLM.Providers = map[string]ProviderConfig{"p": {Kind: "grpc"}}
	assert.Error(t, cfg.Validate())
}
