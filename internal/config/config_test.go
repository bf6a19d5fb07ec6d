package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 85, cfg.Engine.TableThreshold)
	assert.Equal(t, 70, cfg.Engine.LineThreshold)
	assert.Equal(t, 20, cfg.Engine.ContextRadius)
	assert.False(t, cfg.Engine.EnableFallback)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
log:
  level: debug
  format: console
engine:
  table_threshold: 90
  enable_fallback: true
llm:
  model: gpt-4o
synonyms:
  path: /etc/sheetsense/synonyms.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 90, cfg.Engine.TableThreshold)
	assert.True(t, cfg.Engine.EnableFallback)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "/etc/sheetsense/synonyms.yaml", cfg.Synonyms.Path)
	// Untouched keys keep their defaults.
	assert.Equal(t, 70, cfg.Engine.LineThreshold)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHEETSENSE_SERVER_PORT", "7070")
	t.Setenv("SHEETSENSE_LLM_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "plain" }},
		{"table threshold range", func(c *Config) { c.Engine.TableThreshold = 101 }},
		{"line threshold range", func(c *Config) { c.Engine.LineThreshold = -1 }},
		{"radius positive", func(c *Config) { c.Engine.ContextRadius = 0 }},
		{"fallback without endpoint", func(c *Config) {
			c.Engine.EnableFallback = true
			c.LLM.BaseURL = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWatchReload(t *testing.T) {
	path := writeConfig(t, "engine:\n  table_threshold: 80\n")

	updates := make(chan *Config, 4)
	cfg, err := Watch(path, func(c *Config) { updates <- c })
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Engine.TableThreshold)

	require.NoError(t, os.WriteFile(path, []byte("engine:\n  table_threshold: 95\n"), 0o644))

	select {
	case next := <-updates:
		assert.Equal(t, 95, next.Engine.TableThreshold)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatchRequiresPath(t *testing.T) {
	_, err := Watch("", func(*Config) {})
	assert.Error(t, err)
}
