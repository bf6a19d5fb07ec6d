// Package config defines the application configuration and its loading
// rules. Values come from an optional YAML file overridden by environment
// variables with the SHEETSENSE_ prefix; secrets such as the LLM API key
// are expected from the environment and are never logged.
package config

import (
	"fmt"
	"time"

	"github.com/voracio/sheetsense/pkg/errors"
)

// Config is the root configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Engine   EngineConfig   `mapstructure:"engine"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Synonyms SynonymsConfig `mapstructure:"synonyms"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig carries the resolution tunables.
type EngineConfig struct {
	TableThreshold int  `mapstructure:"table_threshold"`
	LineThreshold  int  `mapstructure:"line_threshold"`
	ContextRadius  int  `mapstructure:"context_radius"`
	EnableFallback bool `mapstructure:"enable_fallback"`
	BatchFallback  bool `mapstructure:"batch_fallback"`
}

// LLMConfig configures the completion endpoint used by the fallback stage.
// APIKey is read from SHEETSENSE_LLM_API_KEY when unset in the file.
type LLMConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// SynonymsConfig points at an optional synonym file that is hot-reloaded
// while the server runs. When Path is empty the built-in table is used.
type SynonymsConfig struct {
	Path string `mapstructure:"path"`
}

// Validate rejects configurations that cannot serve requests.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.Newf(errors.CodeInvalidParam, "invalid server port %d", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.CodeInvalidParam, "invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Newf(errors.CodeInvalidParam, "invalid log format %q", c.Log.Format)
	}
	if c.Engine.TableThreshold < 0 || c.Engine.TableThreshold > 100 {
		return errors.Newf(errors.CodeInvalidParam, "table threshold %d out of range", c.Engine.TableThreshold)
	}
	if c.Engine.LineThreshold < 0 || c.Engine.LineThreshold > 100 {
		return errors.Newf(errors.CodeInvalidParam, "line threshold %d out of range", c.Engine.LineThreshold)
	}
	if c.Engine.ContextRadius <= 0 {
		return errors.Newf(errors.CodeInvalidParam, "context radius %d must be positive", c.Engine.ContextRadius)
	}
	if c.Engine.EnableFallback && c.LLM.BaseURL == "" {
		return errors.New(errors.CodeInvalidParam, "fallback enabled but llm.base_url is empty")
	}
	return nil
}
