package config

import (
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/voracio/sheetsense/pkg/errors"
)

const envPrefix = "SHEETSENSE"

// setDefaults registers every key so environment overrides bind even
// without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("engine.table_threshold", 85)
	v.SetDefault("engine.line_threshold", 70)
	v.SetDefault("engine.context_radius", 20)
	v.SetDefault("engine.enable_fallback", false)
	v.SetDefault("engine.batch_fallback", false)

	v.SetDefault("llm.base_url", "https://api.openai.com")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", 100)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.max_retries", 1)
	v.SetDefault("llm.retry_backoff", 500*time.Millisecond)

	v.SetDefault("synonyms.path", "")
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParam, "read config file")
		}
	}
	return v, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "parse configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration from the file at path (optional, may be
// empty) with environment overrides applied on top.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// Watch loads the configuration and re-parses it whenever the file
// changes, invoking onChange with each valid new snapshot. Invalid edits
// are dropped and the previous configuration stays in effect. Watching
// requires a file path.
func Watch(path string, onChange func(*Config)) (*Config, error) {
	if path == "" {
		return nil, errors.New(errors.CodeInvalidParam, "config watch requires a file path")
	}
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	v.OnConfigChange(func(fsnotify.Event) {
		next, err := unmarshal(v)
		if err != nil {
			return
		}
		onChange(next)
	})
	v.WatchConfig()
	return cfg, nil
}
