// Package cli implements the command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voracio/sheetsense/internal/config"
	"github.com/voracio/sheetsense/internal/engine"
	"github.com/voracio/sheetsense/internal/engine/fallback"
	"github.com/voracio/sheetsense/internal/engine/synonym"
	"github.com/voracio/sheetsense/internal/infrastructure/llm/openai"
	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
)

// rootOptions holds the persistent flag values shared by all subcommands.
type rootOptions struct {
	configPath string
	logLevel   string
	output     string
}

// NewRootCmd builds the command tree. version and commit are injected at
// link time by the build.
func NewRootCmd(version, commit string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "sheetsense",
		Short:         "Resolve product attributes from datasheet text",
		Long:          "sheetsense matches requested attribute names against extracted datasheet lines and tables, with an optional LLM fallback for attributes the local strategies cannot resolve.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json, csv)")

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// loadConfig reads the configuration and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// loadSynonyms returns the configured synonym table, falling back to the
// built-in one when no file is configured.
func loadSynonyms(cfg *config.Config) (*synonym.Table, error) {
	if cfg.Synonyms.Path == "" {
		return synonym.Default(), nil
	}
	entries, err := synonym.LoadFile(cfg.Synonyms.Path)
	if err != nil {
		return nil, err
	}
	return synonym.NewTable(entries), nil
}

// buildResolver assembles the engine from the configuration. The fallback
// stage is wired only when enabled.
func buildResolver(cfg *config.Config, syn *synonym.Table, logger logging.Logger, metrics engine.Metrics) *engine.Resolver {
	var fb *fallback.Resolver
	if cfg.Engine.EnableFallback {
		client := openai.NewClient(openai.Config{
			BaseURL:   cfg.LLM.BaseURL,
			APIKey:    cfg.LLM.APIKey,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
			Timeout:   cfg.LLM.Timeout,
		}, logger)
		fb = fallback.NewResolver(client, syn, fallback.Config{
			Timeout:      cfg.LLM.Timeout,
			MaxRetries:   cfg.LLM.MaxRetries,
			RetryBackoff: cfg.LLM.RetryBackoff,
		}, logger)
	}
	return engine.New(engine.Config{
		TableThreshold: cfg.Engine.TableThreshold,
		LineThreshold:  cfg.Engine.LineThreshold,
		ContextRadius:  cfg.Engine.ContextRadius,
		EnableFallback: cfg.Engine.EnableFallback,
		BatchFallback:  cfg.Engine.BatchFallback,
	}, fb, logger, metrics)
}
