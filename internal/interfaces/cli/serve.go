package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voracio/sheetsense/internal/engine/synonym"
	httpserver "github.com/voracio/sheetsense/internal/interfaces/http"
	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/prometheus"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the resolution HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root)
		},
	}
}

func runServe(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The synonym file keeps being watched while the server runs, so edits
	// apply without a restart.
	syn := synonym.Default()
	if cfg.Synonyms.Path != "" {
		syn = synonym.NewTable(nil)
		watcher, err := synonym.NewWatcher(cfg.Synonyms.Path, syn, logger)
		if err != nil {
			return err
		}
		go watcher.Run(ctx)
	}

	metrics := prometheus.New()
	resolver := buildResolver(cfg, syn, logger, metrics)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Resolver:       resolver,
		Logger:         logger,
		Metrics:        metrics,
		MetricsHandler: metrics.Handler(),
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	logger.Info("starting",
		logging.String("addr", cfg.Server.Addr()),
		logging.Bool("fallback", cfg.Engine.EnableFallback),
		logging.Int("synonyms", syn.Len()))
	return srv.Run(ctx)
}
