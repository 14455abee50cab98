package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/gvalop/internal/config"
	"github.com/zephyrtronium/gvalop/internal/logging"
	"github.com/zephyrtronium/gvalop/internal/metrics"
	"github.com/zephyrtronium/gvalop/internal/server"
	"github.com/zephyrtronium/gvalop/internal/watch"
)

var serveFlags struct {
	listen   string
	watch    bool
	debounce time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve filter and calc over HTTP until interrupted.

  POST /v1/filter  {"expression": "...", "texts": ["...", ...]} -> {"matches": [true, ...]}
  POST /v1/calc    {"expression": "...", "digits": 10}          -> {"result": "..."}
  GET  /healthz
  GET  /metrics    (path set by server.metrics_path)

With --watch, the config file is reloaded whenever it changes. A config that
fails to load leaves the running one in place.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.listen, "listen", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload the config file when it changes")
	serveCmd.Flags().DurationVar(&serveFlags.debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading a changed config")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := serveConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	srv, err := server.New(cfg, logger, metrics.NewCollector(nil))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveFlags.watch {
		if cfgFile == "" {
			logger.Warn("--watch has no effect without --config")
		} else {
			w := watch.New(cfgFile, serveFlags.debounce, logger)
			go func() {
				err := w.Watch(ctx, func() error {
					next, err := serveConfig()
					if err != nil {
						return err
					}
					return srv.Reload(next)
				})
				if err != nil {
					logger.Error("config watcher failed", "error", err)
				}
			}()
		}
	}
	return srv.Run(ctx)
}

func serveConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if serveFlags.listen != "" {
		cfg.Server.ListenAddress = serveFlags.listen
	}
	return cfg, nil
}
