package internal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/globalconfig"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/middleware"
	"github.com/MrSnakeDoc/mcversion/internal/notifier"
	"github.com/MrSnakeDoc/mcversion/internal/service"
	"github.com/MrSnakeDoc/mcversion/internal/watcher"

	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Announce new versions published by a running server",
		Long: `Poll GET /versions on a running mcversion server and announce ids that
were not seen before. Known ids are kept in a state file under
$XDG_STATE_HOME/mcversion unless an absolute path is configured.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if v, _ := flags.GetString("server"); v != "" {
				cfg.Watch.ServerURL = v
			}
			if flags.Changed("interval") {
				cfg.Watch.Interval, _ = flags.GetDuration("interval")
			}
			once, _ := flags.GetBool("once")

			statePath, err := globalconfig.ResolveStatePath(cfg.Watch.StateFile)
			if err != nil {
				return err
			}

			fetcher := service.NewFetcher(newHTTPClient(cfg), service.Options{
				UserAgent: userAgent(cfg),
				Timeout:   cfg.RequestTimeout,
			})
			w := watcher.New(
				watcher.NewClient(fetcher, cfg.Watch.ServerURL),
				notifier.Terminal{Out: cmd.OutOrStdout(), Color: !logger.FlagJSON},
				watcher.Options{StatePath: statePath, Interval: cfg.Watch.Interval},
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if once {
				if _, err := w.Init(ctx); err != nil {
					return err
				}
				_, err := w.Poll(ctx)
				return err
			}

			logger.Info("Watching %s every %s", cfg.Watch.ServerURL, cfg.Watch.Interval)
			return w.Run(ctx)
		},
	}

	cmd.Flags().String("server", "", "Base URL of the mcversion server (default http://localhost:"+config.DefaultPort+")")
	cmd.Flags().Duration("interval", 0, "Poll interval (default 1m)")
	cmd.Flags().Bool("once", false, "Poll a single time and exit")
	return cmd
}
