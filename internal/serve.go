package internal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/middleware"
	"github.com/MrSnakeDoc/mcversion/internal/server"

	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve version metadata over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  GET /versions             # every version id, manifest order
  GET /version/{versionId}  # consolidated record for one version`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
				cfg.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(newStack(cfg).resolver)
			return srv.Run(ctx, cfg.Listen)
		},
	}

	cmd.Flags().StringP("listen", "l", "", "Address to listen on (default :"+config.DefaultPort+")")
	return cmd
}
