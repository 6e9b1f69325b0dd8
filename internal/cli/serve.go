package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"recipes-be/internal/config"
	"recipes-be/internal/logging"
	"recipes-be/internal/server"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := server.New(ctx, cfg, log, server.Options{Migrate: migrate})
			if err != nil {
				log.Error(ctx, "startup failed", "error", err)
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					log.Error(ctx, "shutdown", "error", err)
				}
			}()

			if err := server.Serve(ctx, cfg.HTTPAddr, app.Handler(), log); err != nil {
				log.Error(ctx, "HTTP server failed", "error", err)
				return err
			}
			log.Info(ctx, "server stopped")
			return nil
		},
	}

	c.Flags().BoolVar(&migrate, "migrate", true, "apply pending schema migrations before serving")
	return c
}
