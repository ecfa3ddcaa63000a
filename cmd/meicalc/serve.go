package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serve every calculation as a JSON API under /api/v1.

The listen address and CORS origins come from MEICALC_ADDR and
MEICALC_CORS_ORIGINS unless --addr is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.settings.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			schedule, err := calculation.NewAlertSchedule(a.settings.AlertOffsets)
			if err != nil {
				return err
			}

			if a.settings.Logging.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			router := server.NewRouter(a.logger, server.RouterDependencies{
				Handlers:       server.NewHandlers(a.engine, schedule),
				AllowedOrigins: a.settings.CORSOrigins,
				TablesVersion:  a.tables.Metadata.Version,
			})
			srv := server.New(a.logger, addr, router)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address, e.g. :8080")
	return cmd
}
