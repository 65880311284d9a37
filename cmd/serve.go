package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wodbot/wodbot/internal/api"
)

const shutdownGrace = 10 * time.Second

// newServeCmd creates the 'serve' subcommand: an HTTP API exposing the
// extracted record, health, and metrics.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serves the extracted workout record over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			server := &http.Server{
				Addr:              fmt.Sprintf(":%d", application.cfg.Server.Port),
				Handler:           api.NewServer(application.pipeline, application.cfg, application.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				application.logger.Info("http server listening", zap.String("addr", server.Addr))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			application.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}
