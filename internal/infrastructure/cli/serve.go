package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hashdraft/internal/infrastructure/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the draft workflow over HTTP",
	Long: `Serve exposes POST /v1/drafts for front-ends that should not hold
the provider credential themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("HASHDRAFT_SKIP_SERVE_START") == "true" {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, logger, err := buildDraftService(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		server := httpapi.NewServer(svc, logger, cfg.Timeout())

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Listen(serveAddr)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	RootCmd.AddCommand(serveCmd)
}
