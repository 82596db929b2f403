package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/felixgeelhaar/hashdraft/internal/infrastructure/config"
	"github.com/felixgeelhaar/hashdraft/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/hashdraft/pkg/application"
	"github.com/spf13/cobra"
)

// newLogger builds the process logger. Output goes to w so stdout stays
// free for drafted text.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, NewCLIError("invalid configuration", "Fix "+configPath+" or run 'hashdraft config init'", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// loadDraftService reads the configuration once and wires the draft
// workflow. logOut receives diagnostics.
func loadDraftService(logOut io.Writer) (*application.DraftService, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return buildDraftService(cfg, logOut)
}

func buildDraftService(cfg *config.Config, logOut io.Writer) (*application.DraftService, *slog.Logger, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	logger := newLogger(cfg.LogLevel, logOut)
	svc, err := wiring.BuildDraftService(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build draft service: %w", err)
	}
	return svc, logger, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
