package wiring

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/hashdraft/internal/infrastructure/config"
	infraai "github.com/felixgeelhaar/hashdraft/pkg/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/application"
	domainai "github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

// BuildAIProvider returns the configured provider wrapped with timeout and
// retry handling.
func BuildAIProvider(cfg *config.Config) (domainai.Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	baseProvider, err := infraai.NewProvider(infraai.ProviderOptions{
		Name:     cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	return infraai.NewResilientProviderWithConfig(baseProvider, infraai.ResilienceConfig{
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay(),
		Timeout:    cfg.Timeout(),
	}), nil
}

// BuildDraftService wires the draft workflow from cfg.
func BuildDraftService(cfg *config.Config, logger *slog.Logger) (*application.DraftService, error) {
	provider, err := BuildAIProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("build provider: %w", err)
	}
	if !cfg.HasCredential() && cfg.Provider != "mock" {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("no API credential configured; drafts will fail with missing_credential")
	}
	return application.NewDraftService(provider,
		application.WithMaxTokens(cfg.MaxTokens),
		application.WithLogger(logger),
	), nil
}
