package ai

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

// ResilienceConfig bounds each completion call. MaxRetries counts extra
// attempts after the first one.
type ResilienceConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries: 0,
		RetryDelay: 500 * time.Millisecond,
		Timeout:    30 * time.Second,
	}
}

type ResilientProvider struct {
	inner ai.Provider
	cfg   ResilienceConfig
}

func NewResilientProvider(inner ai.Provider) *ResilientProvider {
	return NewResilientProviderWithConfig(inner, DefaultResilienceConfig())
}

// NewResilientProviderWithConfig fills zero fields from the defaults.
func NewResilientProviderWithConfig(inner ai.Provider, cfg ResilienceConfig) *ResilientProvider {
	def := DefaultResilienceConfig()
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &ResilientProvider{inner: inner, cfg: cfg}
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Config() ResilienceConfig {
	return p.cfg
}

// Complete runs the inner provider under a timeout, retrying only errors
// that another attempt could fix. The returned error is always an *ai.Error.
func (p *ResilientProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	r := retry.New[*ai.CompletionResponse](retry.Config{
		MaxAttempts:   p.cfg.MaxRetries + 1,
		InitialDelay:  p.cfg.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})

	t := timeout.New[*ai.CompletionResponse](timeout.Config{
		DefaultTimeout: p.cfg.Timeout,
	})

	// attempt keeps the provider's classified error; retry and timeout
	// wrap their own.
	var attempt attemptState

	res, err := t.Execute(ctx, p.cfg.Timeout, func(ctx context.Context) (*ai.CompletionResponse, error) {
		return r.Do(ctx, func(ctx context.Context) (*ai.CompletionResponse, error) {
			res, err := p.inner.Complete(ctx, req)
			if err == nil {
				return res, nil
			}
			if !ai.Retryable(err) {
				// Returning success stops the retry loop.
				attempt.record(err, true)
				return nil, nil
			}
			attempt.record(err, false)
			return nil, err
		})
	})

	terminal, lastErr := attempt.load()
	if terminal {
		return nil, ai.Classify(lastErr)
	}
	if err != nil {
		if lastErr != nil {
			return nil, ai.Classify(lastErr)
		}
		return nil, ai.NewError(ai.KindTransportFailure, err)
	}
	if res == nil {
		return nil, ai.NewError(ai.KindEmptyResponseBody, nil)
	}
	return res, nil
}

// attemptState is shared with the timeout goroutine.
type attemptState struct {
	mu       sync.Mutex
	err      error
	terminal bool
}

func (a *attemptState) record(err error, terminal bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
	a.terminal = terminal
}

func (a *attemptState) load() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.terminal, a.err
}
