package ai_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	infraAI "github.com/felixgeelhaar/hashdraft/pkg/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

// countingProvider fails the first failures calls with err.
type countingProvider struct {
	calls    int32
	failures int32
	err      error
	delay    time.Duration
}

func (c *countingProvider) ID() string { return "counting" }

func (c *countingProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	n := atomic.AddInt32(&c.calls, 1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ai.NewError(ai.KindTransportFailure, ctx.Err())
		}
	}
	if n <= c.failures {
		return nil, c.err
	}
	return &ai.CompletionResponse{Text: "ok"}, nil
}

func TestResilientProvider_ID_Delegates(t *testing.T) {
	inner := &infraAI.MockProvider{Model: "test-model"}
	p := infraAI.NewResilientProvider(inner)
	if p.ID() != "mock:test-model" {
		t.Errorf("expected ID 'mock:test-model', got %q", p.ID())
	}
}

func TestResilientProvider_DefaultConfig(t *testing.T) {
	cfg := infraAI.DefaultResilienceConfig()
	if cfg.MaxRetries != 0 {
		t.Errorf("expected MaxRetries 0, got %d", cfg.MaxRetries)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected Timeout 30s, got %v", cfg.Timeout)
	}
}

func TestResilientProvider_ZeroConfig(t *testing.T) {
	p := infraAI.NewResilientProviderWithConfig(&infraAI.MockProvider{}, infraAI.ResilienceConfig{MaxRetries: -3})
	cfg := p.Config()
	if cfg.MaxRetries != 0 || cfg.RetryDelay <= 0 || cfg.Timeout <= 0 {
		t.Errorf("zero config not defaulted: %+v", cfg)
	}
}

func TestResilientProvider_NoRetryByDefault(t *testing.T) {
	inner := &countingProvider{failures: 5, err: ai.NewError(ai.KindTransportFailure, errors.New("refused"))}
	p := infraAI.NewResilientProvider(inner)

	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "#go"})
	if !errors.Is(err, ai.ErrTransportFailure) {
		t.Fatalf("expected transport failure, got %v", err)
	}
	if got := atomic.LoadInt32(&inner.calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestResilientProvider_RetriesTransportFailures(t *testing.T) {
	inner := &countingProvider{failures: 1, err: ai.NewError(ai.KindTransportFailure, errors.New("reset"))}
	p := infraAI.NewResilientProviderWithConfig(inner, infraAI.ResilienceConfig{
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		Timeout:    5 * time.Second,
	})

	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "#go"})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Text = %q", resp.Text)
	}
	if got := atomic.LoadInt32(&inner.calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestResilientProvider_DoesNotRetryTerminalErrors(t *testing.T) {
	inner := &countingProvider{failures: 5, err: ai.NewError(ai.KindUnexpectedResponseShape, nil)}
	p := infraAI.NewResilientProviderWithConfig(inner, infraAI.ResilienceConfig{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "#go"})
	if !errors.Is(err, ai.ErrUnexpectedResponseShape) {
		t.Fatalf("expected unexpected shape, got %v", err)
	}
	if got := atomic.LoadInt32(&inner.calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestResilientProvider_TimeoutIsBounded(t *testing.T) {
	inner := &countingProvider{delay: time.Minute}
	p := infraAI.NewResilientProviderWithConfig(inner, infraAI.ResilienceConfig{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "#go"})
	if !errors.Is(err, ai.ErrTransportFailure) {
		t.Fatalf("expected transport failure on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}
