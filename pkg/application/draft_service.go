package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

// DraftService turns hashtag prompts into drafted tweets through a provider.
type DraftService struct {
	provider  ai.Provider
	maxTokens int
	logger    *slog.Logger
	newID     func() string
}

type DraftOption func(*DraftService)

// WithMaxTokens overrides draft.DefaultMaxTokens.
func WithMaxTokens(n int) DraftOption {
	return func(s *DraftService) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

func WithLogger(logger *slog.Logger) DraftOption {
	return func(s *DraftService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the uuid-based request id source.
func WithIDGenerator(fn func() string) DraftOption {
	return func(s *DraftService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewDraftService(provider ai.Provider, opts ...DraftOption) *DraftService {
	s := &DraftService{
		provider:  provider,
		maxTokens: draft.DefaultMaxTokens,
		logger:    slog.Default(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderID names the backend in use.
func (s *DraftService) ProviderID() string {
	return s.provider.ID()
}

// Draft performs one completion and always returns a Result.
func (s *DraftService) Draft(ctx context.Context, prompt string) draft.Result {
	id := s.newID()
	logger := s.logger.With("request_id", id, "provider", s.provider.ID())
	logger.Debug("draft started", "prompt", prompt)

	start := time.Now()
	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:    draft.Instruction(prompt),
		MaxTokens: s.maxTokens,
	})

	var res draft.Result
	switch {
	case err != nil:
		res = draft.Failed(id, prompt, err)
	case resp == nil:
		res = draft.Failed(id, prompt, ai.NewError(ai.KindEmptyResponseBody, nil))
	default:
		res = draft.Succeeded(id, prompt, resp.Text)
	}
	res.Latency = time.Since(start)

	if res.OK() {
		logger.Info("draft completed", "latency", res.Latency)
	} else {
		logger.Warn("draft failed", "kind", string(res.Kind()), "error", res.Err, "latency", res.Latency)
	}
	return res
}

// RequestCompletion runs Draft in the background. The channel receives
// exactly one Result and is then closed.
func (s *DraftService) RequestCompletion(ctx context.Context, prompt string) <-chan draft.Result {
	out := make(chan draft.Result, 1)
	go func() {
		defer close(out)
		out <- s.Draft(ctx, prompt)
	}()
	return out
}
