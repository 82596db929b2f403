package ai

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

// MockProvider answers locally without network access. Text overrides the
// canned reply; Err, when set, is returned instead.
type MockProvider struct {
	Model string
	Text  string
	Err   error
}

func (p *MockProvider) ID() string {
	return "mock:" + p.Model
}

func (p *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, ai.NewError(ai.KindTransportFailure, err)
	}
	if p.Err != nil {
		return nil, p.Err
	}
	text := p.Text
	if text == "" {
		text = fmt.Sprintf("Drafted offline from: %s", req.Prompt)
	}
	return &ai.CompletionResponse{Text: text, Model: p.Model}, nil
}
