package ai

import (
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

// ProviderOptions selects and configures the completion backend.
type ProviderOptions struct {
	Name     string
	Model    string
	APIKey   string
	Endpoint string
	Client   *http.Client
}

func NewProvider(opts ProviderOptions) (ai.Provider, error) {
	switch opts.Name {
	case "openai", "":
		return NewOpenAIProviderWithClient(opts.Model, opts.APIKey, opts.Endpoint, opts.Client), nil
	case "mock":
		return &MockProvider{Model: opts.Model}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", opts.Name)
	}
}
