package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

const (
	DefaultOpenAIEndpoint = "https://api.openai.com/v1/completions"
	DefaultOpenAIModel    = "text-davinci-003"

	maxResponseBytes = 1 << 20
)

const completionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["choices"],
  "properties": {
    "choices": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": {"type": "string"}
        }
      }
    }
  }
}`

var completionSchemaLoader = gojsonschema.NewStringLoader(completionSchemaJSON)

// OpenAIProvider talks to the legacy text-completion endpoint.
type OpenAIProvider struct {
	Model      string
	APIKey     string
	baseURL    string
	httpClient *http.Client // defaults to http.DefaultClient
}

func NewOpenAIProvider(model string, apiKey string) *OpenAIProvider {
	return NewOpenAIProviderWithClient(model, apiKey, "", nil)
}

// NewOpenAIProviderWithClient creates a provider with custom HTTP client and base URL.
func NewOpenAIProviderWithClient(model, apiKey, baseURL string, client *http.Client) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIEndpoint
	}
	return &OpenAIProvider{
		Model:      model,
		APIKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (p *OpenAIProvider) ID() string {
	return "openai:" + p.Model
}

type openAIRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.APIKey == "" {
		return nil, ai.NewError(ai.KindMissingCredential, fmt.Errorf("OpenAI API key not provided (set OPENAI_API_KEY)"))
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 100
	}

	body, err := json.Marshal(openAIRequest{
		Model:     p.Model,
		Prompt:    req.Prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewError(ai.KindTransportFailure, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := p.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, ai.NewError(ai.KindTransportFailure, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, ai.NewError(ai.KindTransportFailure, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ai.Error{
			Kind:       ai.KindProviderRejected,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", rejectionMessage(resp.Status, data)),
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ai.NewError(ai.KindEmptyResponseBody, nil)
	}

	return decodeCompletion(data, p.Model)
}

// decodeCompletion validates the body shape before extracting the first choice.
func decodeCompletion(data []byte, model string) (*ai.CompletionResponse, error) {
	result, err := gojsonschema.Validate(completionSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, ai.NewError(ai.KindMalformedResponseBody, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, ai.NewError(ai.KindUnexpectedResponseShape, fmt.Errorf("%s", strings.Join(msgs, "; ")))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, ai.NewError(ai.KindMalformedResponseBody, err)
	}

	return &ai.CompletionResponse{
		Text:  parsed.Choices[0].Text,
		Model: model,
		Usage: ai.TokenUsage{
			InputTokens:  parsed.Usage.PromptTokens,
			OutputTokens: parsed.Usage.CompletionTokens,
		},
	}, nil
}

func rejectionMessage(status string, data []byte) string {
	var body openAIErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return "OpenAI API returned status: " + status
}
