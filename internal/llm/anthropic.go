// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/davetashner/chatcall/internal/kwargs"
)

const (
	// DefaultAnthropicModel is the model used when no override is provided.
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

	// defaultMaxTokens is the default maximum output tokens per request.
	defaultMaxTokens = 4096

	// defaultMaxRetries is zero: every family makes exactly one attempt.
	defaultMaxRetries = 0
)

// AnthropicOptions lists the keyword parameters the Claude family accepts.
type AnthropicOptions struct {
	Version   string `mapstructure:"version"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// AnthropicProvider implements Provider using the official Anthropic SDK.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// Compile-time check that AnthropicProvider satisfies the Provider interface.
var _ Provider = (*AnthropicProvider)(nil)

// AnthropicOption configures an AnthropicProvider.
type AnthropicOption func(*anthropicConfig)

type anthropicConfig struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// WithAPIKey sets the API key. If not provided, the provider reads
// ANTHROPIC_API_KEY from the environment.
func WithAPIKey(key string) AnthropicOption {
	return func(c *anthropicConfig) {
		c.apiKey = key
	}
}

// WithModel overrides the default model for all requests.
func WithModel(model string) AnthropicOption {
	return func(c *anthropicConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxRetries sets the maximum number of retries for transient errors.
func WithMaxRetries(n int) AnthropicOption {
	return func(c *anthropicConfig) {
		c.maxRetries = n
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(url string) AnthropicOption {
	return func(c *anthropicConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the SDK's default HTTP client.
func WithHTTPClient(hc *http.Client) AnthropicOption {
	return func(c *anthropicConfig) {
		c.httpClient = hc
	}
}

// NewAnthropicProvider creates a new Anthropic provider.
// It returns an error if no API key is available (neither via option nor env).
func NewAnthropicProvider(opts ...AnthropicOption) (*AnthropicProvider, error) {
	cfg := anthropicConfig{
		model:      DefaultAnthropicModel,
		maxRetries: defaultMaxRetries,
	}
	for _, o := range opts {
		o(&cfg)
	}

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: ANTHROPIC_API_KEY not set and no API key provided")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.maxRetries),
		option.WithMiddleware(anthropicMiddleware(ModelClaude)),
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(clientOpts...),
		model:  cfg.model,
	}, nil
}

// newAnthropicFromEndpoint adapts an Endpoint to the option set.
func newAnthropicFromEndpoint(ep Endpoint) (*AnthropicProvider, error) {
	return NewAnthropicProvider(
		WithAPIKey(ep.APIKey),
		WithModel(ep.Model),
		WithBaseURL(ep.BaseURL),
		WithHTTPClient(ep.Client()),
	)
}

// Name returns the model family name.
func (p *AnthropicProvider) Name() string { return ModelClaude }

// Complete sends a completion request to the Anthropic Messages API.
func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	opts := AnthropicOptions{Version: p.model, MaxTokens: defaultMaxTokens}
	if err := kwargs.Bind(&opts, req.Params); err != nil {
		return nil, err
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Version),
		MaxTokens: int64(opts.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(req.Temperature),
	}

	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, anthropicError(opts.Version, err)
	}

	// Extract text from content blocks.
	var content strings.Builder
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(variant.Text)
		}
	}

	return stamp(&Response{
		Content: content.String(),
		Model:   firstNonEmpty(string(msg.Model), opts.Version),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, start, req.RecordTime), nil
}

func anthropicError(model string, err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &TransportError{
			Provider:   ModelClaude,
			Model:      model,
			StatusCode: apiErr.StatusCode,
			Body:       responseBody(apiErr.Response, apiErr.RawJSON()),
			Err:        err,
		}
	}
	return &TransportError{Provider: ModelClaude, Model: model, Err: err}
}
