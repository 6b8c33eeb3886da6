// Package ollama implements the llm.Backend contract over a local or
// remote Ollama daemon. Ollama requires no API key; the credential check of
// the contract is vacuously satisfied.
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"

	aiclient "aiupstart.com/ai-client"
	"aiupstart.com/ai-client/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "llama3.2"

// Config holds the provider settings. An empty Host falls back to the
// OLLAMA_HOST environment variable or http://localhost:11434.
type Config struct {
	Host  string
	Model string
}

// Client is the Ollama backend.
type Client struct {
	api    *api.Client
	model  string
	logger zerolog.Logger
}

var _ llm.Backend = (*Client)(nil)

// NewClient creates the Ollama backend.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	var apiClient *api.Client
	if cfg.Host != "" {
		baseURL, err := parseHost(cfg.Host)
		if err != nil {
			return nil, aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
				"invalid Ollama host",
				map[string]any{"provider": "ollama", "host": cfg.Host}, err)
		}
		apiClient = api.NewClient(baseURL, &http.Client{})
	} else {
		var err error
		apiClient, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
				"failed to create Ollama client",
				map[string]any{"provider": "ollama"}, err)
		}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:    apiClient,
		model:  model,
		logger: logger.With().Str("module", "llm").Str("provider", "ollama").Logger(),
	}, nil
}

// parseHost parses a host string into a URL, defaulting the scheme to
// http.
func parseHost(host string) (*url.URL, error) {
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return url.Parse(host)
}

// Name implements llm.Backend.
func (c *Client) Name() string {
	return "ollama"
}

// GetRawResponse implements llm.Backend by issuing a non-streaming chat
// request.
func (c *Client) GetRawResponse(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("sending prompt to Ollama")

	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: &stream,
	}

	var text strings.Builder
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		text.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.model).Msg("Ollama request failed")
		return "", aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
			"Ollama returned an error",
			map[string]any{
				"model":                 c.model,
				"prompt_preview":        aiclient.Preview(user),
				"system_prompt_preview": aiclient.Preview(system),
			}, err)
	}
	if text.Len() == 0 {
		c.logger.Error().Str("model", c.model).Msg("empty response from Ollama")
		return "", aiclient.NewResponseError(aiclient.CodeResponseParse,
			"Ollama response contained no text",
			map[string]any{"model": c.model}, nil)
	}

	c.logger.Debug().Msg("received response from Ollama")
	return text.String(), nil
}
