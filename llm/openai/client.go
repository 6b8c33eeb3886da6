// Package openai implements the llm.Backend contract over the OpenAI
// chat completion API.
package openai

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	aiclient "aiupstart.com/ai-client"
	"aiupstart.com/ai-client/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4"

// Config holds the provider settings. An empty APIKey falls back to the
// OPENAI_API_KEY environment variable.
type Config struct {
	APIKey       string
	BaseURL      string // custom endpoint; default is the official API
	Organization string
	Model        string
	Temperature  float32
}

// Client is the OpenAI backend.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	logger      zerolog.Logger
}

var _ llm.Backend = (*Client)(nil)

// NewClient creates the OpenAI backend. It fails with an api-key-missing
// error before any network call when no credential can be resolved.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, aiclient.NewAPIKeyMissingError(
			"OPENAI_API_KEY environment variable is not set",
			map[string]any{"provider": "openai"})
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Organization != "" {
		clientCfg.OrgID = cfg.Organization
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 1.0
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: temperature,
		logger:      logger.With().Str("module", "llm").Str("provider", "openai").Logger(),
	}, nil
}

// Name implements llm.Backend.
func (c *Client) Name() string {
	return "openai"
}

// GetRawResponse implements llm.Backend by issuing a chat completion
// request and returning the first choice's text.
func (c *Client) GetRawResponse(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("sending prompt to OpenAI")

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.model).Msg("OpenAI request failed")
		return "", aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
			"OpenAI API returned an error",
			map[string]any{
				"model":                 c.model,
				"prompt_preview":        aiclient.Preview(user),
				"system_prompt_preview": aiclient.Preview(system),
			}, err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error().Str("model", c.model).Msg("no choices returned from OpenAI")
		return "", aiclient.NewResponseError(aiclient.CodeResponseParse,
			"OpenAI response contained no choices",
			map[string]any{"model": c.model}, nil)
	}

	c.logger.Debug().Msg("received response from OpenAI")
	return resp.Choices[0].Message.Content, nil
}
