// Package anthropic implements the llm.Backend contract over the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	aiclient "aiupstart.com/ai-client"
	"aiupstart.com/ai-client/llm"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-20250514"
	// DefaultMaxTokens bounds the response when the config leaves it unset;
	// the Messages API requires an explicit limit.
	DefaultMaxTokens = 4096
)

// Config holds the provider settings. An empty APIKey falls back to the
// ANTHROPIC_API_KEY environment variable.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// Client is the Anthropic backend.
type Client struct {
	api       *anthropic.Client
	model     string
	maxTokens int64
	logger    zerolog.Logger
}

var _ llm.Backend = (*Client)(nil)

// NewClient creates the Anthropic backend. It fails with an
// api-key-missing error before any network call when no credential can be
// resolved.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, aiclient.NewAPIKeyMissingError(
			"ANTHROPIC_API_KEY environment variable is not set",
			map[string]any{"provider": "anthropic"})
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	api := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		api:       &api,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger.With().Str("module", "llm").Str("provider", "anthropic").Logger(),
	}, nil
}

// Name implements llm.Backend.
func (c *Client) Name() string {
	return "anthropic"
}

// GetRawResponse implements llm.Backend by issuing a Messages request and
// concatenating the text blocks of the reply.
func (c *Client) GetRawResponse(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("sending prompt to Anthropic")

	message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.model).Msg("Anthropic request failed")
		return "", aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
			"Anthropic API returned an error",
			map[string]any{
				"model":                 c.model,
				"prompt_preview":        aiclient.Preview(user),
				"system_prompt_preview": aiclient.Preview(system),
			}, err)
	}

	var text strings.Builder
	for _, blockUnion := range message.Content {
		if block, ok := blockUnion.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		c.logger.Error().Str("model", c.model).Msg("no text blocks returned from Anthropic")
		return "", aiclient.NewResponseError(aiclient.CodeResponseParse,
			"Anthropic response contained no text",
			map[string]any{"model": c.model}, nil)
	}

	c.logger.Debug().Msg("received response from Anthropic")
	return text.String(), nil
}
