// Package gemini implements the llm.Backend contract over the Google
// Gemini API.
package gemini

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	genai "google.golang.org/genai"

	aiclient "aiupstart.com/ai-client"
	"aiupstart.com/ai-client/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the provider settings. An empty APIKey falls back to the
// GEMINI_API_KEY environment variable.
type Config struct {
	APIKey string
	Model  string
}

// Client is the Gemini backend, a thin wrapper around the official genai
// client.
type Client struct {
	api    *genai.Client
	model  string
	logger zerolog.Logger
}

var _ llm.Backend = (*Client)(nil)

// NewClient creates the Gemini backend. It fails with an api-key-missing
// error before any network call when no credential can be resolved.
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, aiclient.NewAPIKeyMissingError(
			"GEMINI_API_KEY environment variable is not set",
			map[string]any{"provider": "gemini"})
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
			"failed to create Gemini client",
			map[string]any{"provider": "gemini"}, err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:    api,
		model:  model,
		logger: logger.With().Str("module", "llm").Str("provider", "gemini").Logger(),
	}, nil
}

// Name implements llm.Backend.
func (c *Client) Name() string {
	return "gemini"
}

// GetRawResponse implements llm.Backend by generating content with the
// system prompt carried as a system instruction.
func (c *Client) GetRawResponse(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("sending prompt to Gemini")

	resp, err := c.api.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: user}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.model).Msg("Gemini request failed")
		return "", aiclient.NewResponseError(aiclient.CodeAPIRequestFailed,
			"Gemini API returned an error",
			map[string]any{
				"model":                 c.model,
				"prompt_preview":        aiclient.Preview(user),
				"system_prompt_preview": aiclient.Preview(system),
			}, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		c.logger.Error().Str("model", c.model).Msg("no candidates returned from Gemini")
		return "", aiclient.NewResponseError(aiclient.CodeResponseParse,
			"Gemini response contained no candidates",
			map[string]any{"model": c.model}, nil)
	}

	c.logger.Debug().Msg("received response from Gemini")
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
