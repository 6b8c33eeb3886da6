// Package llm defines the capability contract every LLM backend must
// satisfy, and derives the single-file-content operation from it.
//
// A backend only has to implement GetRawResponse. Wrapping it in a Client
// adds GetFileContentResponse, which validates that the response holds
// exactly one fenced code block and returns its interior. The derived
// operation is backend-independent by construction.
package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	aiclient "aiupstart.com/ai-client"
)

// Backend is implemented by every provider integration. Implementations
// must fail with an api-key-missing error when credentials are absent, and
// with a response error when the provider call fails or returns an
// unparseable result.
type Backend interface {
	// Name identifies the provider, e.g. "openai".
	Name() string

	// GetRawResponse sends a system and user prompt to the provider and
	// returns the raw text of the reply.
	GetRawResponse(ctx context.Context, system, user string) (string, error)
}

// Client wraps a Backend with the derived file-content operation. Each
// call is a stateless request/response exchange; a Client is safe for
// concurrent use as long as its backend is.
type Client struct {
	backend   Backend
	extractor aiclient.MarkdownCodeExtractor
	logger    zerolog.Logger
}

// NewClient wraps the given backend. The logger is used for call tracing
// only; it never becomes part of returned error values.
func NewClient(backend Backend, logger zerolog.Logger) *Client {
	return &Client{
		backend: backend,
		logger:  logger.With().Str("module", "llm").Str("backend", backend.Name()).Logger(),
	}
}

// Backend returns the wrapped provider integration.
func (c *Client) Backend() Backend {
	return c.backend
}

// GetRawResponse delegates to the backend unchanged.
func (c *Client) GetRawResponse(ctx context.Context, system, user string) (string, error) {
	return c.backend.GetRawResponse(ctx, system, user)
}

// GetFileContentResponse asks the backend for a response and returns it
// stripped of its fence lines, suitable for direct use as file content.
// The response must contain exactly one fenced code block; anything else
// fails with a content-format error rather than a best-effort guess.
func (c *Client) GetFileContentResponse(ctx context.Context, system, user string) (string, error) {
	raw, err := c.backend.GetRawResponse(ctx, system, user)
	if err != nil {
		return "", err
	}

	if !c.extractor.HasSingleBlock(raw) {
		blocks := c.extractor.ExtractCodeBlocks(raw)
		c.logger.Error().
			Int("blocks_found", len(blocks)).
			Msg("response is not a single code block")
		return "", aiclient.NewContentFormatError(aiclient.CodeContentMultiBlock,
			"expected a single code block in the response",
			map[string]any{
				"blocks_found":     len(blocks),
				"response_preview": aiclient.Preview(raw),
			})
	}

	content, err := c.extractor.StripMarkdownPrefix(raw)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		c.logger.Error().Msg("response stripped to empty content")
		return "", aiclient.NewContentFormatError(aiclient.CodeContentStrip,
			"response could not be stripped of code block formatting",
			map[string]any{"response_preview": aiclient.Preview(raw)})
	}
	return content, nil
}
