// Package client is the facade that selects a backend by name and wraps it
// in an llm.Client. It is the usual entry point for host applications.
package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	aiclient "aiupstart.com/ai-client"
	"aiupstart.com/ai-client/config"
	"aiupstart.com/ai-client/llm"
	"aiupstart.com/ai-client/llm/anthropic"
	"aiupstart.com/ai-client/llm/gemini"
	"aiupstart.com/ai-client/llm/ollama"
	"aiupstart.com/ai-client/llm/openai"
)

// Supported backend names.
const (
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
	BackendGemini    = "gemini"
	BackendOllama    = "ollama"
)

// New constructs the backend named by cfg.Backend and wraps it in an
// llm.Client. A nil cfg selects the default (OpenAI) backend with settings
// resolved from the environment. An unknown backend name fails with an
// unsupported-backend error.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*llm.Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	name := cfg.Backend
	if name == "" {
		name = BackendOpenAI
	}

	var backend llm.Backend
	var err error
	switch name {
	case BackendOpenAI:
		backend, err = openai.NewClient(openai.Config{
			APIKey:       cfg.OpenAI.APIKey,
			BaseURL:      cfg.OpenAI.BaseURL,
			Organization: cfg.OpenAI.Organization,
			Model:        cfg.OpenAI.Model,
		}, logger)
	case BackendAnthropic:
		backend, err = anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.Anthropic.APIKey,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
		}, logger)
	case BackendGemini:
		backend, err = gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		}, logger)
	case BackendOllama:
		backend, err = ollama.NewClient(ollama.Config{
			Host:  cfg.Ollama.Host,
			Model: cfg.Ollama.Model,
		}, logger)
	default:
		return nil, aiclient.NewError(aiclient.KindLLM, aiclient.CodeUnsupportedBackend,
			fmt.Sprintf("LLM backend %q is not supported", name),
			map[string]any{"requested_backend": name}, nil)
	}
	if err != nil {
		return nil, err
	}
	return llm.NewClient(backend, logger), nil
}
