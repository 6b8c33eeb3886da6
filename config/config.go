// Package config loads backend selection and per-provider settings from a
// YAML file, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig configures the OpenAI provider.
type OpenAIConfig struct {
	APIKey       string `yaml:"api_key,omitempty"`
	BaseURL      string `yaml:"base_url,omitempty"`
	Model        string `yaml:"model,omitempty"`
	Organization string `yaml:"organization,omitempty"`
}

// AnthropicConfig configures the Anthropic provider.
type AnthropicConfig struct {
	APIKey    string `yaml:"api_key,omitempty"`
	Model     string `yaml:"model,omitempty"`
	MaxTokens int64  `yaml:"max_tokens,omitempty"`
}

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// OllamaConfig configures the Ollama provider.
type OllamaConfig struct {
	Host  string `yaml:"host,omitempty"`
	Model string `yaml:"model,omitempty"`
}

// Config selects the backend and carries the per-provider settings.
type Config struct {
	Backend   string          `yaml:"backend,omitempty"`
	OpenAI    OpenAIConfig    `yaml:"openai,omitempty"`
	Anthropic AnthropicConfig `yaml:"anthropic,omitempty"`
	Gemini    GeminiConfig    `yaml:"gemini,omitempty"`
	Ollama    OllamaConfig    `yaml:"ollama,omitempty"`
}

// Default returns a configuration pointing at the OpenAI backend with all
// provider settings resolved from the environment.
func Default() *Config {
	return &Config{Backend: "openai"}
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if cfg.Backend == "" {
		cfg.Backend = "openai"
	}
	return &cfg, nil
}

// ApplyEnv overlays environment variables onto the configuration. A set
// variable always wins over the file value, so deployments can override
// credentials without editing config.
func (c *Config) ApplyEnv() {
	setIfEnv(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfEnv(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setIfEnv(&c.OpenAI.Model, "OPENAI_MODEL")
	setIfEnv(&c.OpenAI.Organization, "OPENAI_ORG_ID")
	setIfEnv(&c.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setIfEnv(&c.Anthropic.Model, "ANTHROPIC_MODEL")
	setIfEnv(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setIfEnv(&c.Gemini.Model, "GEMINI_MODEL")
	setIfEnv(&c.Ollama.Host, "OLLAMA_HOST")
	setIfEnv(&c.Ollama.Model, "OLLAMA_MODEL")
	setIfEnv(&c.Backend, "AI_CLIENT_BACKEND")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
