// Package perplexica bridges a Perplexica search deployment to MCP tools.
// It resolves caller-supplied search parameters against configured defaults,
// performs the backend HTTP calls, decodes the backend's JSON, and renders
// the results as text for the calling agent.
package perplexica

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read at startup. The base URL is required; the rest
// supply defaults used when a search call omits the model parameters.
const (
	EnvBaseURL           = "PERPLEXICA_API_URL"
	EnvProviderID        = "PERPLEXICA_PROVIDER_ID"
	EnvChatModelKey      = "PERPLEXICA_CHAT_MODEL_KEY"
	EnvEmbeddingModelKey = "PERPLEXICA_EMBEDDING_MODEL_KEY"
)

// Config is the process-wide configuration snapshot. It is built once at
// startup and passed by value; nothing mutates it afterwards, so it is safe
// to share across concurrent tool calls.
type Config struct {
	BaseURL                  string `yaml:"base_url"`
	DefaultProviderID        string `yaml:"provider_id"`
	DefaultChatModelKey      string `yaml:"chat_model_key"`
	DefaultEmbeddingModelKey string `yaml:"embedding_model_key"`
}

// Load builds the configuration from the environment, optionally filling
// fields the environment left empty from a YAML file at path. Pass an empty
// path for env-only operation. The result is validated before being returned.
func Load(path string) (Config, error) {
	cfg := LoadEnv()

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.withDefaults(fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadEnv reads the configuration from environment variables. Trailing
// slashes on the base URL are trimmed so paths can be appended verbatim.
func LoadEnv() Config {
	return Config{
		BaseURL:                  strings.TrimRight(os.Getenv(EnvBaseURL), "/"),
		DefaultProviderID:        os.Getenv(EnvProviderID),
		DefaultChatModelKey:      os.Getenv(EnvChatModelKey),
		DefaultEmbeddingModelKey: os.Getenv(EnvEmbeddingModelKey),
	}
}

// LoadFile reads a YAML configuration file. Environment variables referenced
// as ${VAR} or $VAR in the file are expanded before parsing, so secrets can
// live in the environment rather than in the file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("perplexica: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("perplexica: parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// withDefaults returns a copy of c with empty fields filled from d.
// Values already present in c always win.
func (c Config) withDefaults(d Config) Config {
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.DefaultProviderID == "" {
		c.DefaultProviderID = d.DefaultProviderID
	}
	if c.DefaultChatModelKey == "" {
		c.DefaultChatModelKey = d.DefaultChatModelKey
	}
	if c.DefaultEmbeddingModelKey == "" {
		c.DefaultEmbeddingModelKey = d.DefaultEmbeddingModelKey
	}

	return c
}

// Validate checks that the required base URL is present and is an absolute
// http(s) URL. The optional defaults are not validated here; a missing
// default only matters when a search call needs it.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("perplexica: %s must be set (environment or config file)", EnvBaseURL)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("perplexica: invalid base URL %q: want an absolute http(s) URL", c.BaseURL)
	}

	return nil
}
