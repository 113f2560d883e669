package perplexica

import (
	"fmt"
	"strings"
)

// Defaults applied when a search call omits the corresponding argument.
const (
	defaultFocusMode        = "webSearch"
	defaultOptimizationMode = "speed"
)

// SearchArgs are the caller-supplied arguments of the perplexica_search tool.
type SearchArgs struct {
	Query              string     `json:"query"`
	FocusMode          string     `json:"focus_mode"`
	OptimizationMode   string     `json:"optimization_mode"`
	Stream             bool       `json:"stream"`
	History            [][]string `json:"history"`
	SystemInstructions string     `json:"system_instructions"`
	ProviderID         string     `json:"provider_id"`
	ChatModelKey       string     `json:"chat_model_key"`
	EmbeddingModelKey  string     `json:"embedding_model_key"`
}

// MissingFieldError reports a required field that neither the caller nor the
// configuration supplied. EnvVar names the environment variable that can
// provide a default, when one exists.
type MissingFieldError struct {
	Field  string
	EnvVar string
}

func (e *MissingFieldError) Error() string {
	if e.EnvVar != "" {
		return fmt.Sprintf("missing %s: set the %s parameter or the %s environment variable", e.Field, e.Field, e.EnvVar)
	}

	return fmt.Sprintf("missing required parameter %q", e.Field)
}

// Resolve combines caller arguments with configured defaults into a complete
// backend request. Explicit caller values always win over configuration;
// partial model specification (a provider without a key, or a key without a
// provider) is rejected rather than guessed. No HTTP work happens here.
func Resolve(args SearchArgs, cfg Config) (SearchRequest, error) {
	if strings.TrimSpace(args.Query) == "" {
		return SearchRequest{}, &MissingFieldError{Field: "query"}
	}

	for i, turn := range args.History {
		if len(turn) != 2 {
			return SearchRequest{}, fmt.Errorf("history entry %d: want a [role, message] pair, got %d elements", i, len(turn))
		}
	}

	focusMode := args.FocusMode
	if focusMode == "" {
		focusMode = defaultFocusMode
	}

	optimizationMode := args.OptimizationMode
	if optimizationMode == "" {
		optimizationMode = defaultOptimizationMode
	}

	chatModel, err := resolveModel("chat_model_key", args.ProviderID, args.ChatModelKey,
		cfg.DefaultProviderID, cfg.DefaultChatModelKey, EnvChatModelKey)
	if err != nil {
		return SearchRequest{}, err
	}

	embeddingModel, err := resolveModel("embedding_model_key", args.ProviderID, args.EmbeddingModelKey,
		cfg.DefaultProviderID, cfg.DefaultEmbeddingModelKey, EnvEmbeddingModelKey)
	if err != nil {
		return SearchRequest{}, err
	}

	return SearchRequest{
		ChatModel:          chatModel,
		EmbeddingModel:     embeddingModel,
		OptimizationMode:   optimizationMode,
		FocusMode:          focusMode,
		Query:              args.Query,
		History:            args.History,
		SystemInstructions: args.SystemInstructions,
		Stream:             args.Stream,
	}, nil
}

// resolveModel resolves one model family. keyField is the caller-facing name
// of the model key parameter; keyEnv is the environment variable holding its
// default. The returned ModelRef is always fully populated.
func resolveModel(keyField, providerID, key, defaultProviderID, defaultKey, keyEnv string) (ModelRef, error) {
	switch {
	case providerID != "" && key != "":
		return ModelRef{ProviderID: providerID, Key: key}, nil
	case providerID != "":
		return ModelRef{}, fmt.Errorf("provider_id given without %s: supply both or neither", keyField)
	case key != "":
		return ModelRef{}, fmt.Errorf("%s given without provider_id: supply both or neither", keyField)
	}

	if defaultProviderID == "" {
		return ModelRef{}, &MissingFieldError{Field: "provider_id", EnvVar: EnvProviderID}
	}
	if defaultKey == "" {
		return ModelRef{}, &MissingFieldError{Field: keyField, EnvVar: keyEnv}
	}

	return ModelRef{ProviderID: defaultProviderID, Key: defaultKey}, nil
}
