package perplexica

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/germanamz/perplexica-mcp/pkg/tools/toolbox"
)

// Tool names exposed over MCP. The set is closed: adding an operation is a
// deliberate code change, not dynamic registration.
const (
	SearchToolName    = "perplexica_search"
	ProvidersToolName = "perplexica_providers"
)

// ServerInstructions is advertised to MCP clients during initialization.
const ServerInstructions = "A Perplexica API service that performs intelligent searches. " +
	"Use perplexica_providers to discover available providers and models, and " +
	"perplexica_search to query the Perplexica instance. Required environment " +
	"variables: " + EnvBaseURL + ". Optional environment variables for defaults: " +
	EnvProviderID + ", " + EnvChatModelKey + ", " + EnvEmbeddingModelKey + "."

var searchSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"query": {
			"type": "string",
			"description": "The search query to send to Perplexica"
		},
		"focus_mode": {
			"type": "string",
			"description": "The focus mode for search (e.g., 'webSearch', 'academicSearch')"
		},
		"optimization_mode": {
			"type": "string",
			"description": "The optimization mode for search ('speed' or 'balanced')"
		},
		"stream": {
			"type": "boolean",
			"description": "Whether to stream response"
		},
		"history": {
			"type": "array",
			"items": {"type": "array", "items": {"type": "string"}},
			"description": "Chat history as array of [role, message] pairs"
		},
		"system_instructions": {
			"type": "string",
			"description": "System instructions for search"
		},
		"provider_id": {
			"type": "string",
			"description": "Provider ID to use. DO NOT SET unless user explicitly specifies a provider. Will use the configured default if omitted."
		},
		"chat_model_key": {
			"type": "string",
			"description": "Chat model key to use. DO NOT SET unless user explicitly specifies a model. Will use the configured default if omitted."
		},
		"embedding_model_key": {
			"type": "string",
			"description": "Embedding model key to use. DO NOT SET unless user explicitly specifies an embedding model. Will use the configured default if omitted."
		}
	},
	"required": ["query"]
}`)

var providersSchema = json.RawMessage(`{"type":"object","properties":{}}`)

// Tools returns the two tools this server exposes, wired to the given
// configuration and client. A nil logger falls back to slog.Default().
func Tools(cfg Config, client *Client, log *slog.Logger) []toolbox.Tool {
	if log == nil {
		log = slog.Default()
	}

	return []toolbox.Tool{searchTool(cfg, client, log), providersTool(client, log)}
}

func searchTool(cfg Config, client *Client, log *slog.Logger) toolbox.Tool {
	return toolbox.Tool{
		Name: SearchToolName,
		Description: "Search using the Perplexica API. Provider and model parameters are optional - " +
			"the server will use configured defaults unless the user explicitly specifies otherwise.",
		InputSchema: searchSchema,
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			var args SearchArgs
			if err := json.Unmarshal(input, &args); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}

			req, err := Resolve(args, cfg)
			if err != nil {
				return "", err
			}

			log.InfoContext(ctx, "search", "focus_mode", req.FocusMode, "query_len", len(req.Query))

			raw, err := client.Search(ctx, req)
			if err != nil {
				return "", fmt.Errorf("search request failed: %w", err)
			}

			resp, err := DecodeSearch(raw)
			if err != nil {
				return "", err
			}

			return RenderSearch(resp), nil
		},
	}
}

func providersTool(client *Client, log *slog.Logger) toolbox.Tool {
	return toolbox.Tool{
		Name:        ProvidersToolName,
		Description: "Retrieve available providers and their models from the Perplexica API",
		InputSchema: providersSchema,
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			log.InfoContext(ctx, "list providers")

			raw, err := client.ListProviders(ctx)
			if err != nil {
				return "", fmt.Errorf("providers request failed: %w", err)
			}

			providers, err := DecodeProviders(raw)
			if err != nil {
				return "", err
			}

			return RenderProviders(providers)
		},
	}
}
