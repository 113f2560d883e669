package perplexica

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ModelRef identifies a model by its provider and model key. The backend
// requires both halves; a ModelRef is always fully populated or not built
// at all (see Resolve).
type ModelRef struct {
	ProviderID string `json:"providerId"`
	Key        string `json:"key"`
}

// SearchRequest is the wire payload for POST /api/search.
type SearchRequest struct {
	ChatModel          ModelRef   `json:"chatModel"`
	EmbeddingModel     ModelRef   `json:"embeddingModel"`
	OptimizationMode   string     `json:"optimizationMode"`
	FocusMode          string     `json:"focusMode"`
	Query              string     `json:"query"`
	History            [][]string `json:"history,omitempty"`
	SystemInstructions string     `json:"systemInstructions,omitempty"`
	Stream             bool       `json:"stream"`
}

// Model is a chat or embedding model advertised by a provider.
type Model struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// ModelList is a provider's model listing. The backend has shipped two
// shapes over time: an array of {name, key} objects and a map from model
// key to metadata. Both decode into the array form; the map form is sorted
// by key for deterministic output.
type ModelList []Model

func (m *ModelList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var byKey map[string]struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(trimmed, &byKey); err != nil {
			return err
		}

		keys := make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		list := make(ModelList, 0, len(keys))
		for _, k := range keys {
			list = append(list, Model{Name: byKey[k].Name, Key: k})
		}
		*m = list

		return nil
	}

	var list []Model
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*m = list

	return nil
}

// Provider is a backend-registered source of chat and embedding models.
type Provider struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ChatModels      ModelList `json:"chatModels"`
	EmbeddingModels ModelList `json:"embeddingModels"`
}

// Source is one cited search result. Either field may be empty; a source
// with neither carries no information and is skipped at render time.
type Source struct {
	Title string
	URL   string
}

// SearchResponse is the decoded result of a search call. Message is always
// present (absence normalizes to the empty string) and Sources is never nil.
type SearchResponse struct {
	Message string
	Sources []Source
}
