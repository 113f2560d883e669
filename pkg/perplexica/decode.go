package perplexica

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend is a third-party, evolving API: decoding is defensive. Only
// the top-level shape is strict; per-field absence normalizes to zero values
// and unknown fields are ignored.

// DecodeProviders parses the providers listing. Both response shapes the
// backend has shipped are accepted: a bare JSON array and a {"providers":
// [...]} wrapper object.
func DecodeProviders(raw json.RawMessage) ([]Provider, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var providers []Provider
		if err := json.Unmarshal(trimmed, &providers); err != nil {
			return nil, fmt.Errorf("perplexica: decode providers: %w", err)
		}

		return providers, nil
	}

	var wrapper struct {
		Providers []Provider `json:"providers"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("perplexica: decode providers: %w", err)
	}

	return wrapper.Providers, nil
}

// wireSource tolerates the two source shapes the backend has returned:
// title/url at the top level, or nested under a metadata object.
type wireSource struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Metadata struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"metadata"`
}

// DecodeSearch parses a search response. A missing message decodes to the
// empty string and missing sources to an empty slice; only a top level that
// is not a JSON object fails the decode.
func DecodeSearch(raw json.RawMessage) (SearchResponse, error) {
	var wire struct {
		Message string       `json:"message"`
		Sources []wireSource `json:"sources"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return SearchResponse{}, fmt.Errorf("perplexica: decode search response: %w", err)
	}

	sources := make([]Source, 0, len(wire.Sources))
	for _, s := range wire.Sources {
		title := s.Title
		if title == "" {
			title = s.Metadata.Title
		}

		url := s.URL
		if url == "" {
			url = s.Metadata.URL
		}

		sources = append(sources, Source{Title: title, URL: url})
	}

	return SearchResponse{Message: wire.Message, Sources: sources}, nil
}
