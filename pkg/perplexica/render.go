package perplexica

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderSearch formats a search response as markdown with a summary section
// followed by the source list in backend order. A source missing one field
// still renders (the other line is empty); a source with neither title nor
// URL carries no information and is skipped.
func RenderSearch(resp SearchResponse) string {
	var b strings.Builder

	b.WriteString("## Summary\n\n")
	b.WriteString(resp.Message)
	b.WriteString("\n\n## Sources\n\n")

	rendered := 0
	for _, s := range resp.Sources {
		if s.Title == "" && s.URL == "" {
			continue
		}

		fmt.Fprintf(&b, "- %s\n  - %s\n", s.Title, s.URL)
		rendered++
	}

	if rendered == 0 {
		b.WriteString("No sources found.\n")
	}

	return b.String()
}

// RenderProviders formats the providers listing: a summary block per
// provider in backend order, then the complete structured data as JSON for
// programmatic consumption by the calling agent.
func RenderProviders(providers []Provider) (string, error) {
	if providers == nil {
		providers = []Provider{}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Found %d providers available:\n", len(providers))

	for _, p := range providers {
		fmt.Fprintf(&b, "\n## %s\nID: %s\nChat Models: %d\nEmbedding Models: %d\n",
			p.Name, p.ID, len(p.ChatModels), len(p.EmbeddingModels))
	}

	data, err := json.MarshalIndent(providers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("perplexica: serialize providers: %w", err)
	}

	fmt.Fprintf(&b, "\n## Complete Response (JSON)\n\n```json\n%s\n```\n", data)

	return b.String(), nil
}
