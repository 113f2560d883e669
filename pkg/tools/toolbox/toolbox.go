package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// ToolBox holds a fixed set of tools keyed by name. It is the assembly point
// between tool definitions and the serving layer: tools are registered once
// at startup and the set never changes while serving.
type ToolBox struct {
	tools map[string]Tool
}

// New creates an empty ToolBox.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds one or more tools. A tool with an existing name replaces it.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		tb.tools[t.Name] = t
	}
}

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns all registered tools sorted by name.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

// Call executes the named tool with the given input. An unknown name is an
// error; handler errors pass through unchanged.
func (tb *ToolBox) Call(ctx context.Context, name string, input json.RawMessage) (string, error) {
	t, ok := tb.tools[name]
	if !ok {
		return "", fmt.Errorf("toolbox: unknown tool %q", name)
	}

	return t.Handler(ctx, input)
}
