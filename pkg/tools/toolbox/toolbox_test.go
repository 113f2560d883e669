package toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticTool(name, result string) Tool {
	return Tool{
		Name:        name,
		Description: "Static tool: " + name,
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, _ json.RawMessage) (string, error) {
			return result, nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	tb := New()
	tb.Register(staticTool("a", "one"), staticTool("b", "two"))

	got, ok := tb.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)

	_, ok = tb.Get("missing")
	assert.False(t, ok)
}

func TestRegister_Replaces(t *testing.T) {
	tb := New()
	tb.Register(staticTool("a", "old"))
	tb.Register(staticTool("a", "new"))

	result, err := tb.Call(context.Background(), "a", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

func TestTools_SortedByName(t *testing.T) {
	tb := New()
	tb.Register(staticTool("c", ""), staticTool("a", ""), staticTool("b", ""))

	tools := tb.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "a", tools[0].Name)
	assert.Equal(t, "b", tools[1].Name)
	assert.Equal(t, "c", tools[2].Name)
}

func TestCall_UnknownTool(t *testing.T) {
	tb := New()

	_, err := tb.Call(context.Background(), "nope", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "nope"`)
}

func TestCall_HandlerError(t *testing.T) {
	failure := errors.New("tool failed")

	tb := New()
	tb.Register(Tool{
		Name: "fail",
		Handler: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "", failure
		},
	})

	_, err := tb.Call(context.Background(), "fail", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, failure)
}
