package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	noop := func(context.Context, Backend, map[string]any) (any, error) { return nil, nil }

	tests := []struct {
		name    string
		ops     []Operation
		wantErr string
	}{
		{
			name: "valid",
			ops: []Operation{
				{Tool: mcp.NewTool("a"), Handler: noop},
				{Tool: mcp.NewTool("b"), Handler: noop},
			},
		},
		{
			name:    "duplicate",
			ops:     []Operation{{Tool: mcp.NewTool("a"), Handler: noop}, {Tool: mcp.NewTool("a"), Handler: noop}},
			wantErr: "duplicate operation a",
		},
		{
			name:    "missing handler",
			ops:     []Operation{{Tool: mcp.NewTool("a")}},
			wantErr: "operation a has no handler",
		},
		{
			name:    "missing name",
			ops:     []Operation{{Handler: noop}},
			wantErr: "operation without a name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.ops...)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.ops), reg.Len())
		})
	}
}

func TestRegistry_Order(t *testing.T) {
	reg, err := NewRegistry(testOperations()...)
	require.NoError(t, err)

	var names []string
	for _, tool := range reg.Tools() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"create_doc", "move_file", "set_role", "explode", "fail"}, names)

	op, ok := reg.Lookup("move_file")
	require.True(t, ok)
	assert.Equal(t, "drive", op.Service)

	_, ok = reg.Lookup("nope")
	assert.False(t, ok)
}
