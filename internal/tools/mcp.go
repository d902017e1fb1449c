package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterMCP registers every catalog operation with an MCP server. All calls
// go through d.Dispatch, so MCP clients see the same envelope as /dispatch.
func RegisterMCP(s *mcpserver.MCPServer, d *Dispatcher) {
	for _, op := range d.Registry().Operations() {
		name := op.Name()
		s.AddTool(op.Tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Dispatch(ctx, Invocation{Name: name, Arguments: request.GetArguments()}).CallToolResult(), nil
		})
	}
}
