package drive_tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/tools"
)

const fileIDDescription = "Google Drive file ID"

// stringItems is the item schema of string array arguments.
var stringItems = mcp.Items(map[string]any{"type": "string"})

// Operations returns the Google Drive operations in catalog order.
func Operations() []tools.Operation {
	var ops []tools.Operation
	ops = append(ops, fileOperations()...)
	ops = append(ops, shareOperations()...)
	ops = append(ops, revisionOperations()...)
	ops = append(ops, commentOperations()...)
	return ops
}
