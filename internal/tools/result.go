package tools

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
)

// Invocation is one named operation call with its loosely typed arguments.
type Invocation struct {
	Name      string
	Arguments map[string]any
}

// Result is the dispatch envelope: exactly one of Payload or Err is meaningful.
type Result struct {
	Payload any
	Err     error
}

// OK wraps a successful payload.
func OK(payload any) Result {
	return Result{Payload: payload}
}

// Fail wraps an error. A nil error is replaced so the result stays an error.
func Fail(err error) Result {
	if err == nil {
		err = errors.New("operation failed")
	}
	return Result{Err: err}
}

// IsError reports whether r is the error variant.
func (r Result) IsError() bool {
	return r.Err != nil
}

// Message returns the error message of an error result.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// CallToolResult renders the envelope as an MCP tool result: the indented JSON
// payload on success, "Error: <message>" with isError set otherwise.
func (r Result) CallToolResult() *mcp.CallToolResult {
	if r.IsError() {
		return mcp.NewToolResultError("Error: " + r.Message())
	}

	data, err := json.MarshalIndent(r.Payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error: failed to encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}
