package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/tools"
)

const maxDispatchBody = 10 << 20

// DispatchHandler serves tools/list and tools/call over JSON-RPC. It expects
// SessionAuth in front of it. Operation failures are reported inside the
// result as an error envelope; only protocol failures use JSON-RPC errors.
func DispatchHandler(d *tools.Dispatcher, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithComponent(logger, "dispatch")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDispatchBody))
		if err != nil {
			writeRPCError(w, mcp.RequestId{}, mcp.PARSE_ERROR, "failed to read request body")
			return
		}

		var req mcp.JSONRPCRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeRPCError(w, mcp.RequestId{}, mcp.PARSE_ERROR, "parse error")
			return
		}
		if req.JSONRPC != mcp.JSONRPC_VERSION || req.Method == "" {
			writeRPCError(w, req.ID, mcp.INVALID_REQUEST, "invalid request")
			return
		}

		switch mcp.MCPMethod(req.Method) {
		case mcp.MethodToolsList:
			writeRPCResult(w, req.ID, mcp.ListToolsResult{Tools: d.Registry().Tools()})

		case mcp.MethodToolsCall:
			params, err := decodeCallParams(req.Params)
			if err != nil {
				writeRPCError(w, req.ID, mcp.INVALID_PARAMS, "invalid params: "+err.Error())
				return
			}
			if params.Name == "" {
				writeRPCError(w, req.ID, mcp.INVALID_PARAMS, "missing params.name")
				return
			}
			args := map[string]any{}
			if params.Arguments != nil {
				var ok bool
				if args, ok = params.Arguments.(map[string]any); !ok {
					writeRPCError(w, req.ID, mcp.INVALID_PARAMS, "invalid params: arguments must be an object")
					return
				}
			}
			res := d.Dispatch(r.Context(), tools.Invocation{Name: params.Name, Arguments: args})
			writeRPCResult(w, req.ID, res.CallToolResult())

		default:
			logger.Debug("unknown method", slog.String("method", req.Method))
			writeRPCError(w, req.ID, mcp.METHOD_NOT_FOUND, "method not found: "+req.Method)
		}
	})
}

// decodeCallParams converts the generic params member into CallToolParams.
func decodeCallParams(raw any) (mcp.CallToolParams, error) {
	var params mcp.CallToolParams
	if raw == nil {
		return params, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return params, err
	}
	err = json.Unmarshal(data, &params)
	return params, err
}

func writeRPCResult(w http.ResponseWriter, id mcp.RequestId, result any) {
	writeJSON(w, http.StatusOK, mcp.NewJSONRPCResultResponse(id, result))
}

func writeRPCError(w http.ResponseWriter, id mcp.RequestId, code int, message string) {
	writeJSON(w, http.StatusOK, mcp.NewJSONRPCError(id, code, message, nil))
}
