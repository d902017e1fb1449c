// Package server is the HTTP surface of docsgate.
//
// # Endpoints
//
//   - GET /auth/start redirects the browser to the Google consent screen.
//   - GET /auth/callback exchanges the authorization code, stores the grant
//     under a fresh session id and redirects to the frontend with
//     ?session=<id>.
//   - POST /dispatch is a JSON-RPC 2.0 endpoint for tools/list and
//     tools/call, gated by SessionAuth.
//   - /mcp serves MCP Streamable HTTP behind the same SessionAuth.
//   - GET /health, /healthz and /readyz are unauthenticated health checks.
//
// Prometheus metrics are served by MetricsServer on a separate listener so
// operational data is never exposed on the public port.
//
// # Sessions
//
// A session id is a bearer credential. It is read only from the X-Session-ID
// header or from "Authorization: Session <id>", never from the body or query.
// Requests without a known session are rejected with 401 before any handler
// runs.
package server
