// Package instrumentation provides OpenTelemetry metrics, tracing and the
// audit trail for docsgate.
//
// # Metrics
//
// HTTP:
//   - http_requests_total, http_request_duration_seconds by method, path and status
//
// Sessions and OAuth:
//   - active_sessions: sessions issued by this process
//   - session_rejections_total by reason (missing, unknown, store_error)
//   - oauth_auth_total by result (success, failure, denied)
//   - oauth_token_refresh_total by result
//
// Dispatch and Google APIs:
//   - tool_invocations_total, tool_duration_seconds by tool and status
//   - google_api_operations_total, google_api_operation_duration_seconds by
//     service, operation kind and status
//
// # Tracing
//
// Spans are named tool.<name> for dispatched invocations and
// google.<service>.<operation> for backend calls. Session ids only ever
// appear hashed.
//
// # Configuration
//
// Instrumentation reads its configuration from the environment:
//   - INSTRUMENTATION_ENABLED (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//   - OTEL_TRACES_SAMPLER_ARG (default: 0.1)
//   - OTEL_SERVICE_NAME (default: docsgate)
//   - METRICS_DETAILED_LABELS, AUDIT_LOGGING_ENABLED
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "drive_list_files", instrumentation.StatusSuccess, "", time.Since(start))
package instrumentation
