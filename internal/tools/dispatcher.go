package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/session"
)

// unknownToolLabel replaces unknown operation names in metrics.
const unknownToolLabel = "unknown"

// Dispatcher routes invocations to catalog operations. Dispatch never panics
// and never returns anything but a Result.
type Dispatcher struct {
	registry *Registry
	binder   Binder
	logger   *slog.Logger
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records tool metrics.
func WithMetrics(m *instrumentation.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithAuditLogger writes one audit record per invocation.
func WithAuditLogger(al *instrumentation.AuditLogger) DispatcherOption {
	return func(d *Dispatcher) { d.audit = al }
}

// NewDispatcher creates a dispatcher over registry using binder.
func NewDispatcher(registry *Registry, binder Binder, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		binder:   binder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.WithComponent(d.logger, "dispatcher")
	return d
}

// Registry returns the catalog.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch runs one invocation to completion.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) Result {
	requestID := uuid.NewString()
	start := time.Now()

	var sessionHash string
	if id, ok := session.IDFromContext(ctx); ok {
		sessionHash = logging.HashSessionID(id)
	}
	logger := logging.WithTool(d.logger, inv.Name).With(logging.RequestID(requestID))
	if sessionHash != "" {
		logger = logger.With(slog.String(logging.KeySession, sessionHash))
	}

	op, ok := d.registry.Lookup(inv.Name)
	if !ok {
		logger.Warn("unknown operation requested")
		d.metrics.RecordToolInvocation(ctx, unknownToolLabel, instrumentation.StatusError, sessionHash, time.Since(start))
		return Fail(&UnknownOperationError{Name: inv.Name})
	}

	ctx, span := instrumentation.StartToolSpan(ctx, op.Name(),
		instrumentation.NewSpanAttributeBuilder().
			WithService(op.Service).
			WithOperation(instrumentation.OperationKind(op.Name())).
			WithSession(sessionHash).
			WithRequestID(requestID).
			Build()...,
	)
	defer span.End()
	if traceID := instrumentation.GetTraceID(ctx); traceID != "" {
		logger = logger.With(slog.String(logging.KeyTraceID, traceID), slog.String(logging.KeySpanID, instrumentation.GetSpanID(ctx)))
	}

	record := instrumentation.NewToolInvocation(op.Name()).
		WithRequestID(requestID).
		WithSession(sessionHash).
		WithService(op.Service, instrumentation.OperationKind(op.Name())).
		WithSpanContext(ctx)

	res := d.execute(ctx, op, inv.Arguments, logger)
	duration := time.Since(start)

	status := instrumentation.StatusSuccess
	if res.IsError() {
		status = instrumentation.StatusError
		record.CompleteWithError(res.Err)
		instrumentation.SetSpanError(span, res.Err)
		logger.Warn("operation failed", logging.Status(status), slog.Duration(logging.KeyDuration, duration), logging.Err(res.Err))
	} else {
		record.CompleteSuccess()
		instrumentation.SetSpanSuccess(span)
		logger.Debug("operation completed", logging.Status(status), slog.Duration(logging.KeyDuration, duration))
	}

	d.metrics.RecordToolInvocation(ctx, op.Name(), status, sessionHash, duration)
	d.audit.LogToolInvocation(record)

	return res
}

// execute binds a backend and runs the handler. Panics are recovered into a
// BackendOperationError.
func (d *Dispatcher) execute(ctx context.Context, op Operation, args map[string]any, logger *slog.Logger) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("operation panicked", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			res = Fail(&BackendOperationError{Operation: op.Name(), Err: fmt.Errorf("internal error: %v", r)})
		}
	}()

	backend, err := d.binder.Bind(ctx)
	if err != nil {
		return Fail(classify(op.Name(), err))
	}
	if backend == nil {
		return Fail(ErrMissingCredentials)
	}

	payload, err := op.Handler(ctx, backend, args)
	if err != nil {
		return Fail(classify(op.Name(), err))
	}
	return OK(payload)
}
