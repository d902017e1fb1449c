package instrumentation

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultServiceName is the OpenTelemetry service name.
const DefaultServiceName = "docsgate"

// Constants for metric label values.
const (
	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// OAuth result values
	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultDenied  = "denied"

	// Session rejection reasons
	RejectMissing    = "missing"
	RejectUnknown    = "unknown"
	RejectStoreError = "store_error"

	// Google service names
	ServiceDrive = "drive"
	ServiceDocs  = "docs"

	// Exporter types
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Config selects the telemetry exporters. The env tag names the variable
// DefaultConfig reads each value from.
type Config struct {
	ServiceName    string `env:"OTEL_SERVICE_NAME" validate:"required"`
	ServiceVersion string

	// Enabled turns metrics and tracing on. A disabled provider records nothing.
	Enabled bool `env:"INSTRUMENTATION_ENABLED"`

	MetricsExporter string `env:"METRICS_EXPORTER" validate:"oneof=prometheus otlp stdout"`
	TracingExporter string `env:"TRACING_EXPORTER" validate:"oneof=otlp stdout none"`

	// OTLPEndpoint is host:port without a scheme, e.g. "localhost:4318".
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"required_if=MetricsExporter otlp,required_if=TracingExporter otlp"`
	// OTLPInsecure disables TLS towards the collector.
	OTLPInsecure bool `env:"OTEL_EXPORTER_OTLP_INSECURE"`

	TraceSamplingRate float64 `env:"OTEL_TRACES_SAMPLER_ARG" validate:"gte=0,lte=1"`

	// DetailedLabels adds the hashed session id to tool metrics.
	// Keep it off in production: every session becomes its own series.
	DetailedLabels bool `env:"METRICS_DETAILED_LABELS"`

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	// Enabled determines if audit records are written (default: true).
	Enabled bool `env:"AUDIT_LOGGING_ENABLED"`
}

// DefaultConfig reads the configuration from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envOr("OTEL_SERVICE_NAME", DefaultServiceName),
		ServiceVersion:    "unknown",
		Enabled:           envBool("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envOr("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:      envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    envBool("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled: envBool("AUDIT_LOGGING_ENABLED", true),
		},
	}
}

var configValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}()

// Validate reports every invalid setting by its environment variable.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	var verrs validator.ValidationErrors
	if err == nil || !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s, got %q", fe.Field(), fe.Param(), fe.Value()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be between 0.0 and 1.0, got %v", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid instrumentation config: %s", strings.Join(msgs, "; "))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envBool falls back on unset or unparsable values.
func envBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return parsed
}
