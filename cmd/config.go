package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/teemow/docsgate/internal/session"
)

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"

	storeMemory = "memory"
	storeValkey = "valkey"
)

// ServeConfig is the resolved configuration of the serve command.
// Field tags name the flag each value comes from so validation errors point
// at something the operator can change.
type ServeConfig struct {
	Transport string `flag:"transport" validate:"oneof=stdio streamable-http"`
	HTTPAddr  string `flag:"http-addr" validate:"required_if=Transport streamable-http"`
	Debug     bool   `flag:"debug"`

	GoogleClientID     string `flag:"google-client-id" validate:"required_if=Transport streamable-http"`
	GoogleClientSecret string `flag:"google-client-secret" validate:"required_if=Transport streamable-http"`
	RedirectURL        string `flag:"redirect-url" validate:"omitempty,url"`
	FrontendURL        string `flag:"frontend-url" validate:"required"`

	SessionStore    string `flag:"session-store" validate:"oneof=memory valkey"`
	ValkeyURL       string `flag:"valkey-url" validate:"required_if=Transport streamable-http SessionStore valkey"`
	ValkeyPassword  string `flag:"valkey-password"`
	ValkeyTLS       bool   `flag:"valkey-tls"`
	ValkeyKeyPrefix string `flag:"valkey-key-prefix"`
	ValkeyDB        int    `flag:"valkey-db" validate:"gte=0"`

	ExportDir string `flag:"export-dir"`

	MetricsEnabled bool   `flag:"metrics-enabled"`
	MetricsAddr    string `flag:"metrics-addr" validate:"required_if=MetricsEnabled true"`
}

// Valkey returns the session store settings.
func (c *ServeConfig) Valkey() session.ValkeyConfig {
	return session.ValkeyConfig{
		URL:        c.ValkeyURL,
		Password:   c.ValkeyPassword,
		TLSEnabled: c.ValkeyTLS,
		KeyPrefix:  c.ValkeyKeyPrefix,
		DB:         c.ValkeyDB,
	}
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" {
			return "--" + name
		}
		return fld.Name
	})
	return v
}

// Validate checks the resolved configuration.
func (c *ServeConfig) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be an absolute URL", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// loadServeEnvVars fills config from the environment.
// Environment variables only apply when the matching flag was not explicitly set.
func loadServeEnvVars(cmd *cobra.Command, config *ServeConfig) {
	envString(cmd, "google-client-id", "GOOGLE_CLIENT_ID", &config.GoogleClientID)
	envString(cmd, "google-client-secret", "GOOGLE_CLIENT_SECRET", &config.GoogleClientSecret)
	envString(cmd, "redirect-url", "GOOGLE_REDIRECT_URI", &config.RedirectURL)
	envString(cmd, "frontend-url", "FRONTEND_URL", &config.FrontendURL)
	envString(cmd, "session-store", "SESSION_STORE", &config.SessionStore)
	envString(cmd, "export-dir", "EXPORT_DIR", &config.ExportDir)
	envString(cmd, "metrics-addr", "METRICS_ADDR", &config.MetricsAddr)

	// PORT is the platform convention for the listen port.
	if !cmd.Flags().Changed("http-addr") {
		if port := os.Getenv("PORT"); port != "" {
			config.HTTPAddr = ":" + port
		}
	}

	if !cmd.Flags().Changed("metrics-enabled") {
		if v, err := strconv.ParseBool(os.Getenv("METRICS_ENABLED")); err == nil {
			config.MetricsEnabled = v
		}
	}

	// Valkey
	envString(cmd, "valkey-url", "VALKEY_URL", &config.ValkeyURL)
	envString(cmd, "valkey-password", "VALKEY_PASSWORD", &config.ValkeyPassword)
	envString(cmd, "valkey-key-prefix", "VALKEY_KEY_PREFIX", &config.ValkeyKeyPrefix)
	if !cmd.Flags().Changed("valkey-tls") {
		if os.Getenv("VALKEY_TLS_ENABLED") == "true" {
			config.ValkeyTLS = true
		}
	}
	if !cmd.Flags().Changed("valkey-db") {
		if dbStr := os.Getenv("VALKEY_DB"); dbStr != "" {
			if db, err := strconv.Atoi(dbStr); err == nil {
				config.ValkeyDB = db
			}
		}
	}
}

func envString(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}
