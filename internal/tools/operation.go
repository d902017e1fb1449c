package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler executes an operation against a bound backend.
type Handler func(ctx context.Context, backend Backend, args map[string]any) (any, error)

// Operation is one catalog entry: its advertised tool definition, the Google
// service it talks to, and the handler.
type Operation struct {
	Tool    mcp.Tool
	Service string
	Handler Handler
}

// Name returns the operation name.
func (o Operation) Name() string {
	return o.Tool.Name
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their argument names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewOperation builds an Operation whose handler decodes the argument bag into
// A, validates it with its `validate` struct tags and then calls fn.
// Decode and validation failures become InvalidArgumentsError.
func NewOperation[A any](tool mcp.Tool, service string, fn func(ctx context.Context, backend Backend, args A) (any, error)) Operation {
	return Operation{
		Tool:    tool,
		Service: service,
		Handler: func(ctx context.Context, backend Backend, raw map[string]any) (any, error) {
			var args A
			if err := decodeArguments(raw, &args); err != nil {
				return nil, &InvalidArgumentsError{Operation: tool.Name, Err: err}
			}
			if err := validateArguments(&args); err != nil {
				return nil, &InvalidArgumentsError{Operation: tool.Name, Err: err}
			}
			return fn(ctx, backend, args)
		},
	}
}

// decodeArguments converts the JSON-shaped argument bag into a typed struct.
func decodeArguments(raw map[string]any, out any) error {
	if len(raw) == 0 {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func validateArguments(args any) error {
	err := validate.Struct(args)
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
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
