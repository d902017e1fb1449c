// Package catalog assembles the fixed operation catalog served by docsgate.
package catalog

import (
	"github.com/teemow/docsgate/internal/tools"
	"github.com/teemow/docsgate/internal/tools/docs_tools"
	"github.com/teemow/docsgate/internal/tools/drive_tools"
)

// Operations returns every operation, documents first.
func Operations() []tools.Operation {
	var ops []tools.Operation
	ops = append(ops, docs_tools.Operations()...)
	ops = append(ops, drive_tools.Operations()...)
	return ops
}

// NewRegistry builds the registry over Operations.
func NewRegistry() (*tools.Registry, error) {
	return tools.NewRegistry(Operations()...)
}
