// Package cmd implements the command-line interface for docsgate.
//
// This package provides the following commands:
//   - serve: Start the gateway over stdio or streamable HTTP
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all tools
package cmd
