// Package tools implements the operation catalog machinery and the dispatcher
// that every transport goes through.
//
// An Operation pairs an advertised mcp.Tool with a handler built by
// NewOperation, which decodes the loosely typed argument bag into a struct and
// validates it. A Dispatcher looks the operation up in a Registry, binds a
// Backend for the caller through a Binder and converts every outcome,
// panics included, into a Result envelope.
//
// The concrete catalogs live in the docs_tools and drive_tools subpackages.
package tools
