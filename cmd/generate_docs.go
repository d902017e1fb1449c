package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/tools"
	"github.com/teemow/docsgate/internal/tools/catalog"
)

func newGenerateDocsCmd() *cobra.Command {
	var (
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate tool documentation",
		Long: `Generate markdown documentation for all available tools.
The documentation is built from the tool catalog, so it always matches
the operations the gateway dispatches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(cmd.OutOrStdout(), outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(stdout io.Writer, outputFile string) error {
	registry, err := catalog.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	markdown := generateToolsMarkdown(registry.Operations())

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
		return nil
	}

	_, err = io.WriteString(stdout, markdown)
	return err
}

func generateToolsMarkdown(ops []tools.Operation) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Tools Reference\n\n")
	sb.WriteString("This document lists every operation docsgate dispatches. Each one is available ")
	sb.WriteString("as an MCP tool and through `POST /dispatch`.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")

	toolsByCategory := groupToolsByCategory(ops)

	// Table of contents
	sb.WriteString("## Table of Contents\n\n")
	categories := make([]string, 0, len(toolsByCategory))
	for category := range toolsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		anchor := strings.ToLower(strings.ReplaceAll(category, " ", "-"))
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", category, anchor))
	}
	sb.WriteString("\n")

	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("## %s\n\n", category))
		for _, tool := range toolsByCategory[category] {
			sb.WriteString(generateToolMarkdown(tool))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// groupToolsByCategory keeps catalog order within each category.
func groupToolsByCategory(ops []tools.Operation) map[string][]mcp.Tool {
	categories := make(map[string][]mcp.Tool)
	for _, op := range ops {
		category := categoryForService(op.Service)
		categories[category] = append(categories[category], op.Tool)
	}
	return categories
}

func categoryForService(service string) string {
	switch service {
	case instrumentation.ServiceDocs:
		return "Google Docs Tools"
	case instrumentation.ServiceDrive:
		return "Google Drive Tools"
	default:
		return "Other"
	}
}

func generateToolMarkdown(tool mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s\n\n", tool.Name))

	if tool.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", tool.Description))
	}

	if len(tool.InputSchema.Properties) > 0 {
		sb.WriteString("**Arguments:**\n")

		// Sort properties for consistent output
		propNames := make([]string, 0, len(tool.InputSchema.Properties))
		for name := range tool.InputSchema.Properties {
			propNames = append(propNames, name)
		}
		sort.Strings(propNames)

		for _, name := range propNames {
			propMap, ok := tool.InputSchema.Properties[name].(map[string]any)
			if !ok {
				continue
			}

			requiredStr := "optional"
			if contains(tool.InputSchema.Required, name) {
				requiredStr = "required"
			}

			sb.WriteString(fmt.Sprintf("- `%s` (%s, %s): ", name, getPropertyType(propMap), requiredStr))
			if desc, ok := propMap["description"].(string); ok {
				sb.WriteString(desc)
			}
			if def, ok := propMap["default"]; ok {
				sb.WriteString(fmt.Sprintf(" Default: `%v`.", def))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func getPropertyType(prop map[string]any) string {
	if t, ok := prop["type"].(string); ok {
		return t
	}
	return "any"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
