package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the docsgate application
var rootCmd = &cobra.Command{
	Use:   "docsgate",
	Short: "Multi-tenant gateway for Google Docs and Drive tools",
	Long: `docsgate signs users in with Google and runs Docs and Drive operations
on their behalf.

It can run as:
  - An MCP (Model Context Protocol) server over stdio for a single user
  - A multi-tenant HTTP gateway with per-session OAuth credentials`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "docsgate version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
