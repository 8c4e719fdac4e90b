package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/nahcub/call-bot/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the field extraction and order composition tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintln(os.Stderr, "callbot MCP server started on stdio")

		srv := mcpserver.NewServer()
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
