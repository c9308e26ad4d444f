package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server on stdio so AI agents can walk the algorithm.

Tools: view, select, advance, retreat, reset, get_graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.ServeMCP(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
