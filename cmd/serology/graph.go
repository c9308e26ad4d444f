package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the algorithm as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the decision graph.

With --overlay the given answers are replayed from the first question and the
walk is highlighted, e.g. --overlay n,n,p.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		overlay, _ := cmd.Flags().GetString("overlay")
		return cli.PrintGraph(cmd.Context(), cmd.OutOrStdout(), cfg, overlay)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("overlay", "", "Comma separated answers whose path to highlight")
}
