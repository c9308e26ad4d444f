package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check an algorithm for consistency",
	Long: `Checks that every question has both branches, every reference resolves,
every question is reachable and no walk can loop. Without a file the --graph
flag (or the built-in algorithm) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := globalOpts.GraphPath
		if len(args) > 0 {
			path = args[0]
		}
		if err := cli.Validate(cmd.OutOrStdout(), path); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
