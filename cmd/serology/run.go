package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Walk the algorithm in the terminal",
	Long: `Starts an interactive session. Answer with p/+ or n/-, press enter to continue,
b to go back, r to reset and q to quit.

With --json the session reads and writes newline-delimited JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.RunSession(cmd.Context(), cfg, cli.RunOptions{
			JSON:     jsonMode,
			Headless: headless,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run without prompts and stop at the first conclusion")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
