package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Walk the algorithm in a full-screen card interface",
	Long: `Opens one card per question. ←/→ or p/n select, enter continues,
backspace or b goes back, r resets, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.RunTUI(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
