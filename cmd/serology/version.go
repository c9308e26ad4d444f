package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/serology"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of serology",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "serology version %s\n", strings.TrimSpace(serology.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
