package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
	"github.com/aretw0/serology/internal/config"
)

var globalOpts cli.Options

var rootCmd = &cobra.Command{
	Use:   "serology",
	Short: "Serology walks the hepatitis B serology decision algorithm",
	Long: `Serology asks one marker at a time (HBsAg, IgM anti-HBc, IgG anti-HBc, Anti-HBe)
and walks the decision graph until it reaches an interpretation.

The built-in algorithm is used unless --graph points to a YAML file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration for cmd with flag > env > file > default.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return cli.ResolveConfig(globalOpts, cmd.Flags())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.GraphPath, "graph", "", "Path to a YAML algorithm (default: built-in HBV algorithm)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Debug, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Strict, "strict", false, "Report invalid operations instead of ignoring them")
}
