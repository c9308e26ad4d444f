package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/serology/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves one session over a JSON API. Every client drives the same session.

Endpoints: GET /view, POST /select, POST /advance, POST /retreat, POST /reset,
GET /graph, GET /graph/mermaid, GET /events, GET /health, GET /openapi.yaml, GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		return cli.Serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
