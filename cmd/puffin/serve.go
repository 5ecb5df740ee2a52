package main

import (
	"github.com/aretw0/puffin/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only introspection server",
	Long: `Serves the snapshots that running games publish to the configured
backend, plus the registry, health and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, debug := commonFlags(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		return cli.Serve(cmd.Context(), cli.ServeOptions{ConfigPath: path, Debug: debug, Addr: addr}, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, then "+cli.DefaultServeAddr+")")
}
