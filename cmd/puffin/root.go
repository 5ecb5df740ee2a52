package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/puffin/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "puffin",
	Short: "Puffin is a scene orchestration engine for fixed time-step games",
	Long: `Puffin runs a small game as a set of abstract states, each owning an
ordered list of scenes, and moves between them with fading transitions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to the puffin configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

func commonFlags(cmd *cobra.Command) (string, bool) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return path, debug
}
