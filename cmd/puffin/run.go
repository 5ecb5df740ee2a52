package main

import (
	"os"

	"github.com/aretw0/puffin/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the game in the terminal",
	Long: `Starts the engine with keyboard input and a terminal renderer.
Arrows or WASD move, Enter confirms, Esc goes back, P pauses and Q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, debug := commonFlags(cmd)
		headless, _ := cmd.Flags().GetBool("headless")
		watchMode, _ := cmd.Flags().GetBool("watch")
		maxTicks, _ := cmd.Flags().GetUint64("max-ticks")
		runID, _ := cmd.Flags().GetString("run-id")

		if !headless {
			cli.Banner(os.Stderr)
		}

		return cli.Execute(cmd.Context(), cli.RunOptions{
			ConfigPath: path,
			Debug:      debug,
			Headless:   headless,
			Watch:      watchMode,
			MaxTicks:   maxTicks,
			RunID:      runID,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run without keyboard or screen")
	runCmd.Flags().BoolP("watch", "w", false, "Restart the game whenever the config file changes")
	runCmd.Flags().Uint64("max-ticks", 0, "Stop after this many ticks (0 means no limit)")
	runCmd.Flags().String("run-id", "", "Identifier snapshots are published under (overrides the config)")

	// 'run' is the default if no command is provided
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
