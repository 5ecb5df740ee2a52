package main

import (
	"github.com/aretw0/puffin/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay scripted input headlessly and print the transition log",
	Long: `Runs the game on a fixed clock as fast as possible, pressing controls at
the given ticks. Presses are written tick:control (e.g. 2:confirm) and gamepad
changes tick:connect:index or tick:disconnect:index.`,
	Example: `  puffin simulate --press 2:confirm --press 60:confirm --press 100:pause --ticks 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, debug := commonFlags(cmd)
		ticks, _ := cmd.Flags().GetUint64("ticks")
		presses, _ := cmd.Flags().GetStringArray("press")
		devices, _ := cmd.Flags().GetStringArray("device")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.Simulate(cmd.Context(), cli.SimulateOptions{
			ConfigPath: path,
			Debug:      debug,
			JSON:       jsonMode,
			Ticks:      ticks,
			Presses:    presses,
			Devices:    devices,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Uint64("ticks", cli.DefaultSimulationTicks, "Maximum number of ticks to run")
	simulateCmd.Flags().StringArray("press", nil, "Control press as tick:control (repeatable)")
	simulateCmd.Flags().StringArray("device", nil, "Gamepad change as tick:connect|disconnect:index (repeatable)")
	simulateCmd.Flags().Bool("json", false, "Print the log as NDJSON")
}
