package main

import (
	"github.com/aretw0/puffin/internal/cli"
	"github.com/spf13/cobra"
)

// statesCmd represents the states command
var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Describe the registered states and their navigation",
	Long:  `Prints the scene state registry, the route table and the reachable transitions as markdown or as a Mermaid state diagram.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := commonFlags(cmd)
		format, _ := cmd.Flags().GetString("format")
		return cli.States(cli.StatesOptions{ConfigPath: path, Format: format}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statesCmd)
	statesCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown, plain or mermaid")
}
