package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/puffin"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of puffin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "puffin version %s\n", strings.TrimSpace(puffin.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
