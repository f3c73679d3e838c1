package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/typo3docs"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of typo3docs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "typo3docs version %s\n", strings.TrimSpace(typo3docs.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
