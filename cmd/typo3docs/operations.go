package main

import (
	"encoding/json"

	"github.com/aretw0/typo3docs/internal/cli"
	"github.com/spf13/cobra"
)

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the available operations and their arguments",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := cli.NewRuntime(optionsFromFlags(cmd))
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rt.Gateway.Catalog())
		}
		cli.PrintCatalog(cmd.OutOrStdout(), rt.Gateway.Catalog())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(operationsCmd)
	operationsCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
