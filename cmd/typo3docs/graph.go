package main

import (
	"fmt"

	"github.com/aretw0/typo3docs/internal/cli"
	"github.com/aretw0/typo3docs/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [operation]",
	Short: "Export the invocation pipeline as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) showing every operation, its arguments and
whether it consults a remote service before falling back to curated content.
Naming an operation highlights its path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := cli.NewRuntime(optionsFromFlags(cmd))
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if len(args) > 0 {
			if _, ok := rt.Gateway.Operation(args[0]); !ok {
				return fmt.Errorf("unknown operation: %s", args[0])
			}
			overlay = &graph.Overlay{Focus: args[0]}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(rt.Gateway.Catalog(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
