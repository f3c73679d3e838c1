package main

import (
	"os"

	"github.com/aretw0/typo3docs/internal/cli"
	"github.com/aretw0/typo3docs/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <operation>",
	Short: "Run one operation and print its document",
	Example: `  typo3docs invoke search_typo3_extensions --arg query=news --arg limit=5
  typo3docs invoke get_typo3_changelog --arg version=12.4 --arg type=Breaking`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("arg")
		raw, _ := cmd.Flags().GetBool("raw")

		rt, err := cli.NewRuntime(optionsFromFlags(cmd))
		if err != nil {
			return err
		}

		var opts cli.InvokeOptions
		if !raw && tui.IsTerminal(os.Stdout) {
			if render, err := tui.NewRenderer(tui.Width(os.Stdout)); err == nil {
				opts.Render = render
			} else {
				rt.Logger.Warn("Markdown renderer unavailable, printing raw text", "error", err)
			}
		}
		return cli.RunInvoke(cmd.Context(), rt.Gateway, args[0], pairs, cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)

	invokeCmd.Flags().StringArrayP("arg", "a", nil, "Operation argument as key=value (repeatable)")
	invokeCmd.Flags().Bool("raw", false, "Print markdown without terminal formatting")
}
