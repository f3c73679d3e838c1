package main

import (
	"fmt"

	"github.com/aretw0/typo3docs/internal/cli"
	"github.com/aretw0/typo3docs/internal/content"
	"github.com/aretw0/typo3docs/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [content-file]",
	Short: "Check curated content for consistency",
	Long: `Checks a curated content file (or the configured one, or the embedded default)
against the operation catalog and reports entries that lookups cannot serve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			cfg, err := cli.LoadConfig(optionsFromFlags(cmd))
			if err != nil {
				return err
			}
			path = cfg.ContentFile
		}

		cat, err := loadContent(path)
		if err != nil {
			return err
		}

		report := validator.ValidateContent(cat)
		out := cmd.OutOrStdout()
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(out, "Content is valid! ✅")
		return nil
	},
}

func loadContent(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
