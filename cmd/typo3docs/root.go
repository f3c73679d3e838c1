package main

import (
	"fmt"
	"os"

	"github.com/aretw0/typo3docs/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "typo3docs",
	Short: "typo3docs is a lookup gateway for TYPO3 documentation",
	Long: `typo3docs answers questions about TYPO3 CMS: documentation search, Core changelogs,
extensions from the TYPO3 Extension Repository, Core API references and coding guidelines.

Live data is fetched from docs.typo3.org and extensions.typo3.org when available;
curated content is used otherwise.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./typo3docs.yaml if present)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("content-file", "", "Curated content file replacing the embedded one")
	flags.Duration("timeout", 0, "Timeout of outbound requests (e.g. 10s)")
	flags.Bool("debug", false, "Log every invocation, remote call and fallback")
}

// optionsFromFlags collects the persistent flags into cli.Options.
func optionsFromFlags(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")
	contentFile, _ := flags.GetString("content-file")
	timeout, _ := flags.GetDuration("timeout")
	debug, _ := flags.GetBool("debug")

	return cli.Options{
		ConfigFile:  configFile,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		ContentFile: contentFile,
		Timeout:     timeout,
		Debug:       debug,
	}
}
