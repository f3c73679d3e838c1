package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/typo3docs"
	"github.com/aretw0/typo3docs/internal/cli"
	"github.com/aretw0/typo3docs/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST server",
	Long: `Starts typo3docs as an HTTP server.

Endpoints:
  GET  /operations          operation catalog
  POST /operations/{name}   invoke an operation (JSON arguments, markdown response)
  GET  /openapi.json        OpenAPI description
  GET  /swagger             Swagger UI
  GET  /graph               Mermaid diagram of the invocation pipeline
  GET  /info                version and operation count
  GET  /metrics             Prometheus metrics
  GET  /healthz             liveness probe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd)
		if cmd.Flags().Changed("port") {
			opts.Port, _ = cmd.Flags().GetInt("port")
		}

		rt, err := cli.NewRuntime(opts)
		if err != nil {
			return err
		}
		tui.PrintBanner(os.Stderr, typo3docs.Version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.RunServe(ctx, rt)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
