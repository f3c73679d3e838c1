package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/typo3docs"
	"github.com/aretw0/typo3docs/internal/logging"
	"github.com/aretw0/typo3docs/internal/metrics"
	"github.com/aretw0/typo3docs/pkg/config"
	"github.com/aretw0/typo3docs/pkg/domain"
)

// DefaultEnvFiles are read for TYPO3DOCS_* settings when present.
var DefaultEnvFiles = []string{".env"}

// Options are the command-line overrides shared by all commands.
// Zero values leave the resolved configuration untouched.
type Options struct {
	ConfigFile  string
	EnvFiles    []string
	LogLevel    string
	LogFormat   string
	ContentFile string
	Timeout     time.Duration
	Port        int
	Debug       bool
}

// LoadConfig resolves the configuration and applies flag overrides on top.
func LoadConfig(opts Options) (config.Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = DefaultEnvFiles
	}
	cfg, err := config.Load(opts.ConfigFile, envFiles...)
	if err != nil {
		return cfg, err
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.ContentFile != "" {
		cfg.ContentFile = opts.ContentFile
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}
	return cfg, cfg.Validate()
}

// createLogger configures the application logger.
// It always writes to Stderr so Stdout stays free for documents and JSON-RPC.
func createLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, level, logging.Format(cfg.LogFormat)), nil
}

// Runtime bundles what a command needs to serve requests.
type Runtime struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Gateway *typo3docs.Gateway
}

// NewRuntime builds the gateway with standard CLI conventions:
// config from file and environment, logger on Stderr, Prometheus metrics and debug hooks.
func NewRuntime(opts Options) (*Runtime, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := createLogger(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New(true)
	gwOpts := []typo3docs.Option{
		typo3docs.WithConfig(cfg),
		typo3docs.WithLogger(logger),
		typo3docs.WithLifecycleHooks(m.Hooks()),
	}
	if opts.Debug {
		gwOpts = append(gwOpts, typo3docs.WithLifecycleHooks(createDebugHooks(logger)))
	}

	gw, err := typo3docs.New(gwOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing gateway: %w", err)
	}
	return &Runtime{Config: cfg, Logger: logger, Metrics: m, Gateway: gw}, nil
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnInvoke: func(ctx context.Context, e *domain.InvokeEvent) {
			logger.Debug("Invoke", "operation", e.Operation, "args", e.Args)
		},
		OnResult: func(ctx context.Context, e *domain.ResultEvent) {
			logger.Debug("Result", "operation", e.Operation, "kind", e.Kind, "source", e.Source, "duration", e.Duration)
		},
		OnRemote: func(ctx context.Context, e *domain.RemoteEvent) {
			if e.Err != nil {
				logger.Debug("Remote Call (Error)", "url", e.URL, "err", e.Err, "duration", e.Duration)
			} else {
				logger.Debug("Remote Call (Success)", "url", e.URL, "duration", e.Duration)
			}
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			logger.Debug("Fallback", "operation", e.Operation, "reason", e.Reason)
		},
	}
}
