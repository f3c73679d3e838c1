package typo3docs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/typo3docs/internal/content"
	"github.com/aretw0/typo3docs/internal/handlers"
	"github.com/aretw0/typo3docs/internal/logging"
	"github.com/aretw0/typo3docs/internal/runtime"
	"github.com/aretw0/typo3docs/pkg/adapters/remote"
	"github.com/aretw0/typo3docs/pkg/config"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/aretw0/typo3docs/pkg/ports"
	"github.com/aretw0/typo3docs/pkg/registry"
)

// Gateway is the high-level entry point of the library.
// It wires the outbound client, the curated content and the operation handlers
// behind a dispatcher that never fails.
type Gateway struct {
	dispatcher *runtime.Dispatcher
	content    *content.Catalog

	fetcher      ports.Fetcher
	contentFile  string
	endpoints    config.Endpoints
	timeout      time.Duration
	userAgent    string
	maxInputSize int
	hooks        domain.Hooks
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Gateway.
type Option func(*Gateway)

// WithFetcher injects a custom outbound client, bypassing the default HTTP client.
func WithFetcher(f ports.Fetcher) Option {
	return func(g *Gateway) {
		g.fetcher = f
	}
}

// WithContentFile loads curated content from a file instead of the embedded copy.
func WithContentFile(path string) Option {
	return func(g *Gateway) {
		g.contentFile = path
	}
}

// WithEndpoints overrides the remote base URLs.
func WithEndpoints(ep config.Endpoints) Option {
	return func(g *Gateway) {
		g.endpoints = ep
	}
}

// WithLifecycleHooks registers observability hooks.
// Hooks passed in several calls are all kept.
func WithLifecycleHooks(hooks domain.Hooks) Option {
	return func(g *Gateway) {
		g.hooks = g.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the gateway.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithConfig applies resolved settings.
func WithConfig(cfg config.Config) Option {
	return func(g *Gateway) {
		g.endpoints = cfg.Endpoints()
		g.timeout = cfg.Timeout
		g.userAgent = cfg.UserAgent
		g.maxInputSize = cfg.MaxInputSize
		if cfg.ContentFile != "" {
			g.contentFile = cfg.ContentFile
		}
	}
}

// New initializes a Gateway.
// Without options it talks to the public TYPO3 endpoints and uses the embedded curated content.
func New(opts ...Option) (*Gateway, error) {
	g := &Gateway{
		endpoints: config.DefaultEndpoints(),
		timeout:   remote.DefaultTimeout,
		userAgent: "typo3docs/" + strings.TrimSpace(Version),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = logging.NewNop()
	}

	if g.content == nil {
		var err error
		if g.contentFile != "" {
			g.content, err = content.Load(g.contentFile)
		} else {
			g.content, err = content.Default()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load curated content: %w", err)
		}
	}

	if g.fetcher == nil {
		g.fetcher = remote.NewClient(
			remote.WithTimeout(g.timeout),
			remote.WithUserAgent(g.userAgent),
			remote.WithLogger(g.logger),
			remote.WithHooks(g.hooks),
		)
	}

	reg := registry.NewRegistry()
	err := handlers.Register(reg, handlers.Deps{
		Fetcher:   g.fetcher,
		Content:   g.content,
		Endpoints: g.endpoints,
		Logger:    g.logger,
		Hooks:     g.hooks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register operations: %w", err)
	}

	dispatcherOpts := []runtime.DispatcherOption{
		runtime.WithLogger(g.logger),
		runtime.WithHooks(g.hooks),
	}
	if g.maxInputSize > 0 {
		dispatcherOpts = append(dispatcherOpts, runtime.WithMaxInputSize(g.maxInputSize))
	}
	g.dispatcher = runtime.NewDispatcher(reg, dispatcherOpts...)

	return g, nil
}

// Invoke runs the named operation. It never returns an error: failures come
// back as a Result of kind domain.ResultError with a single-line message.
func (g *Gateway) Invoke(ctx context.Context, name string, args map[string]any) domain.Result {
	return g.dispatcher.Invoke(ctx, name, args)
}

// Catalog lists the available operations in advertised order.
func (g *Gateway) Catalog() []domain.Operation {
	return g.dispatcher.Catalog()
}

// Operation looks up one declared operation.
func (g *Gateway) Operation(name string) (domain.Operation, bool) {
	for _, op := range g.Catalog() {
		if op.Name == name {
			return op, true
		}
	}
	return domain.Operation{}, false
}
