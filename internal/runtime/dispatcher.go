package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/typo3docs/internal/logging"
	"github.com/aretw0/typo3docs/internal/render"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/aretw0/typo3docs/pkg/ports"
	"github.com/aretw0/typo3docs/pkg/registry"
)

// Dispatcher routes invocations to handlers.
// It is the single boundary where failures become documents: Invoke has no
// error return and recovers handler panics.
type Dispatcher struct {
	registry     *registry.Registry
	logger       *slog.Logger
	hooks        domain.Hooks
	maxInputSize int
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) DispatcherOption {
	return func(d *Dispatcher) {
		d.hooks = h
	}
}

// WithMaxInputSize bounds the byte size of every string argument.
func WithMaxInputSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.maxInputSize = n
	}
}

// NewDispatcher creates a dispatcher over a filled registry.
func NewDispatcher(reg *registry.Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:     reg,
		logger:       logging.NewNop(),
		maxInputSize: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Catalog returns the declared operations in registration order.
func (d *Dispatcher) Catalog() []domain.Operation {
	return d.registry.Catalog()
}

// Invoke runs one operation and always returns a Result with non-empty text.
func (d *Dispatcher) Invoke(ctx context.Context, name string, raw map[string]any) domain.Result {
	start := time.Now()

	entry, err := d.registry.Lookup(name)
	if err != nil {
		d.logger.Warn("Unknown operation", "operation", name)
		return d.finish(ctx, start, domain.Result{
			Operation: name,
			Kind:      domain.ResultError,
			Text:      "Unknown tool: " + render.Fold(name),
		}, false)
	}

	if d.hooks.OnInvoke != nil {
		d.hooks.OnInvoke(ctx, &domain.InvokeEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventInvoke, Operation: name},
			Args:      raw,
		})
	}

	args, err := BindArgs(entry.Operation, raw, d.maxInputSize)
	if err != nil {
		d.logger.Warn("Invocation rejected", "operation", name, "error", err)
		return d.finish(ctx, start, errorResult(name, err), true)
	}

	doc, err := call(ctx, entry.Handler, args)
	if err != nil {
		d.logger.Error("Error in tool", "operation", name, "error", err)
		return d.finish(ctx, start, errorResult(name, err), true)
	}

	return d.finish(ctx, start, domain.Result{
		Operation: name,
		Kind:      domain.ResultDocument,
		Text:      render.Render(doc),
		Source:    doc.Source,
	}, true)
}

func (d *Dispatcher) finish(ctx context.Context, start time.Time, res domain.Result, known bool) domain.Result {
	if d.hooks.OnResult != nil {
		d.hooks.OnResult(ctx, &domain.ResultEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventResult, Operation: res.Operation},
			Kind:      res.Kind,
			Source:    res.Source,
			Duration:  time.Since(start),
			Unknown:   !known,
		})
	}
	return res
}

func errorResult(name string, err error) domain.Result {
	return domain.Result{
		Operation: name,
		Kind:      domain.ResultError,
		Text:      render.ErrorLine(err.Error()),
	}
}

// call runs the handler and converts a panic into an error.
func call(ctx context.Context, h ports.Handler, args domain.Args) (doc domain.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, args)
}
