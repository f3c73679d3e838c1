package ports

import (
	"context"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// Handler implements one operation.
// Args have already been validated and defaulted by the dispatcher.
type Handler interface {
	Handle(ctx context.Context, args domain.Args) (domain.Document, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, args domain.Args) (domain.Document, error)

// Handle calls f(ctx, args).
func (f HandlerFunc) Handle(ctx context.Context, args domain.Args) (domain.Document, error) {
	return f(ctx, args)
}
