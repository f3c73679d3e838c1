package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInvoke   EventType = "invoke"
	EventResult   EventType = "result"
	EventRemote   EventType = "remote"
	EventFallback EventType = "fallback"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Operation string    `json:"operation"`
}

// InvokeEvent marks the start of an invocation.
type InvokeEvent struct {
	EventBase
	Args Args `json:"args,omitempty"`
}

// ResultEvent marks the end of an invocation.
type ResultEvent struct {
	EventBase
	Kind     ResultKind    `json:"kind"`
	Source   Source        `json:"source,omitempty"`
	Duration time.Duration `json:"duration"`
	// Unknown is set when no operation of that name is registered.
	Unknown bool `json:"unknown,omitempty"`
}

// RemoteEvent reports one outbound call.
type RemoteEvent struct {
	EventBase
	URL      string        `json:"url"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// FallbackEvent reports that a handler switched to curated data.
type FallbackEvent struct {
	EventBase
	Reason string `json:"reason"`
}

// Hooks defines callbacks for gateway observability.
// Any field may be nil.
type Hooks struct {
	OnInvoke   func(context.Context, *InvokeEvent)
	OnResult   func(context.Context, *ResultEvent)
	OnRemote   func(context.Context, *RemoteEvent)
	OnFallback func(context.Context, *FallbackEvent)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnInvoke:   chain(h.OnInvoke, other.OnInvoke),
		OnResult:   chain(h.OnResult, other.OnResult),
		OnRemote:   chain(h.OnRemote, other.OnRemote),
		OnFallback: chain(h.OnFallback, other.OnFallback),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
