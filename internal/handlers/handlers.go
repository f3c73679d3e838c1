// Package handlers implements the gateway operations.
//
// Remote-first handlers (docs search, extension search, extension detail) try
// one outbound call and fall back to curated content on any failure or on an
// empty result. Pure-lookup handlers (changelog, API reference, guidelines)
// never touch the network. No handler returns an error for a failed remote
// call or a missing key; those paths produce a guidance document instead.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/typo3docs/internal/content"
	"github.com/aretw0/typo3docs/internal/logging"
	"github.com/aretw0/typo3docs/pkg/config"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/aretw0/typo3docs/pkg/ports"
	"github.com/aretw0/typo3docs/pkg/registry"
)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Fetcher   ports.Fetcher
	Content   *content.Catalog
	Endpoints config.Endpoints
	Logger    *slog.Logger
	Hooks     domain.Hooks
}

func (d Deps) withDefaults() (Deps, error) {
	if d.Fetcher == nil {
		return d, fmt.Errorf("handlers: fetcher is required")
	}
	if d.Content == nil {
		return d, fmt.Errorf("handlers: content catalog is required")
	}
	def := config.DefaultEndpoints()
	if d.Endpoints.DocsBaseURL == "" {
		d.Endpoints.DocsBaseURL = def.DocsBaseURL
	}
	if d.Endpoints.DocsSearchURL == "" {
		d.Endpoints.DocsSearchURL = def.DocsSearchURL
	}
	if d.Endpoints.ChangelogBaseURL == "" {
		d.Endpoints.ChangelogBaseURL = def.ChangelogBaseURL
	}
	if d.Endpoints.TERAPIURL == "" {
		d.Endpoints.TERAPIURL = def.TERAPIURL
	}
	if d.Endpoints.TERSiteURL == "" {
		d.Endpoints.TERSiteURL = def.TERSiteURL
	}
	d.Endpoints.DocsBaseURL = strings.TrimRight(d.Endpoints.DocsBaseURL, "/")
	d.Endpoints.ChangelogBaseURL = strings.TrimRight(d.Endpoints.ChangelogBaseURL, "/")
	d.Endpoints.TERAPIURL = strings.TrimRight(d.Endpoints.TERAPIURL, "/")
	d.Endpoints.TERSiteURL = strings.TrimRight(d.Endpoints.TERSiteURL, "/")
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	return d, nil
}

// fallback records that op switched to curated data.
func (d Deps) fallback(ctx context.Context, op, reason string) {
	d.Logger.Info("Falling back to curated content", "operation", op, "reason", reason)
	if d.Hooks.OnFallback != nil {
		d.Hooks.OnFallback(ctx, &domain.FallbackEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFallback, Operation: op},
			Reason:    reason,
		})
	}
}

// Register adds every operation of the catalog to reg.
func Register(reg *registry.Registry, deps Deps) error {
	deps, err := deps.withDefaults()
	if err != nil {
		return err
	}

	handlerFor := map[string]ports.Handler{
		OpSearchDocs:       &DocsSearch{deps: deps},
		OpChangelog:        &Changelog{deps: deps},
		OpSearchExtensions: &ExtensionSearch{deps: deps},
		OpExtensionDetail:  &ExtensionDetail{deps: deps},
		OpAPIReference:     &APIReference{deps: deps},
		OpGuidelines:       &Guidelines{deps: deps},
	}
	for _, op := range Operations() {
		if err := reg.Register(op, handlerFor[op.Name]); err != nil {
			return err
		}
	}
	return nil
}

// orDefault returns s, or def when s is blank.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
