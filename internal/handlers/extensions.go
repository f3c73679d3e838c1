package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/typo3docs/internal/render"
	"github.com/aretw0/typo3docs/pkg/adapters/remote"
	"github.com/aretw0/typo3docs/pkg/config"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/dustin/go-humanize"
)

type extensionSearchResponse struct {
	Extensions []any `mapstructure:"extensions"`
}

// terExtension is one TER API extension record.
type terExtension struct {
	Key         string `mapstructure:"key"`
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Downloads   int64  `mapstructure:"downloads"`
	Category    string `mapstructure:"category"`
	Current     struct {
		Version string `mapstructure:"version"`
		TYPO3   string `mapstructure:"typo3Dependency"`
		PHP     string `mapstructure:"phpDependency"`
	} `mapstructure:"currentVersion"`
	Author struct {
		Name    string `mapstructure:"name"`
		Company string `mapstructure:"company"`
	} `mapstructure:"author"`
	DocumentationLink string `mapstructure:"documentationLink"`
	RepositoryURL     string `mapstructure:"repositoryUrl"`
}

func (e terExtension) usable() bool {
	return strings.TrimSpace(e.Key) != "" || strings.TrimSpace(e.Title) != ""
}

// ExtensionSearch serves search_typo3_extensions.
type ExtensionSearch struct {
	deps Deps
}

func (h *ExtensionSearch) Handle(ctx context.Context, args domain.Args) (domain.Document, error) {
	query := args.String("query")
	typo3Version := orDefault(args.String("typo3_version"), "12")
	limit := args.Int("limit")
	if limit <= 0 {
		limit = DefaultExtensionHits
	}

	target := h.deps.Endpoints.TERAPIURL + "/extension/search/?" + url.Values{
		"q":            {query},
		"typo3Version": {typo3Version},
		"limit":        {strconv.Itoa(limit)},
	}.Encode()

	payload, err := h.deps.Fetcher.FetchJSON(ctx, target)
	if err != nil {
		h.deps.fallback(ctx, OpSearchExtensions, err.Error())
		return h.curated(query, typo3Version, limit), nil
	}
	var resp extensionSearchResponse
	if err := remote.Decode(payload, &resp); err != nil {
		h.deps.fallback(ctx, OpSearchExtensions, err.Error())
		return h.curated(query, typo3Version, limit), nil
	}
	var found []terExtension
	for _, ext := range remote.DecodeEach[terExtension](resp.Extensions) {
		if ext.usable() {
			found = append(found, ext)
		}
	}
	if len(found) == 0 {
		h.deps.fallback(ctx, OpSearchExtensions, "no results")
		return h.curated(query, typo3Version, limit), nil
	}

	doc := h.frame(query, typo3Version)
	doc.Source = domain.SourceRemote
	doc.Meta = append(doc.Meta, domain.Field{Label: "Results", Value: fmt.Sprintf("%d found", len(found))})
	doc.ListHeading = "Extensions"
	for _, ext := range render.Clip(found, limit) {
		key := orDefault(ext.Key, "unknown")
		doc.Sections = append(doc.Sections, domain.Section{
			Heading: fmt.Sprintf("%s (%s)", orDefault(ext.Title, key), key),
			Fields: []domain.Field{
				{Label: "Version", Value: orDefault(ext.Current.Version, "unknown")},
				{Label: "Downloads", Value: humanize.Comma(ext.Downloads)},
				{Label: "Author", Value: orDefault(ext.Author.Name, "Unknown")},
				{Label: "Install", Value: "`composer require typo3-ter/" + strings.ReplaceAll(key, "_", "-") + "`"},
				{Label: "TER", Value: h.terPage(key)},
			},
			Text: render.Truncate(orDefault(strings.TrimSpace(ext.Description), "No description"), MaxDescriptionChars),
		})
	}
	return doc, nil
}

// curated answers from the curated extension table. It never fails.
func (h *ExtensionSearch) curated(query, typo3Version string, limit int) domain.Document {
	doc := h.frame(query, typo3Version)
	doc.ListHeading = "Popular Extensions"

	matches := render.Clip(h.deps.Content.SearchExtensions(query), limit)
	if len(matches) == 0 {
		doc.Source = domain.SourceStatic
		doc.Notice = fmt.Sprintf("No curated extension matches %q. Search the TER directly using the link below.", query)
		return doc
	}

	doc.Source = domain.SourceCurated
	for _, ext := range matches {
		doc.Sections = append(doc.Sections, domain.Section{
			Heading: fmt.Sprintf("%s (%s)", ext.Title, ext.Key),
			Fields: []domain.Field{
				packageField(ext.Ref),
				{Label: "TER", Value: h.terPage(ext.Key)},
			},
			Text: render.Truncate(orDefault(ext.Description, "No description"), MaxDescriptionChars),
		})
	}
	return doc
}

func (h *ExtensionSearch) frame(query, typo3Version string) domain.Document {
	return domain.Document{
		Title: "TYPO3 Extension Search: " + query,
		Meta:  []domain.Field{{Label: "TYPO3 Version", Value: typo3Version}},
		Resources: []domain.Link{{
			Label: "Search TER",
			URL:   h.deps.Endpoints.TERSiteURL + "/?" + url.Values{"search": {query}}.Encode(),
		}},
	}
}

func (h *ExtensionSearch) terPage(key string) string {
	return terPage(h.deps.Endpoints, key)
}

func terPage(ep config.Endpoints, key string) string {
	return ep.TERSiteURL + "/extension/" + url.PathEscape(key)
}

// packageField renders the installation hint of a curated extension.
// Refs without a vendor prefix (Built-in, "-") are shown as they are.
func packageField(ref string) domain.Field {
	if strings.Contains(ref, "/") {
		return domain.Field{Label: "Composer", Value: "`composer require " + ref + "`"}
	}
	return domain.Field{Label: "Package", Value: orDefault(strings.Trim(ref, "- "), "not available")}
}
