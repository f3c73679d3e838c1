package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/typo3docs/internal/render"
	"github.com/aretw0/typo3docs/pkg/adapters/remote"
	"github.com/aretw0/typo3docs/pkg/domain"
)

type docsSearchResponse struct {
	Results []any `mapstructure:"results"`
}

type docsHit struct {
	Title       string `mapstructure:"title"`
	URL         string `mapstructure:"url"`
	Snippet     string `mapstructure:"snippet"`
	Description string `mapstructure:"description"`
}

// excerpt prefers the search snippet and falls back to the page description.
func (h docsHit) excerpt() string {
	if s := strings.TrimSpace(h.Snippet); s != "" {
		return s
	}
	return strings.TrimSpace(h.Description)
}

// DocsSearch serves search_typo3_docs.
type DocsSearch struct {
	deps Deps
}

func (h *DocsSearch) Handle(ctx context.Context, args domain.Args) (domain.Document, error) {
	query := args.String("query")
	version := orDefault(args.String("version"), "main")

	target := h.deps.Endpoints.DocsSearchURL + "?" + url.Values{"q": {query}}.Encode()
	payload, err := h.deps.Fetcher.FetchJSON(ctx, target)
	if err != nil {
		h.deps.fallback(ctx, OpSearchDocs, err.Error())
		return h.curated(query, version), nil
	}

	var resp docsSearchResponse
	if err := remote.Decode(payload, &resp); err != nil {
		h.deps.fallback(ctx, OpSearchDocs, err.Error())
		return h.curated(query, version), nil
	}

	var hits []docsHit
	for _, hit := range remote.DecodeEach[docsHit](resp.Results) {
		if strings.TrimSpace(hit.Title) != "" || strings.TrimSpace(hit.URL) != "" {
			hits = append(hits, hit)
		}
	}
	if len(hits) == 0 {
		h.deps.fallback(ctx, OpSearchDocs, "no results")
		return h.curated(query, version), nil
	}

	doc := h.frame(query, version)
	doc.Source = domain.SourceRemote
	doc.ListHeading = "Results"
	for i, hit := range render.Clip(hits, MaxDocResults) {
		doc.Sections = append(doc.Sections, domain.Section{
			Heading: fmt.Sprintf("%d. %s", i+1, orDefault(hit.Title, "No title")),
			Fields:  []domain.Field{{Label: "URL", Value: h.absolute(hit.URL)}},
			Text:    render.Truncate(hit.excerpt(), MaxDescriptionChars),
		})
	}
	return doc, nil
}

// curated answers from the docs topic table. It never fails.
func (h *DocsSearch) curated(query, version string) domain.Document {
	doc := h.frame(query, version)
	doc.ListHeading = "Relevant Documentation"

	seen := map[string]bool{}
	for _, topic := range h.deps.Content.SearchDocs(query) {
		link := h.absolute(topic.Ref)
		if seen[link] {
			continue
		}
		seen[link] = true
		doc.Sections = append(doc.Sections, domain.Section{
			Heading: topic.Title,
			Fields:  []domain.Field{{Label: "URL", Value: link}},
		})
		if len(doc.Sections) == MaxDocResults {
			break
		}
	}
	if len(doc.Sections) > 0 {
		doc.Source = domain.SourceCurated
		return doc
	}

	doc.Source = domain.SourceStatic
	doc.Notice = "No exact matches found. Try these resources:"
	generic := make([]domain.Link, 0, len(h.deps.Content.DocsGeneric)+len(doc.Resources))
	for _, l := range h.deps.Content.DocsGeneric {
		generic = append(generic, domain.Link{
			Label: l.Label,
			URL:   strings.ReplaceAll(l.URL, "{version}", version),
		})
	}
	doc.Resources = append(generic, doc.Resources...)
	return doc
}

// frame is the part shared by remote and curated answers.
func (h *DocsSearch) frame(query, version string) domain.Document {
	return domain.Document{
		Title: "TYPO3 Documentation Search: " + query,
		Meta:  []domain.Field{{Label: "Version", Value: version}},
		Resources: []domain.Link{{
			Label: "Search Documentation",
			URL:   h.deps.Endpoints.DocsBaseURL + "/search/?" + url.Values{"q": {query}}.Encode(),
		}},
	}
}

func (h *DocsSearch) absolute(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base := h.deps.Content.DocsBaseURL
	if base == "" {
		base = h.deps.Endpoints.DocsBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
