package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

const overviewTopic = "all"

// Guidelines serves get_typo3_coding_guidelines from curated data only.
type Guidelines struct {
	deps Deps
}

func (h *Guidelines) Handle(_ context.Context, args domain.Args) (domain.Document, error) {
	topic := orDefault(strings.TrimSpace(args.String("topic")), "php")

	if g, ok := h.deps.Content.Guideline(topic); ok {
		return domain.Document{
			Title:     g.Title,
			Body:      g.Body,
			Resources: []domain.Link{{Label: "Official Documentation", URL: g.DocsURL}},
			Source:    domain.SourceCurated,
		}, nil
	}

	doc := domain.Document{
		Title:  "TYPO3 Coding Guidelines: " + topic,
		Notice: fmt.Sprintf("No dedicated guideline is curated for %q. Curated topics: %s.", topic, strings.Join(h.deps.Content.GuidelineTopics(), ", ")),
		Source: domain.SourceStatic,
	}
	docsURL := h.deps.Endpoints.DocsBaseURL + "/m/typo3/reference-coreapi/main/en-us/CodingGuidelines/"
	if overview, ok := h.deps.Content.Guideline(overviewTopic); ok {
		doc.Body = overview.Body
		if overview.DocsURL != "" {
			docsURL = overview.DocsURL
		}
	}
	doc.Resources = []domain.Link{{Label: "Official Documentation", URL: docsURL}}
	return doc, nil
}
