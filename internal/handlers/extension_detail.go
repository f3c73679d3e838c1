package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/typo3docs/internal/render"
	"github.com/aretw0/typo3docs/pkg/adapters/remote"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/dustin/go-humanize"
)

// compatibilityUnknown stands in for a missing TYPO3 or PHP constraint.
const compatibilityUnknown = "Check documentation"

// ExtensionDetail serves get_extension_detail.
type ExtensionDetail struct {
	deps Deps
}

func (h *ExtensionDetail) Handle(ctx context.Context, args domain.Args) (domain.Document, error) {
	key := strings.TrimSpace(args.String("extension_key"))

	target := h.deps.Endpoints.TERAPIURL + "/extension/" + url.PathEscape(key)
	payload, err := h.deps.Fetcher.FetchJSON(ctx, target)
	if err != nil {
		h.deps.fallback(ctx, OpExtensionDetail, err.Error())
		return h.curated(key), nil
	}
	var ext terExtension
	if err := remote.Decode(payload, &ext); err != nil {
		h.deps.fallback(ctx, OpExtensionDetail, err.Error())
		return h.curated(key), nil
	}
	if !ext.usable() {
		h.deps.fallback(ctx, OpExtensionDetail, "empty extension record")
		return h.curated(key), nil
	}

	extKey := orDefault(ext.Key, key)
	doc := domain.Document{
		Title: orDefault(ext.Title, extKey),
		Meta: []domain.Field{
			{Label: "Extension Key", Value: extKey},
			{Label: "Current Version", Value: orDefault(ext.Current.Version, "unknown")},
			{Label: "Downloads", Value: humanize.Comma(ext.Downloads)},
			{Label: "Category", Value: orDefault(ext.Category, "unknown")},
		},
		Sections: []domain.Section{
			{
				Heading: "Description",
				Text:    render.Truncate(orDefault(strings.TrimSpace(ext.Description), "No description"), MaxDetailChars),
			},
			{
				Heading: "Author",
				Fields: []domain.Field{
					{Label: "Name", Value: orDefault(ext.Author.Name, "Unknown")},
					{Label: "Company", Value: orDefault(ext.Author.Company, "-")},
				},
			},
			{
				Heading: "Compatibility",
				Fields: []domain.Field{
					{Label: "TYPO3", Value: orDefault(ext.Current.TYPO3, compatibilityUnknown)},
					{Label: "PHP", Value: orDefault(ext.Current.PHP, compatibilityUnknown)},
				},
			},
			installSection("typo3-ter/" + strings.ReplaceAll(extKey, "_", "-")),
		},
		Resources: []domain.Link{{Label: "TER", URL: terPage(h.deps.Endpoints, extKey)}},
		Source:    domain.SourceRemote,
	}
	if ext.DocumentationLink != "" {
		doc.Resources = append(doc.Resources, domain.Link{Label: "Documentation", URL: ext.DocumentationLink})
	}
	if ext.RepositoryURL != "" {
		doc.Resources = append(doc.Resources, domain.Link{Label: "Repository", URL: ext.RepositoryURL})
	}
	return doc, nil
}

// curated renders a known extension from curated data, or a guidance document
// pointing at the TER page. It never fails.
func (h *ExtensionDetail) curated(key string) domain.Document {
	link := domain.Link{Label: "TER", URL: terPage(h.deps.Endpoints, key)}

	ext, ok := h.deps.Content.Extension(key)
	if !ok {
		return domain.Document{
			Title:     "Extension: " + key,
			Notice:    fmt.Sprintf("Could not fetch details for extension '%s'. Visit: %s", key, link.URL),
			Resources: []domain.Link{link},
			Source:    domain.SourceStatic,
		}
	}

	doc := domain.Document{
		Title: ext.Title,
		Meta: []domain.Field{
			{Label: "Extension Key", Value: ext.Key},
			{Label: "Note", Value: "live TER data unavailable, showing curated information"},
		},
		Sections: []domain.Section{{
			Heading: "Description",
			Text:    render.Truncate(orDefault(ext.Description, "No description"), MaxDetailChars),
		}},
		Resources: []domain.Link{link},
		Source:    domain.SourceCurated,
	}
	if strings.Contains(ext.Ref, "/") {
		doc.Sections = append(doc.Sections, installSection(ext.Ref))
	} else {
		doc.Sections = append(doc.Sections, domain.Section{
			Heading: "Installation",
			Fields:  []domain.Field{packageField(ext.Ref)},
		})
	}
	return doc
}

func installSection(pkg string) domain.Section {
	return domain.Section{
		Heading: "Installation",
		Text:    "```bash\ncomposer require " + pkg + "\n```\n\nOr install it through the Extension Manager in the TYPO3 backend.",
	}
}
