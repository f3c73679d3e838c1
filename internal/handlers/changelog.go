package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// Changelog serves get_typo3_changelog from curated data only.
type Changelog struct {
	deps Deps
}

// MajorVersion returns the part of version before the first dot.
func MajorVersion(version string) string {
	major, _, _ := strings.Cut(strings.TrimSpace(version), ".")
	return major
}

func (h *Changelog) Handle(_ context.Context, args domain.Args) (domain.Document, error) {
	version := strings.TrimSpace(args.String("version"))
	changeType := orDefault(args.String("type"), "All")
	major := MajorVersion(version)

	base := fmt.Sprintf("%s/%s.4/en-us/Changelog", h.deps.Endpoints.ChangelogBaseURL, major)
	doc := domain.Document{
		Title: "TYPO3 " + version + " Changelog",
		Meta: []domain.Field{
			{Label: "Type Filter", Value: changeType},
			{Label: "Changelog URL", Value: base + "/Index.html"},
		},
		Resources: []domain.Link{
			{Label: "Full Changelog", URL: base + "/Index.html"},
			{Label: "Breaking Changes", URL: base + "/" + major + ".0/Index.html#breaking-changes"},
			{Label: "Upgrade Guide", URL: h.deps.Endpoints.DocsBaseURL + "/m/typo3/guide-installation/main/en-us/Upgrade/Index.html"},
		},
		Source: domain.SourceCurated,
	}

	cl, ok := h.deps.Content.Changelog(major)
	if !ok {
		doc.Source = domain.SourceStatic
		doc.Notice = fmt.Sprintf("No curated changelog is available for TYPO3 %s. Curated versions: %s. See the changelog URL above for the full list.",
			orDefault(version, "(none)"), strings.Join(h.deps.Content.Majors(), ", "))
		return doc, nil
	}

	doc.ListHeading = "Version-Specific Changes"
	if strings.EqualFold(changeType, "All") {
		for _, g := range cl.Types {
			doc.Sections = append(doc.Sections, groupSection(g.Type, g.Entries))
		}
		return doc, nil
	}

	g, ok := cl.Group(changeType)
	if !ok || len(g.Entries) == 0 {
		doc.Notice = fmt.Sprintf("No %s entries are curated for TYPO3 %s.", changeType, major)
		return doc, nil
	}
	doc.Sections = append(doc.Sections, groupSection(g.Type, g.Entries))
	return doc, nil
}

func groupSection(changeType string, entries []string) domain.Section {
	return domain.Section{
		Heading: changeType + " Changes",
		Bullets: append([]string(nil), entries...),
	}
}
