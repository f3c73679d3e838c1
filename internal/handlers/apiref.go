package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// APIReference serves get_typo3_api_reference from curated data only.
type APIReference struct {
	deps Deps
}

func (h *APIReference) Handle(_ context.Context, args domain.Args) (domain.Document, error) {
	class := strings.TrimSpace(args.String("class_name"))
	method := strings.TrimSpace(args.String("method_name"))

	ref, ok := h.deps.Content.Reference(class)
	if !ok {
		return h.catalog(class), nil
	}

	doc := domain.Document{
		Title:     ref.Title,
		Meta:      []domain.Field{{Label: "Class", Value: "`" + ref.Class + "`"}},
		Body:      ref.Body,
		Resources: []domain.Link{{Label: "Documentation", URL: ref.DocsURL}},
		Source:    domain.SourceCurated,
	}
	if method == "" {
		return doc, nil
	}

	doc.Meta = append(doc.Meta, domain.Field{Label: "Method", Value: "`" + method + "`"})
	if section, found := MethodSection(ref.Body, method); found {
		doc.Body = "## Method\n\n" + section
	} else {
		doc.Notice = fmt.Sprintf("Method `%s` is not documented for this class; showing the full reference.", method)
	}
	return doc, nil
}

// catalog lists the known classes for an unrecognised class name.
func (h *APIReference) catalog(class string) domain.Document {
	var b strings.Builder
	b.WriteString("## Common TYPO3 Core Classes\n\n")
	b.WriteString("Use `" + OpAPIReference + "` with one of these class names:\n\n")
	for _, ref := range h.deps.Content.References {
		b.WriteString("- `" + ref.Class + "` - " + ref.Summary + "\n")
	}

	return domain.Document{
		Title:  "API Reference: " + orDefault(class, "(none)"),
		Notice: fmt.Sprintf("No curated API reference for `%s`.", class),
		Body:   b.String(),
		Resources: []domain.Link{{
			Label: "Core API Reference",
			URL:   h.deps.Endpoints.DocsBaseURL + "/m/typo3/reference-coreapi/main/en-us/",
		}},
		Source: domain.SourceStatic,
	}
}

// MethodSection extracts the "### method(" block from a reference body.
// The block ends at the next heading of level three or higher.
func MethodSection(body, method string) (string, bool) {
	prefix := "### " + method + "("
	lines := strings.Split(body, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "### ") {
			end = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n")), true
}
