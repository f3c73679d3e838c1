// Package render turns domain.Documents into the flat markdown text returned to callers.
//
// Render is total: every Document, including the zero value, produces non-empty text.
package render

import (
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

const (
	// Rule separates item sections.
	Rule = "---"
	// ResourcesHeading opens the trailing link block.
	ResourcesHeading = "## Further Resources"

	fallbackTitle = "Document"
)

// Render formats a document.
func Render(doc domain.Document) string {
	var b strings.Builder

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = fallbackTitle
	}
	b.WriteString("# " + title + "\n\n")

	if len(doc.Meta) > 0 {
		for _, f := range doc.Meta {
			writeField(&b, f)
		}
		b.WriteString("\n")
	}

	if doc.ListHeading != "" {
		b.WriteString("## " + doc.ListHeading + "\n\n")
	}

	for _, s := range doc.Sections {
		writeSection(&b, s)
	}

	if len(doc.Sections) == 0 && doc.Notice != "" {
		b.WriteString(strings.TrimRight(doc.Notice, "\n") + "\n\n")
	}

	if body := strings.Trim(doc.Body, "\n"); body != "" {
		b.WriteString(body + "\n\n")
	}

	if len(doc.Resources) > 0 {
		b.WriteString(ResourcesHeading + "\n\n")
		for _, l := range doc.Resources {
			b.WriteString("- **" + l.Label + ":** " + l.URL + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Fold collapses every run of whitespace, line breaks included, into one space.
func Fold(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ErrorLine formats the single-line error document returned by the dispatcher.
// Line breaks in msg are folded so the result stays on one line.
func ErrorLine(msg string) string {
	msg = Fold(msg)
	if msg == "" {
		msg = "unknown failure"
	}
	return "Error: " + msg
}

func writeField(b *strings.Builder, f domain.Field) {
	b.WriteString("**" + f.Label + ":** " + f.Value + "\n")
}

func writeSection(b *strings.Builder, s domain.Section) {
	if s.Heading != "" {
		b.WriteString("### " + s.Heading + "\n\n")
	}
	if len(s.Fields) > 0 {
		for _, f := range s.Fields {
			writeField(b, f)
		}
		b.WriteString("\n")
	}
	if text := strings.TrimSpace(s.Text); text != "" {
		b.WriteString(text + "\n\n")
	}
	if len(s.Bullets) > 0 {
		for _, item := range s.Bullets {
			b.WriteString("- " + item + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(Rule + "\n\n")
}
