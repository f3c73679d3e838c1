package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/typo3docs/internal/content"
	"github.com/aretw0/typo3docs/internal/handlers"
)

// Report collects the findings of a content check.
// Problems break lookups; Warnings only degrade them.
type Report struct {
	Problems []string
	Warnings []string
}

// Err summarizes the problems, or returns nil when there are none.
func (r Report) Err() error {
	if len(r.Problems) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Problems), strings.Join(r.Problems, "\n- "))
}

func (r *Report) problem(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateContent checks curated data against the operation catalog:
// entries the handlers cannot render are problems, and enum values with no
// curated answer are warnings.
func ValidateContent(cat *content.Catalog) Report {
	var r Report

	if cat.DocsBaseURL == "" {
		r.problem("docs_base_url is empty")
	}
	for _, t := range cat.DocsTopics {
		if t.Title == "" || t.Ref == "" {
			r.problem("docs topic '%s' needs a title and a ref", t.Key)
		}
	}
	if len(cat.DocsGeneric) == 0 {
		r.warn("docs_generic is empty: unmatched searches will list no resources")
	}
	for _, l := range cat.DocsGeneric {
		if l.Label == "" || l.URL == "" {
			r.problem("docs_generic link '%s' needs a label and a url", l.Label)
		}
	}

	for _, e := range cat.Extensions {
		if e.Title == "" {
			r.problem("extension '%s' has no title", e.Key)
		}
		if e.Ref == "" {
			r.warn("extension '%s' has no package reference", e.Key)
		}
	}

	groupTypes := slices.DeleteFunc(slices.Clone(handlers.ChangeTypes), func(t string) bool { return t == "All" })
	for _, cl := range cat.Changelogs {
		if _, err := strconv.Atoi(cl.Major); err != nil {
			r.problem("changelog major '%s' is not a number", cl.Major)
		}
		for _, g := range cl.Types {
			if !slices.ContainsFunc(groupTypes, func(t string) bool { return strings.EqualFold(t, g.Type) }) {
				r.problem("changelog %s: type '%s' is not one of %v", cl.Major, g.Type, groupTypes)
			}
			if len(g.Entries) == 0 {
				r.warn("changelog %s: type '%s' has no entries", cl.Major, g.Type)
			}
		}
	}

	for _, ref := range cat.References {
		if strings.TrimSpace(ref.Body) == "" {
			r.problem("api reference '%s' has no body", ref.Class)
		}
		if ref.DocsURL == "" {
			r.warn("api reference '%s' has no documentation link", ref.Class)
		}
	}

	for _, g := range cat.Guidelines {
		if !slices.Contains(handlers.GuidelineTopics, g.Topic) {
			r.problem("guideline topic '%s' is unreachable: accepted topics are %v", g.Topic, handlers.GuidelineTopics)
		}
	}
	for _, topic := range handlers.GuidelineTopics {
		if _, ok := cat.Guideline(topic); !ok {
			r.warn("guideline topic '%s' has no curated entry", topic)
		}
	}

	return r
}
