// Package content holds the curated TYPO3 reference data used by the lookup
// handlers and by every fallback stage.
//
// The data lives in curated.yaml, embedded at build time. An alternative file
// with the same layout can be loaded with Load. Once built, a Catalog is
// read-only and safe for concurrent use.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed curated.yaml
var embedded []byte

// Link is a labelled URL. URL may contain a {version} placeholder.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// ChangeGroup lists the changelog entries of one type (Breaking, Feature, ...).
type ChangeGroup struct {
	Type    string   `yaml:"type"`
	Entries []string `yaml:"entries"`
}

// Changelog is the curated change list of one major version.
type Changelog struct {
	Major string        `yaml:"major"`
	Types []ChangeGroup `yaml:"types"`
}

// Group returns the entries of the given type, matched case-insensitively.
func (c Changelog) Group(changeType string) (ChangeGroup, bool) {
	for _, g := range c.Types {
		if strings.EqualFold(g.Type, changeType) {
			return g, true
		}
	}
	return ChangeGroup{}, false
}

// Reference is the curated API reference of one class.
type Reference struct {
	Class   string `yaml:"class"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	DocsURL string `yaml:"docs_url"`
	Body    string `yaml:"body"`
}

// Guideline is the curated coding guideline of one topic.
type Guideline struct {
	Topic   string `yaml:"topic"`
	Title   string `yaml:"title"`
	DocsURL string `yaml:"docs_url"`
	Body    string `yaml:"body"`
}

// Catalog is the parsed curated data plus its derived indexes.
type Catalog struct {
	DocsBaseURL string                `yaml:"docs_base_url"`
	DocsTopics  []domain.CuratedEntry `yaml:"docs_topics"`
	DocsGeneric []Link                `yaml:"docs_generic"`
	Extensions  []domain.CuratedEntry `yaml:"extensions"`
	Changelogs  []Changelog           `yaml:"changelog"`
	References  []Reference           `yaml:"api_references"`
	Guidelines  []Guideline           `yaml:"guidelines"`

	docs       *Index
	extensions *Index
}

// Default parses the embedded curated.yaml.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads and parses a curated data file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes curated data and builds the lookup indexes.
// Exact-lookup tables must not contain duplicate keys.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.docs = NewIndex(c.DocsTopics, WithKeysInQuery())
	c.extensions = NewIndex(c.Extensions)
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := map[string]string{}
	check := func(table, key string) error {
		if key == "" {
			return fmt.Errorf("content: %s entry without key", table)
		}
		id := table + "/" + key
		if _, dup := seen[id]; dup {
			return fmt.Errorf("content: duplicate %s key %q", table, key)
		}
		seen[id] = key
		return nil
	}
	for _, e := range c.Extensions {
		if err := check("extensions", e.Key); err != nil {
			return err
		}
	}
	for _, cl := range c.Changelogs {
		if err := check("changelog", cl.Major); err != nil {
			return err
		}
	}
	for _, r := range c.References {
		if err := check("api_references", r.Class); err != nil {
			return err
		}
	}
	for _, g := range c.Guidelines {
		if err := check("guidelines", g.Topic); err != nil {
			return err
		}
	}
	for _, d := range c.DocsTopics {
		if d.Key == "" {
			return fmt.Errorf("content: docs_topics entry without key")
		}
	}
	return nil
}

// SearchDocs returns the docs topics matching query, in declaration order.
func (c *Catalog) SearchDocs(query string) []domain.CuratedEntry {
	return c.docs.Search(query)
}

// SearchExtensions returns the curated extensions matching query, in declaration order.
func (c *Catalog) SearchExtensions(query string) []domain.CuratedEntry {
	return c.extensions.Search(query)
}

// Extension looks up a curated extension by exact key.
func (c *Catalog) Extension(key string) (domain.CuratedEntry, bool) {
	for _, e := range c.Extensions {
		if e.Key == key {
			return e, true
		}
	}
	return domain.CuratedEntry{}, false
}

// Changelog looks up the curated changelog of a major version.
func (c *Catalog) Changelog(major string) (Changelog, bool) {
	for _, cl := range c.Changelogs {
		if cl.Major == major {
			return cl, true
		}
	}
	return Changelog{}, false
}

// Majors lists the major versions with a curated changelog.
func (c *Catalog) Majors() []string {
	out := make([]string, 0, len(c.Changelogs))
	for _, cl := range c.Changelogs {
		out = append(out, cl.Major)
	}
	return out
}

// Reference looks up an API reference by exact class name.
func (c *Catalog) Reference(class string) (Reference, bool) {
	for _, r := range c.References {
		if r.Class == class {
			return r, true
		}
	}
	return Reference{}, false
}

// Guideline looks up a coding guideline by exact topic.
func (c *Catalog) Guideline(topic string) (Guideline, bool) {
	for _, g := range c.Guidelines {
		if g.Topic == topic {
			return g, true
		}
	}
	return Guideline{}, false
}

// GuidelineTopics lists the topics with curated guidelines.
func (c *Catalog) GuidelineTopics() []string {
	out := make([]string, 0, len(c.Guidelines))
	for _, g := range c.Guidelines {
		out = append(out, g.Topic)
	}
	return out
}
