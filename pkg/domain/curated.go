package domain

// CuratedEntry is a hand-maintained search hit used by fallback stages.
// Ref is the composer package for extensions and the documentation path for docs topics.
type CuratedEntry struct {
	Key         string   `json:"key" yaml:"key"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Ref         string   `json:"ref,omitempty" yaml:"ref,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}
