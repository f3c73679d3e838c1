package domain

// Source tells where the content of a document came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceCurated Source = "curated"
	SourceStatic  Source = "static"
)

// Field is a labelled value line, rendered as "**Label:** Value".
type Field struct {
	Label string
	Value string
}

// Link is an entry of the "further resources" block.
type Link struct {
	Label string
	URL   string
}

// Section is one item of a document's result list.
type Section struct {
	Heading string
	Fields  []Field
	Text    string
	Bullets []string
}

// Document is the structured form of a rendered document.
// Handlers build Documents; internal/render turns them into text.
type Document struct {
	Title       string
	Meta        []Field
	ListHeading string
	Sections    []Section
	// Body is preformatted markdown appended after the sections (curated references).
	Body string
	// Notice is printed in place of the list when Sections is empty.
	Notice    string
	Resources []Link
	Source    Source
}
