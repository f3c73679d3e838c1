package domain

// ResultKind discriminates the two shapes of a Result.
type ResultKind string

const (
	ResultDocument ResultKind = "document"
	ResultError    ResultKind = "error"
)

// Result is the outcome of one invocation.
// The dispatcher only ever returns Results, so callers never see a raw error;
// Text is non-empty for both kinds.
type Result struct {
	Operation string     `json:"operation"`
	Kind      ResultKind `json:"kind"`
	Text      string     `json:"text"`
	Source    Source     `json:"source,omitempty"`
}

// IsError reports whether the result is an error document.
func (r Result) IsError() bool {
	return r.Kind == ResultError
}
