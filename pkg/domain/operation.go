package domain

// ParamType is the declared type of an operation argument.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
)

// Param declares one named argument of an operation.
type Param struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ParamType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Min         *int      `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Max         *int      `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// HasDefault reports whether the parameter declares a default value.
func (p Param) HasDefault() bool {
	return p.Default != nil
}

// Operation is a named query exposed at the gateway boundary.
// Operations are declared once at startup and never mutated.
//
// Remote marks operations that consult an upstream service before falling
// back to curated content. Pure lookups leave it false.
type Operation struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Params      []Param `json:"params" yaml:"params"`
	Remote      bool    `json:"remote,omitempty" yaml:"remote,omitempty"`
}

// Param looks up a declared parameter by name.
func (o Operation) Param(name string) (Param, bool) {
	for _, p := range o.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Args is the argument map of one invocation.
// Values arrive loosely typed (JSON numbers are float64); the dispatcher
// normalizes them to string and int before a handler sees them.
type Args map[string]any

// String returns the string argument, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the integer argument, or 0 when absent.
func (a Args) Int(name string) int {
	n, _ := a[name].(int)
	return n
}

// Has reports whether the argument was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// IntPtr is a small helper for declaring Min/Max bounds.
func IntPtr(v int) *int {
	return &v
}
