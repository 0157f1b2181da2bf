// Package fieldmeta loads presentation overlays for parsed schemas. Overlay
// documents are YAML or JSON files keyed by template name; a decorator
// copies per-field labels, placeholders, help text, and widget hints onto
// descriptors without touching grammar-derived identity or kinds.
package fieldmeta

// Meta keys the decorator writes into descriptor metadata. Renderers read
// them back through schema.FieldDescriptor.Meta.
const (
	MetaPlaceholder = "placeholder"
	MetaHelp        = "help"
	MetaWidget      = "widget"
)

// Store keeps parsed overlay documents. It is safe for concurrent readers
// when treated as immutable after construction.
type Store struct {
	templates map[string]Template
}

// Template collects the overlays declared for one template name.
type Template struct {
	Name   string
	Source string
	Fields map[string]FieldMeta
}

// FieldMeta overrides how one field presents. Empty values leave the parsed
// descriptor untouched.
type FieldMeta struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Widget      string `json:"widget,omitempty" yaml:"widget,omitempty"`
	// Extra carries renderer-specific hints copied into descriptor metadata
	// as-is.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Template returns the overlay for the supplied template name.
func (s *Store) Template(name string) (Template, bool) {
	if s == nil {
		return Template{}, false
	}
	tpl, ok := s.templates[name]
	return tpl, ok
}

// Empty reports whether the store holds any templates.
func (s *Store) Empty() bool {
	return s == nil || len(s.templates) == 0
}
