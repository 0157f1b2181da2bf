// Package schema defines the field model parsed out of an SVG template: an
// ordered collection of field descriptors, the select options attached to
// them, and the string-or-boolean values they carry.
package schema

// FieldKind is the enum of field kinds the id grammar understands. Unknown
// base ids fall back to the base id itself, so renderers must tolerate kinds
// outside this list.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindTextArea  FieldKind = "textarea"
	FieldKindCheckbox  FieldKind = "checkbox"
	FieldKindDate      FieldKind = "date"
	FieldKindUpload    FieldKind = "upload"
	FieldKindNumber    FieldKind = "number"
	FieldKindEmail     FieldKind = "email"
	FieldKindTel       FieldKind = "tel"
	FieldKindGenerated FieldKind = "gen"
	FieldKindPassword  FieldKind = "password"
	FieldKindRange     FieldKind = "range"
	FieldKindColor     FieldKind = "color"
	FieldKindFile      FieldKind = "file"
	FieldKindStatus    FieldKind = "status"
	FieldKindSign      FieldKind = "sign"
	FieldKindSelect    FieldKind = "select"
	FieldKindHide      FieldKind = "hide"
)

// SelectOption is one choice of a select field. Value and SVGElementID keep
// the exact id attribute of the option element; DisplayText carries the
// element's text content when present, the derived label otherwise.
type SelectOption struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	SVGElementID string `json:"svgElementId"`
	DisplayText  string `json:"displayText"`
}

// FieldDescriptor models a single logical field extracted from element ids.
// Struct tags match the JSON shape stored alongside templates so schemas can
// be persisted and reloaded without translation.
type FieldDescriptor struct {
	// ID is the base id token, unique within a schema.
	ID string `json:"id"`
	// Name is the human-facing display name derived from the base id.
	Name string `json:"name"`
	// Kind resolves from the last recognised type token, falling back to the
	// base id itself.
	Kind FieldKind `json:"type"`
	// SVGElementID is the full original id attribute of the element that
	// produced the field, used later to locate it for mutation.
	SVGElementID string `json:"svgElementId"`
	DefaultValue Value  `json:"defaultValue"`
	CurrentValue Value  `json:"currentValue"`
	// Options is populated for select fields only, in encounter order.
	Options []SelectOption `json:"options,omitempty"`
	// Max is the parsed max_<n> bound; nil when the token was absent or its
	// payload did not parse as an integer.
	Max *int `json:"max,omitempty"`
	// DependsOn holds the raw extraction expression from a depends_ token.
	DependsOn string `json:"dependsOn,omitempty"`
	// Link is the URL captured from a link_ token.
	Link         string `json:"link,omitempty"`
	TrackingID   bool   `json:"isTrackingId"`
	TrackingRole string `json:"trackingRole,omitempty"`
	Editable     bool   `json:"editable"`
	// Meta carries presentation overrides (placeholder, help text) applied by
	// decorators after parsing. Never derived from the grammar.
	Meta map[string]string `json:"meta,omitempty"`
}

// Clone returns a deep copy of the descriptor.
func (f FieldDescriptor) Clone() FieldDescriptor {
	cloned := f
	if len(f.Options) > 0 {
		cloned.Options = append([]SelectOption(nil), f.Options...)
	}
	if f.Max != nil {
		max := *f.Max
		cloned.Max = &max
	}
	if len(f.Meta) > 0 {
		cloned.Meta = make(map[string]string, len(f.Meta))
		for k, v := range f.Meta {
			cloned.Meta[k] = v
		}
	}
	return cloned
}

// HasOptions reports whether the field carries select options.
func (f FieldDescriptor) HasOptions() bool {
	return len(f.Options) > 0
}

// Schema is the ordered field list parsed from one SVG document. Order follows
// first encounter in document order; select fields sit at their first option's
// position. It marshals as a bare JSON array.
type Schema []FieldDescriptor

// ByID returns a pointer into the schema for the descriptor with the given id.
func (s Schema) ByID(id string) (*FieldDescriptor, bool) {
	for i := range s {
		if s[i].ID == id {
			return &s[i], true
		}
	}
	return nil, false
}

// Has reports whether a descriptor with the given id exists.
func (s Schema) Has(id string) bool {
	_, ok := s.ByID(id)
	return ok
}

// IDs returns the field ids in schema order.
func (s Schema) IDs() []string {
	out := make([]string, 0, len(s))
	for _, field := range s {
		out = append(out, field.ID)
	}
	return out
}

// Clone returns a deep copy of the schema so engines can refresh values
// without mutating their input.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, 0, len(s))
	for _, field := range s {
		out = append(out, field.Clone())
	}
	return out
}
