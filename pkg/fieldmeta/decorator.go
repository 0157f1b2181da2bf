package fieldmeta

import "github.com/goliatone/go-svgform/pkg/schema"

// Decorator applies overlay metadata to parsed schemas. When the store is
// nil or empty the decorator is a no-op.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate returns a copy of the schema with the template's overlays
// applied. The input is never mutated. Overlay entries for ids the schema
// does not contain are ignored so overlay files can evolve ahead of their
// templates.
func (d *Decorator) Decorate(templateName string, s schema.Schema) schema.Schema {
	if d == nil || d.store.Empty() {
		return s
	}
	tpl, ok := d.store.Template(templateName)
	if !ok || len(tpl.Fields) == 0 {
		return s
	}

	out := s.Clone()
	for i := range out {
		meta, ok := tpl.Fields[out[i].ID]
		if !ok {
			continue
		}
		applyMeta(&out[i], meta)
	}
	return out
}

func applyMeta(field *schema.FieldDescriptor, meta FieldMeta) {
	if meta.Label != "" {
		field.Name = meta.Label
	}

	set := func(key, value string) {
		if value == "" {
			return
		}
		if field.Meta == nil {
			field.Meta = make(map[string]string)
		}
		field.Meta[key] = value
	}
	set(MetaPlaceholder, meta.Placeholder)
	set(MetaHelp, meta.HelpText)
	set(MetaWidget, meta.Widget)
	for key, value := range meta.Extra {
		set(key, value)
	}
}
