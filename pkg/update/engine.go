// Package update applies submitted field values to an SVG document. Values
// are seeded from the schema, overlaid with caller updates, resolved through
// a single dependency-extraction pass, and written into the document's
// elements by id.
package update

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-svgform/pkg/schema"
)

// Engine mutates SVG documents from field values. The zero value is usable;
// configure memoization through New.
type Engine struct {
	cache *Cache
}

// Option mutates an Engine during construction.
type Option func(*Engine)

// WithCache memoizes Apply results in the given cache.
func WithCache(cache *Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// New constructs an Engine.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Apply writes field values into the document and returns the serialized
// result together with a schema copy whose current values reflect what was
// written. Updates for ids outside the schema are ignored. Markup that fails
// to parse makes the whole call a no-op: the input text comes back with an
// unchanged schema and a nil error, so callers that need to distinguish
// no-op from success compare output to input.
func (e *Engine) Apply(svgText string, s schema.Schema, updates map[string]schema.Value) (string, schema.Schema, error) {
	if svgText == "" || len(s) == 0 {
		return svgText, s.Clone(), nil
	}

	var key string
	if e.cache != nil {
		key = cacheKey(svgText, updates)
		if svg, out, ok := e.cache.get(key); ok {
			return svg, out, nil
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(svgText); err != nil {
		return svgText, s.Clone(), nil
	}
	root := doc.Root()
	if root == nil {
		return svgText, s.Clone(), nil
	}

	values := seedValues(s)
	for id, value := range updates {
		if s.Has(id) {
			values[id] = value
		}
	}
	computed := resolveValues(s, values)

	index := indexElements(root)
	for _, field := range s {
		mutateField(index, field, computed[field.ID])
	}

	out := s.Clone()
	for i := range out {
		out[i].CurrentValue = computed[out[i].ID]
	}

	text, err := doc.WriteToString()
	if err != nil {
		return svgText, s.Clone(), fmt.Errorf("update: serialize document: %w", err)
	}

	if e.cache != nil {
		e.cache.put(key, text, out)
	}
	return text, out, nil
}

// seedValues builds the working value map: current value when set, default
// otherwise, empty text as the final fallback. Unset here means the zero
// value, so an unchecked boolean seeds to empty text the same way an empty
// string does.
func seedValues(s schema.Schema) map[string]schema.Value {
	values := make(map[string]schema.Value, len(s))
	for _, field := range s {
		switch {
		case !field.CurrentValue.IsZero():
			values[field.ID] = field.CurrentValue
		case !field.DefaultValue.IsZero():
			values[field.ID] = field.DefaultValue
		default:
			values[field.ID] = schema.String("")
		}
	}
	return values
}

// resolveValues runs the dependency pass. Every expression evaluates against
// the seeded map, never against other computed results, so extraction chains
// do not cascade.
func resolveValues(s schema.Schema, values map[string]schema.Value) map[string]schema.Value {
	computed := make(map[string]schema.Value, len(s))
	for _, field := range s {
		if field.DependsOn != "" {
			computed[field.ID] = resolveDependency(field.DependsOn, values)
			continue
		}
		computed[field.ID] = values[field.ID]
	}
	return computed
}

// indexElements maps ids to elements, first occurrence in document order
// winning. The root element participates like any other.
func indexElements(root *etree.Element) map[string]*etree.Element {
	index := make(map[string]*etree.Element)
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		if id := el.SelectAttrValue("id", ""); id != "" {
			if _, exists := index[id]; !exists {
				index[id] = el
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return index
}

func mutateField(index map[string]*etree.Element, field schema.FieldDescriptor, value schema.Value) {
	if field.HasOptions() {
		selected := value.String()
		for _, option := range field.Options {
			el := index[option.SVGElementID]
			if option.SVGElementID == "" || el == nil {
				continue
			}
			if option.Value == selected {
				showElement(el)
			} else {
				hideElement(el)
			}
		}
		return
	}

	el := index[field.SVGElementID]
	if field.SVGElementID == "" || el == nil {
		return
	}

	kind := strings.ToLower(string(field.Kind))
	if kind == "" {
		kind = "text"
	}
	switch kind {
	case "upload", "file", "sign":
		// Empty values keep the existing reference so a blank submission
		// never clears an image.
		if value.IsBool() {
			return
		}
		if strings.TrimSpace(value.Text()) != "" {
			el.CreateAttr("xlink:href", value.Text())
		}
	case "hide":
		if value.Truthy() {
			showElement(el)
		} else {
			hideElement(el)
		}
	default:
		setElementText(el, value.String())
	}
}

func showElement(el *etree.Element) {
	el.RemoveAttr("display")
	el.CreateAttr("opacity", "1")
	el.CreateAttr("visibility", "visible")
}

func hideElement(el *etree.Element) {
	el.CreateAttr("opacity", "0")
	el.CreateAttr("visibility", "hidden")
	el.CreateAttr("display", "none")
}

// setElementText makes the value the element's only content, dropping any
// nested markup the template carried.
func setElementText(el *etree.Element, text string) {
	for len(el.Child) > 0 {
		el.RemoveChildAt(len(el.Child) - 1)
	}
	el.SetText(text)
}
