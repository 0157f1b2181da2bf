// Package fields implements the id-grammar parser that turns SVG templates
// into ordered field schemas. Construction helpers live in the top-level
// svgform package.
package fields

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	pkgfields "github.com/goliatone/go-svgform/pkg/fields"
	"github.com/goliatone/go-svgform/pkg/schema"
	pkgsvg "github.com/goliatone/go-svgform/pkg/svg"
)

// Parser walks the document tree in document order and feeds every element
// carrying an id through the grammar.
type Parser struct {
	normalizeUnknown bool
}

// Ensure the implementation satisfies the public interface.
var _ pkgfields.Parser = (*Parser)(nil)

// New constructs a Parser from pre-resolved options.
func New(options pkgfields.ParserOptions) *Parser {
	return &Parser{normalizeUnknown: options.NormalizeUnknownKinds}
}

// Parse builds the field schema for one document. XML failures surface as
// fields.ErrMalformed; a well-formed document with no usable ids yields an
// empty schema.
func (p *Parser) Parse(ctx context.Context, doc pkgsvg.Document) (schema.Schema, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromString(doc.Text()); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgfields.ErrMalformed, err)
	}
	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: missing root element", pkgfields.ErrMalformed)
	}

	b := newBuilder(p.normalizeUnknown)
	walkElements(root, b.element)
	return b.schema(), nil
}

// walkElements visits the root's descendants in document order. The root
// element itself never defines a field.
func walkElements(el *etree.Element, visit func(*etree.Element)) {
	for _, child := range el.ChildElements() {
		visit(child)
		walkElements(child, visit)
	}
}

// builder accumulates one descriptor per base id while preserving first
// encounter order. One instance per parse call; never shared.
type builder struct {
	normalizeUnknown bool
	order            []string
	fields           map[string]*schema.FieldDescriptor
}

func newBuilder(normalizeUnknown bool) *builder {
	return &builder{
		normalizeUnknown: normalizeUnknown,
		fields:           make(map[string]*schema.FieldDescriptor),
	}
}

func (b *builder) element(el *etree.Element) {
	rawID := el.SelectAttrValue("id", "")
	if rawID == "" {
		return
	}

	id := tokenizeID(rawID)
	if sel, ok := id.selectToken(); ok {
		b.selectOption(el, id, sel)
		return
	}
	if !id.trackTokenLast() {
		return
	}
	b.simpleField(el, id)
}

func (b *builder) selectOption(el *etree.Element, id tokenizedID, sel token) {
	label := strings.ReplaceAll(sel.arg, "_", " ")
	display := strings.TrimSpace(el.Text())
	if display == "" {
		display = label
	}

	option := schema.SelectOption{
		Value:        id.raw,
		Label:        label,
		SVGElementID: id.raw,
		DisplayText:  display,
	}

	field, ok := b.fields[id.base]
	if !ok || field.Kind != schema.FieldKindSelect {
		// First option creates the field at the current position; an existing
		// non-select definition converts to a select in place.
		field = b.upsert(id.base, schema.FieldDescriptor{
			ID:           id.base,
			Name:         schema.DisplayName(id.base),
			Kind:         schema.FieldKindSelect,
			SVGElementID: id.raw,
			DefaultValue: schema.String(""),
			CurrentValue: schema.String(""),
			Editable:     id.editable(),
		})
	}

	field.Options = append(field.Options, option)
	if field.DefaultValue.IsZero() {
		field.DefaultValue = schema.String(field.Options[0].Value)
	}
	if elementVisible(el) {
		field.CurrentValue = schema.String(option.Value)
	}
	if role, ok := id.trackRole(); ok {
		field.TrackingRole = role
	}
	if id.editable() {
		field.Editable = true
	}
}

func (b *builder) simpleField(el *etree.Element, id tokenizedID) {
	kind := schema.FieldKind(id.base)
	var (
		max        *int
		dependsOn  string
		trackRole  string
		editable   bool
		isTracking bool
	)

	for _, tok := range id.tokens {
		switch tok.kind {
		case tokenMax:
			if n, err := strconv.Atoi(tok.arg); err == nil {
				max = &n
			}
		case tokenDepends:
			dependsOn = tok.arg
		case tokenTrackingID:
			isTracking = true
		case tokenTrackRole:
			trackRole = tok.arg
		case tokenEditable:
			editable = true
		case tokenHide:
			kind = schema.FieldKindHide
		case tokenType:
			kind = schema.FieldKind(tok.raw)
		}
	}
	if isTracking {
		// Tracking ids resolve to generated fields regardless of type tokens.
		kind = schema.FieldKindGenerated
	}
	if b.normalizeUnknown && !knownKind(kind) {
		kind = schema.FieldKindText
	}

	var def schema.Value
	switch kind {
	case schema.FieldKindCheckbox:
		def = schema.Bool(false)
	case schema.FieldKindHide:
		def = schema.Bool(id.hideVariant() == "hide_checked")
	default:
		def = schema.String(strings.TrimSpace(el.Text()))
	}

	b.upsert(id.base, schema.FieldDescriptor{
		ID:           id.base,
		Name:         schema.DisplayName(id.base),
		Kind:         kind,
		SVGElementID: id.raw,
		DefaultValue: def,
		CurrentValue: def,
		Max:          max,
		DependsOn:    dependsOn,
		Link:         id.link,
		TrackingID:   isTracking,
		TrackingRole: trackRole,
		Editable:     editable,
	})
}

// upsert inserts a fresh descriptor or replaces an existing definition in
// place. First encounter fixes the position either way.
func (b *builder) upsert(baseID string, field schema.FieldDescriptor) *schema.FieldDescriptor {
	if existing, ok := b.fields[baseID]; ok {
		*existing = field
		return existing
	}
	b.order = append(b.order, baseID)
	stored := field
	b.fields[baseID] = &stored
	return &stored
}

// schema emits the accumulated descriptors in first-encounter order.
func (b *builder) schema() schema.Schema {
	out := make(schema.Schema, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.fields[id])
	}
	return out
}

// elementVisible mirrors the checks used when picking the currently selected
// option: zero opacity, hidden visibility, or display none mark it hidden.
func elementVisible(el *etree.Element) bool {
	opacity := strings.TrimSpace(el.SelectAttrValue("opacity", "1"))
	if f, err := strconv.ParseFloat(opacity, 64); err == nil && f == 0 {
		return false
	}
	if el.SelectAttrValue("visibility", "visible") == "hidden" {
		return false
	}
	if el.SelectAttrValue("display", "") == "none" {
		return false
	}
	return true
}

func knownKind(kind schema.FieldKind) bool {
	if kind == schema.FieldKindSelect || kind == schema.FieldKindHide {
		return true
	}
	_, ok := typeKeywords[string(kind)]
	return ok
}
