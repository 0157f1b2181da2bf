package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
)

// TemplateKind distinguishes designer-authored templates from tool output.
type TemplateKind string

const (
	TemplateKindDesign TemplateKind = "design"
	TemplateKindTool   TemplateKind = "tool"
)

// Template is a stored SVG template. Fields is recomputed from the SVG text
// on every save; list queries leave it nil.
type Template struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Kind      TemplateKind  `json:"kind"`
	Fields    schema.Schema `json:"fields,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// SaveTemplate stores a new template. The field schema is parsed from the
// supplied SVG text, never accepted from the caller.
func (s *Store) SaveTemplate(ctx context.Context, name string, kind TemplateKind, svgText string) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, errors.New("store: template name is required")
	}
	if strings.TrimSpace(svgText) == "" {
		return Template{}, errors.New("store: template svg is required")
	}
	kind, err := normalizeKind(kind)
	if err != nil {
		return Template{}, err
	}

	parsed, err := s.parseSchema(ctx, name, svgText)
	if err != nil {
		return Template{}, err
	}
	fieldsJSON, err := marshalFields(parsed)
	if err != nil {
		return Template{}, err
	}
	blob, err := compressSVG(svgText)
	if err != nil {
		return Template{}, err
	}

	tpl := Template{
		ID:        s.newID(),
		Name:      name,
		Kind:      kind,
		Fields:    parsed,
		CreatedAt: s.now(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates(id, name, kind, svg, fields, created_at) VALUES(?,?,?,?,?,?)`,
		tpl.ID, tpl.Name, string(tpl.Kind), blob, fieldsJSON, tpl.CreatedAt)
	if err != nil {
		return Template{}, fmt.Errorf("store: save template: %w", err)
	}
	return tpl, nil
}

// UpdateTemplateSVG replaces a template's SVG text and recomputes its field
// schema from the new document.
func (s *Store) UpdateTemplateSVG(ctx context.Context, id, svgText string) (Template, error) {
	if strings.TrimSpace(svgText) == "" {
		return Template{}, errors.New("store: template svg is required")
	}

	tpl, err := s.Template(ctx, id)
	if err != nil {
		return Template{}, err
	}

	parsed, err := s.parseSchema(ctx, tpl.Name, svgText)
	if err != nil {
		return Template{}, err
	}
	fieldsJSON, err := marshalFields(parsed)
	if err != nil {
		return Template{}, err
	}
	blob, err := compressSVG(svgText)
	if err != nil {
		return Template{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE templates SET svg=?, fields=? WHERE id=?`,
		blob, fieldsJSON, id)
	if err != nil {
		return Template{}, fmt.Errorf("store: update template: %w", err)
	}

	tpl.Fields = parsed
	return tpl, nil
}

// Template fetches one template with its field schema.
func (s *Store) Template(ctx context.Context, id string) (Template, error) {
	var (
		tpl        Template
		kind       string
		fieldsJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind, fields, created_at FROM templates WHERE id=?`, id).
		Scan(&tpl.ID, &tpl.Name, &kind, &fieldsJSON, &tpl.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, fmt.Errorf("store: template %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Template{}, fmt.Errorf("store: load template: %w", err)
	}

	tpl.Kind = TemplateKind(kind)
	tpl.Fields, err = unmarshalFields(fieldsJSON)
	if err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// TemplateSVG returns the stored SVG text exactly as saved.
func (s *Store) TemplateSVG(ctx context.Context, id string) (string, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT svg FROM templates WHERE id=?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("store: template %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("store: load template svg: %w", err)
	}
	return decompressSVG(blob)
}

// ListTemplates returns template metadata ordered newest first. Field
// schemas are omitted from listings.
func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, created_at FROM templates ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var (
			tpl  Template
			kind string
		)
		if err := rows.Scan(&tpl.ID, &tpl.Name, &kind, &tpl.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: list templates: %w", err)
		}
		tpl.Kind = TemplateKind(kind)
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list templates: %w", err)
	}
	return out, nil
}

func (s *Store) parseSchema(ctx context.Context, name, svgText string) (schema.Schema, error) {
	doc, err := svg.DocumentFromString(name, svgText)
	if err != nil {
		return nil, fmt.Errorf("store: build document: %w", err)
	}
	parsed, err := s.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store: parse fields: %w", err)
	}
	return parsed, nil
}

func normalizeKind(kind TemplateKind) (TemplateKind, error) {
	switch kind {
	case "":
		return TemplateKindDesign, nil
	case TemplateKindDesign, TemplateKindTool:
		return kind, nil
	default:
		return "", fmt.Errorf("store: unknown template kind %q", kind)
	}
}

func marshalFields(s schema.Schema) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("store: encode fields: %w", err)
	}
	return string(data), nil
}

func unmarshalFields(data string) (schema.Schema, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}
	var s schema.Schema
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("store: decode fields: %w", err)
	}
	return s, nil
}
