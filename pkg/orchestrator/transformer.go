package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-svgform/pkg/fieldmeta"
	"github.com/goliatone/go-svgform/pkg/schema"
)

// Transformer mutates a parsed schema before decorators run. Implementations
// can rename fields, inject metadata, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, templateName string, s *schema.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, templateName string, s *schema.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, templateName string, s *schema.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, templateName, s)
}

// JSONPresetTransformer applies declarative per-field patches loaded from a
// JSON document. Patches are keyed by field id:
//
//	{
//	  "fields": {
//	    "Company_Name": {"label": "Company", "placeholder": "ACME Corp"},
//	    "Notes": {"widget": "textarea", "meta": {"rows": "6"}}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Fields map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label       string            `json:"label"`
	Placeholder string            `json:"placeholder"`
	Help        string            `json:"help"`
	Widget      string            `json:"widget"`
	Meta        map[string]string `json:"meta"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied schema.
func (t *JSONPresetTransformer) Transform(ctx context.Context, _ string, s *schema.Schema) error {
	if s == nil {
		return errors.New("json preset transformer: schema is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, patch := range t.document.Fields {
		field, ok := s.ByID(id)
		if !ok {
			return fmt.Errorf("json preset transformer: field %q not found", id)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *schema.FieldDescriptor, patch jsonFieldPatch) {
	if field == nil {
		return
	}
	if patch.Label != "" {
		field.Name = patch.Label
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
	set(fieldmeta.MetaPlaceholder, patch.Placeholder)
	set(fieldmeta.MetaHelp, patch.Help)
	set(fieldmeta.MetaWidget, patch.Widget)
	for key, value := range patch.Meta {
		set(key, value)
	}
}
