// Package export builds an OpenAPI 3 description of the value submission API
// for a parsed field schema. Integrators hand the document to client
// generators so label-filling UIs stay in sync with the template.
package export

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-svgform/pkg/schema"
)

const (
	defaultTitle        = "Document Values API"
	defaultVersion      = "1.0.0"
	defaultSubmitPath   = "/documents/{documentId}/values"
	defaultTrackingPath = "/tracking/{trackingId}"
)

// Option customises the exporter configuration.
type Option func(*Exporter)

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(e *Exporter) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			e.title = trimmed
		}
	}
}

// WithVersion overrides the document version.
func WithVersion(version string) Option {
	return func(e *Exporter) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			e.version = trimmed
		}
	}
}

// WithSubmitPath overrides the value submission path. Brace-delimited
// segments become path parameters.
func WithSubmitPath(path string) Option {
	return func(e *Exporter) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			e.submitPath = trimmed
		}
	}
}

// WithTrackingPath overrides the public tracking lookup path.
func WithTrackingPath(path string) Option {
	return func(e *Exporter) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			e.trackingPath = trimmed
		}
	}
}

// Exporter turns schemas into OpenAPI documents.
type Exporter struct {
	title        string
	version      string
	submitPath   string
	trackingPath string
}

// New constructs an Exporter with defaults suitable for the document API.
func New(options ...Option) *Exporter {
	e := &Exporter{
		title:        defaultTitle,
		version:      defaultVersion,
		submitPath:   defaultSubmitPath,
		trackingPath: defaultTrackingPath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Contract builds the OpenAPI document for one schema: a POST operation
// accepting a value per fillable field plus the tracking lookup. Generated
// and status fields are display-only and never part of the submission body.
func (e *Exporter) Contract(s schema.Schema) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   e.title,
			Version: e.version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(e.submitPath, &openapi3.PathItem{
				Post:       e.submitOperation(s),
				Parameters: pathParameters(e.submitPath),
			}),
			openapi3.WithPath(e.trackingPath, &openapi3.PathItem{
				Get:        e.trackingOperation(),
				Parameters: pathParameters(e.trackingPath),
			}),
		),
	}
	return doc, nil
}

// JSON serializes the contract for one schema.
func (e *Exporter) JSON(s schema.Schema) ([]byte, error) {
	doc, err := e.Contract(s)
	if err != nil {
		return nil, err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: marshal contract: %w", err)
	}
	return data, nil
}

func (e *Exporter) submitOperation(s schema.Schema) *openapi3.Operation {
	body := openapi3.NewObjectSchema()
	for i := range s {
		field := &s[i]
		if displayOnly(field.Kind) {
			continue
		}
		body.WithProperty(field.ID, propertySchema(field))
	}

	request := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(body)

	result := openapi3.NewObjectSchema().
		WithProperty("svg", openapi3.NewStringSchema()).
		WithProperty("fields", openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()))

	return &openapi3.Operation{
		OperationID: "applyValues",
		Summary:     "Apply field values to a document",
		RequestBody: &openapi3.RequestBodyRef{Value: request},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Updated document with refreshed field state").
					WithJSONSchema(result),
			}),
		),
	}
}

func (e *Exporter) trackingOperation() *openapi3.Operation {
	result := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum(
			"processing", "in_transit", "delivered", "error_message")).
		WithProperty("updatedAt", openapi3.NewStringSchema().WithFormat("date-time"))

	return &openapi3.Operation{
		OperationID: "trackDocument",
		Summary:     "Public delivery status lookup",
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Delivery status for the tracking id").
					WithJSONSchema(result),
			}),
			openapi3.WithStatus(404, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Unknown tracking id"),
			}),
		),
	}
}

// propertySchema types one field for the submission body: booleans for the
// toggle kinds, strings for everything else, select option values as the
// enum in encounter order.
func propertySchema(field *schema.FieldDescriptor) *openapi3.Schema {
	var prop *openapi3.Schema
	switch field.Kind {
	case schema.FieldKindCheckbox, schema.FieldKindHide:
		prop = openapi3.NewBoolSchema()
	default:
		prop = openapi3.NewStringSchema()
	}
	prop.Title = field.Name

	switch field.Kind {
	case schema.FieldKindEmail:
		prop.WithFormat("email")
	case schema.FieldKindTel:
		prop.WithFormat("tel")
	case schema.FieldKindDate:
		prop.WithFormat("date")
	case schema.FieldKindPassword:
		prop.WithFormat("password")
	}

	if field.Max != nil && *field.Max > 0 {
		prop.WithMaxLength(int64(*field.Max))
	}

	if field.HasOptions() {
		values := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			values = append(values, option.Value)
		}
		prop.WithEnum(values...)
	}
	return prop
}

func displayOnly(kind schema.FieldKind) bool {
	return kind == schema.FieldKindGenerated || kind == schema.FieldKindStatus
}

func pathParameters(path string) openapi3.Parameters {
	var params openapi3.Parameters
	for _, name := range pathParamNames(path) {
		param := openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())
		params = append(params, &openapi3.ParameterRef{Value: param})
	}
	return params
}

func pathParamNames(path string) []string {
	var out []string
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			return out
		}
		rest := path[start+1:]
		end := strings.Index(rest, "}")
		if end < 0 {
			return out
		}
		if name := rest[:end]; name != "" {
			out = append(out, name)
		}
		path = rest[end+1:]
	}
}
