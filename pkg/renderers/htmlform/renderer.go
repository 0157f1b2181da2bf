// Package htmlform renders a parsed field schema as a standalone HTML form.
// Control markup is built in Go per field kind; the surrounding form shell is
// a pongo2 template so integrators can restyle it without forking the
// renderer.
package htmlform

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-svgform/pkg/render"
	rendertemplate "github.com/goliatone/go-svgform/pkg/render/template"
	gotemplate "github.com/goliatone/go-svgform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-svgform/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label != "" {
			cfg.submitLabel = label
		}
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML form renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		submitLabel: "Apply values",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmlform: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, submitLabel: cfg.submitLabel}, nil
}

func (r *Renderer) Name() string {
	return "htmlform"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, s schema.Schema, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("htmlform: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s = render.LocalizeSchema(s, options)
	mapping := render.MapErrorPayload(s, options.Errors)

	method, methodFields := submissionMethod(options.Method)
	hidden := render.SortedHiddenFields(render.MergeHiddenFields(options.Hidden, methodFields...))
	hiddenViews := make([]hiddenView, 0, len(hidden))
	for _, field := range hidden {
		hiddenViews = append(hiddenViews, hiddenView{Name: field.Name, Value: field.Value})
	}

	fields := make([]fieldView, 0, len(s))
	for _, field := range s {
		value := fieldValue(field, options.Values)
		messages := mapping.Fields[field.ID]
		control := buildControl(field, value, len(messages) > 0)
		fields = append(fields, fieldView{
			ID:     field.ID,
			Markup: buildFieldMarkup(field, control, field.Meta["help"], messages),
		})
	}

	view := map[string]any{
		"form": formView{
			Action:      options.Action,
			Method:      method,
			Theme:       themeAttr(options.Theme),
			Style:       themeStyle(options.Theme),
			Errors:      mapping.Form,
			Hidden:      hiddenViews,
			SubmitLabel: r.submitLabel,
		},
		"fields": fields,
	}

	result, err := r.templates.RenderTemplate("templates/form.html", view)
	if err != nil {
		return nil, fmt.Errorf("htmlform: render template: %w", err)
	}
	return []byte(result), nil
}
