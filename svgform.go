package svgform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-svgform/pkg/orchestrator"
	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/svg"
)

// Request describes a form generation run; alias exported via the root
// package for convenience.
type Request = orchestrator.Request

// PreviewRequest describes a document preview run.
type PreviewRequest = orchestrator.PreviewRequest

// PreviewResult carries the mutated document and refreshed schema.
type PreviewResult = orchestrator.PreviewResult

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers configuring partial
// rendering by id or kind.
type FieldSubset = render.FieldSubset

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so most callers never import the pkg tree directly.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the SVG source, parses its field grammar, and renders
// the schema using the named renderer. It is the simplest entry point for
// callers that just want a fill-in form.
func GenerateHTML(ctx context.Context, source svg.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc svg.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// PreviewSVG applies submitted values to the template and returns the mutated
// document with its refreshed schema. Callers that need the test-document
// watermark or overlay keys build a PreviewRequest themselves.
func PreviewSVG(ctx context.Context, source svg.Source, values map[string]any, options ...orchestrator.Option) (PreviewResult, error) {
	gen := orchestrator.New(options...)
	return gen.Preview(ctx, orchestrator.PreviewRequest{
		Source: source,
		Values: values,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider registers a go-theme registry together with the theme and
// variant applied when a request does not name one.
func WithThemeProvider(provider theme.ThemeProvider, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, name, variant)
}
