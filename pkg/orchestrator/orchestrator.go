package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	internalfields "github.com/goliatone/go-svgform/internal/fields"
	"github.com/goliatone/go-svgform/internal/svgload"
	"github.com/goliatone/go-svgform/pkg/fieldmeta"
	"github.com/goliatone/go-svgform/pkg/fields"
	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/renderers/htmlform"
	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
	"github.com/goliatone/go-svgform/pkg/update"
	"github.com/goliatone/go-svgform/pkg/watermark"
)

const defaultRendererName = "htmlform"

// Decorator adjusts a parsed schema before rendering. Implementations must
// treat the input as immutable and return the adjusted copy.
// fieldmeta.Decorator satisfies this contract.
type Decorator interface {
	Decorate(templateName string, s schema.Schema) schema.Schema
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom SVG loader.
func WithLoader(loader svg.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom field parser.
func WithParser(parser fields.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithUpdateEngine injects a custom value application engine.
func WithUpdateEngine(engine *update.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate parsed
// schemas after parsing but before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the parsed schema
// before rendering, in registration order.
func WithDecorators(decorators ...Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithFieldMetaFS supplies an fs.FS holding presentation overlay documents.
// A fieldmeta decorator built from the overlays is appended automatically.
func WithFieldMetaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.fieldMetaFS = fsys
	}
}

// WithSanitizedUploads toggles sanitization of loaded documents before
// parsing. Off by default: templates from the store are already clean, and
// sanitization rewrites markup through an HTML5 parser.
func WithSanitizedUploads(enabled bool) Option {
	return func(o *Orchestrator) {
		o.sanitizeUploads = enabled
	}
}

// Orchestrator coordinates the full pipeline from SVG template to rendered
// output. It applies sensible defaults (htmlform renderer, embedded
// templates) while remaining open to dependency injection for advanced
// callers.
type Orchestrator struct {
	loader               svg.Loader
	parser               fields.Parser
	engine               *update.Engine
	registry             *render.Registry
	defaultRenderer      string
	transformer          Transformer
	decorators           []Decorator
	fieldMetaFS          fs.FS
	fieldMetaConfigured  bool
	themeSelector        ThemeSelector
	themeName            string
	themeVariant         string
	sanitizeUploads      bool
	initialiseErr        error
	defaultsApplied      bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a fill-in form from an SVG
// template.
type Request struct {
	// Source identifies where the SVG document lives. Optional when Document
	// is supplied.
	Source svg.Source

	// Document allows callers to bypass the loader when they already have a
	// loaded payload.
	Document *svg.Document

	// TemplateName keys fieldmeta overlays and transformer patches. Defaults
	// to the document's source location.
	TemplateName string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme through the configured
	// selector. Empty values fall back to the provider defaults.
	ThemeName    string
	ThemeVariant string

	// Subset restricts rendering to matching fields. Nil renders everything.
	Subset *render.FieldSubset

	// RenderOptions carries per-request instructions such as method
	// overrides, prefilled values, or server-side errors that renderers can
	// surface. When omitted, renderers receive the zero-value struct.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → parser → decorators → renderer sequence and
// returns the rendered bytes (HTML for the default htmlform renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req.Source, req.Document)
	if err != nil {
		return nil, err
	}
	doc, _, err = o.prepareDocument(doc)
	if err != nil {
		return nil, err
	}

	s, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse fields: %w", err)
	}

	templateName := templateKey(req.TemplateName, doc)
	if err := o.applyTransformer(ctx, templateName, &s); err != nil {
		return nil, err
	}
	s = o.applyDecorators(templateName, s)

	if req.Subset != nil {
		render.ApplySubset(&s, *req.Subset)
	}

	options := req.RenderOptions
	if err := o.applyTheme(req, &options); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, s, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// PreviewRequest describes a document preview: load, apply values, and
// optionally watermark the result.
type PreviewRequest struct {
	// Source and Document mirror Request.
	Source   svg.Source
	Document *svg.Document

	// TemplateName keys fieldmeta overlays for the returned schema.
	TemplateName string

	// Values overlays submitted values onto the schema before application.
	Values map[string]any

	// Watermark stamps the output with the test-document marker grid.
	Watermark bool
}

// PreviewResult carries the outcome of a Preview call.
type PreviewResult struct {
	// SVG is the document text after value application (and watermarking
	// when requested).
	SVG []byte

	// Schema reflects the values that were written, current values included.
	Schema schema.Schema
}

// Preview runs the update engine over a template and returns the mutated
// document together with the refreshed schema.
func (o *Orchestrator) Preview(ctx context.Context, req PreviewRequest) (PreviewResult, error) {
	if err := o.ready(ctx); err != nil {
		return PreviewResult{}, err
	}

	doc, err := o.resolveDocument(ctx, req.Source, req.Document)
	if err != nil {
		return PreviewResult{}, err
	}
	doc, text, err := o.prepareDocument(doc)
	if err != nil {
		return PreviewResult{}, err
	}

	s, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("orchestrator: parse fields: %w", err)
	}

	templateName := templateKey(req.TemplateName, doc)
	if err := o.applyTransformer(ctx, templateName, &s); err != nil {
		return PreviewResult{}, err
	}
	s = o.applyDecorators(templateName, s)

	updated, refreshed, err := o.engine.Apply(text, s, toValues(req.Values))
	if err != nil {
		return PreviewResult{}, fmt.Errorf("orchestrator: apply values: %w", err)
	}

	if req.Watermark {
		updated = watermark.Add(updated)
	}

	return PreviewResult{SVG: []byte(updated), Schema: refreshed}, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, source svg.Source, document *svg.Document) (svg.Document, error) {
	if document != nil {
		return *document, nil
	}
	if source == nil {
		return svg.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, source)
	if err != nil {
		return svg.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// prepareDocument applies the optional sanitization pass and returns the
// document to parse along with its text payload.
func (o *Orchestrator) prepareDocument(doc svg.Document) (svg.Document, string, error) {
	text := doc.Text()
	if !o.sanitizeUploads {
		return doc, text, nil
	}

	clean := svg.Sanitize(text)
	if clean == text {
		return doc, text, nil
	}

	name := doc.Location()
	if name == "" {
		name = "document.svg"
	}
	sanitized, err := svg.DocumentFromString(name, clean)
	if err != nil {
		return svg.Document{}, "", fmt.Errorf("orchestrator: sanitize document: %w", err)
	}
	return sanitized, clean, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(templateName string, s schema.Schema) schema.Schema {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		s = decorator.Decorate(templateName, s)
	}
	return s
}

func (o *Orchestrator) applyTransformer(ctx context.Context, templateName string, s *schema.Schema) error {
	if o.transformer == nil || s == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, templateName, s); err != nil {
		return fmt.Errorf("orchestrator: transform schema: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = svgload.New(svg.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalfields.New(fields.NewParserOptions())
	}
	if o.engine == nil {
		o.engine = update.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := htmlform.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.ensureFieldMetaDecorator()

	o.defaultsApplied = true
}

func (o *Orchestrator) ensureFieldMetaDecorator() {
	if o.fieldMetaConfigured {
		return
	}
	o.fieldMetaConfigured = true

	if o.fieldMetaFS == nil {
		return
	}

	store, err := fieldmeta.LoadFS(o.fieldMetaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load field overlays: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, fieldmeta.NewDecorator(store))
}

func templateKey(requested string, doc svg.Document) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	return doc.Location()
}

func toValues(values map[string]any) map[string]schema.Value {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]schema.Value, len(values))
	for id, raw := range values {
		out[id] = schema.ValueOf(raw)
	}
	return out
}
