package orchestrator

import (
	"context"
	"testing"

	"github.com/goliatone/go-svgform/pkg/render"
	theme "github.com/goliatone/go-theme"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	t.Helper()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}

	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithParser(&stubParser{schema: parsedSchema()}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	doc := waybillDocument(t)
	_, err := orch.Generate(context.Background(), Request{
		Document:     &doc,
		Renderer:     renderer.Name(),
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	if renderer.options.Theme == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if renderer.options.Theme.Theme != selection.Theme {
		t.Fatalf("theme name mismatch: want %s, got %s", selection.Theme, renderer.options.Theme.Theme)
	}
	if renderer.options.Theme.Variant != selection.Variant {
		t.Fatalf("theme variant mismatch: want %s, got %s", selection.Variant, renderer.options.Theme.Variant)
	}
	if renderer.options.Theme.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := renderer.options.Theme.Partials["forms.shell"]; got != defaultThemeFallbacks()["forms.shell"] {
		t.Fatalf("partials not merged with fallbacks: want %s, got %s", defaultThemeFallbacks()["forms.shell"], got)
	}
	if renderer.options.Theme.Tokens["brand"] != manifest.Tokens["brand"] {
		t.Fatalf("tokens not propagated")
	}
	if renderer.options.Theme.CSSVars["--brand"] != manifest.Tokens["brand"] {
		t.Fatalf("css vars not derived from tokens")
	}
}

func TestOrchestrator_WithThemeProviderUsesDefaults(t *testing.T) {
	t.Helper()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.shell": "themes/acme/form.html",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"form.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.field": "themes/acme/dark/field.html",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"form.vendor": "vendor.dark.js",
					},
				},
			},
		},
	}

	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithParser(&stubParser{schema: parsedSchema()}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeProvider(provider, "acme", "dark"),
	)

	doc := waybillDocument(t)
	_, err := orch.Generate(context.Background(), Request{
		Document: &doc,
		Renderer: renderer.Name(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" {
		t.Fatalf("theme name mismatch: want acme, got %s", cfg.Theme)
	}
	if cfg.Variant != "dark" {
		t.Fatalf("theme variant mismatch: want dark, got %s", cfg.Variant)
	}
	if cfg.Partials["forms.shell"] != "themes/acme/form.html" {
		t.Fatalf("expected base template override, got %s", cfg.Partials["forms.shell"])
	}
	if cfg.Partials["forms.field"] != "themes/acme/dark/field.html" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials["forms.field"])
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens, got %s", cfg.CSSVars["--brand"])
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.AssetURL("form.vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("unexpected vendor asset url: %s", got)
	}
	if got := cfg.AssetURL("form.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
}

func TestOrchestrator_RequestThemeSkippedWhenOptionsCarryTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme"}}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithParser(&stubParser{schema: parsedSchema()}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	preset := &theme.RendererConfig{Theme: "preset"}
	doc := waybillDocument(t)
	_, err := orch.Generate(context.Background(), Request{
		Document:      &doc,
		ThemeName:     "acme",
		RenderOptions: render.RenderOptions{Theme: preset},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("expected selector untouched, got %d calls", len(selector.calls))
	}
	if renderer.options.Theme != preset {
		t.Fatalf("expected preset theme config to pass through unchanged")
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
