package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-svgform/pkg/render"
)

// ThemeSelector resolves a theme manifest by name and variant.
// theme.Selector satisfies this contract.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector wires a selector consulted when a request names a theme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider wires a theme registry together with the theme and
// variant applied when a request does not name one.
func WithThemeProvider(provider theme.ThemeProvider, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = theme.Selector{Registry: provider}
		o.themeName = name
		o.themeVariant = variant
	}
}

// defaultThemeFallbacks maps partial slots to the embedded templates
// renderers fall back to when a theme does not override them.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.shell": "templates/form.html",
	}
}

// applyTheme resolves the requested theme into a renderer configuration.
// Render options that already carry a theme win; requests that name no theme
// fall back to the provider defaults, and when those are empty too the
// options pass through untouched.
func (o *Orchestrator) applyTheme(req Request, options *render.RenderOptions) error {
	if options.Theme != nil || o.themeSelector == nil {
		return nil
	}

	name := strings.TrimSpace(req.ThemeName)
	if name == "" {
		name = o.themeName
	}
	if name == "" {
		return nil
	}
	variant := strings.TrimSpace(req.ThemeVariant)
	if variant == "" {
		variant = o.themeVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if cfg := rendererConfigFromSelection(selection); cfg != nil {
		options.Theme = cfg
	}
	return nil
}

// rendererConfigFromSelection flattens a theme selection into the renderer
// contract: partials merged over the embedded fallbacks, tokens merged with
// variant overrides winning, CSS variables derived from the merged tokens,
// and an asset resolver spanning base and variant files.
func rendererConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: defaultThemeFallbacks(),
		Tokens:   make(map[string]string),
		CSSVars:  make(map[string]string),
	}

	manifest := selection.Manifest
	if manifest != nil {
		for key, value := range manifest.Templates {
			cfg.Partials[key] = value
		}
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Templates {
				cfg.Partials[key] = value
			}
			for key, value := range variant.Tokens {
				cfg.Tokens[key] = value
			}
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = assetResolver(manifest, selection.Variant)
	return cfg
}

func assetResolver(manifest *theme.Manifest, variantName string) func(string) string {
	files := make(map[string]string)
	prefix := ""

	if manifest != nil {
		prefix = manifest.Assets.Prefix
		for key, file := range manifest.Assets.Files {
			files[key] = file
		}
		if variant, ok := manifest.Variants[variantName]; ok {
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
			for key, file := range variant.Assets.Files {
				files[key] = file
			}
		}
	}

	return func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}
