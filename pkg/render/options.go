package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the parsed schema.
type RenderOptions struct {
	// Action is the URL the rendered form submits collected values to.
	Action string
	// Method overrides the submission method. Renderers translate unsupported
	// verbs (PATCH/PUT/DELETE) into POST plus a hidden _method input.
	Method string
	// Values pre-populates rendered controls keyed by field id, overriding the
	// current values recorded in the schema.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field id.
	// Renderers map these into inline messages next to the offending control;
	// unmatched keys surface as form-level messages.
	Errors map[string][]string
	// Hidden adds hidden inputs (CSRF tokens, document ids) to the rendered
	// form. See MergeHiddenFields and SortedHiddenFields.
	Hidden map[string]string
	// Locale and Translator feed the localization helpers when field overlays
	// carry *Key hints. OnMissing decides what a failed lookup renders as.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// Theme carries the resolved go-theme renderer configuration. Renderers
	// emit its CSS variables on the form root and may consult its partials.
	Theme *theme.RendererConfig
}
