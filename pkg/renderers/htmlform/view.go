package htmlform

import (
	"html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/schema"
)

type formView struct {
	Action      string       `json:"action,omitempty"`
	Method      string       `json:"method"`
	Theme       string       `json:"theme,omitempty"`
	Style       string       `json:"style,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
	Hidden      []hiddenView `json:"hidden,omitempty"`
	SubmitLabel string       `json:"submitLabel"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type fieldView struct {
	ID     string `json:"id"`
	Markup string `json:"markup"`
}

// buildFieldMarkup wraps a control with its label, help text, and validation
// messages.
func buildFieldMarkup(field schema.FieldDescriptor, control, help string, messages []string) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="svgform-field" data-field="`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" data-kind="`)
	b.WriteString(html.EscapeString(resolveControl(field)))
	b.WriteString(`">`)
	b.WriteByte('\n')

	if label := strings.TrimSpace(field.Name); label != "" {
		b.WriteString(`  <label for="`)
		b.WriteString(html.EscapeString(controlID(field.ID)))
		b.WriteString(`" class="svgform-label">`)
		b.WriteString(html.EscapeString(label))
		b.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if help = strings.TrimSpace(help); help != "" {
		b.WriteString(`  <small class="svgform-help">`)
		b.WriteString(html.EscapeString(help))
		b.WriteString("</small>\n")
	}

	if len(messages) > 0 {
		b.WriteString("  <ul class=\"svgform-field-errors\">\n")
		for _, message := range messages {
			b.WriteString(`    <li>`)
			b.WriteString(html.EscapeString(message))
			b.WriteString("</li>\n")
		}
		b.WriteString("  </ul>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

// fieldValue mirrors the update engine's seed order: explicit override, then
// current value, then default.
func fieldValue(field schema.FieldDescriptor, overrides map[string]any) schema.Value {
	if overrides != nil {
		if raw, ok := overrides[field.ID]; ok {
			return schema.ValueOf(raw)
		}
	}
	if !field.CurrentValue.IsZero() {
		return field.CurrentValue
	}
	return field.DefaultValue
}

func themeAttr(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	name := strings.TrimSpace(cfg.Theme)
	variant := strings.TrimSpace(cfg.Variant)
	switch {
	case name == "":
		return variant
	case variant == "":
		return name
	default:
		return name + "--" + variant
	}
}

// themeStyle renders theme CSS variables as an inline style for the form
// root, sorted for deterministic output.
func themeStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";")
	}
	return b.String()
}

// submissionMethod maps the requested method onto what browsers support,
// tunnelling other verbs through a hidden _method input.
func submissionMethod(raw string) (string, []render.HiddenField) {
	method := strings.ToUpper(strings.TrimSpace(raw))
	switch method {
	case "", "POST":
		return "post", nil
	case "GET":
		return "get", nil
	default:
		return "post", []render.HiddenField{render.Hidden("_method", method)}
	}
}
