package htmlform

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-svgform/pkg/schema"
)

const controlIDPrefix = "sf-"

func controlID(fieldID string) string {
	trimmed := strings.TrimSpace(fieldID)
	if trimmed == "" {
		return ""
	}
	return controlIDPrefix + trimmed
}

// resolveControl picks the control for a field: a widget override from the
// overlay wins, options force a select, otherwise the field kind decides.
// Unknown kinds render as plain text inputs.
func resolveControl(field schema.FieldDescriptor) string {
	if widget := strings.TrimSpace(field.Meta["widget"]); widget != "" {
		return strings.ToLower(widget)
	}
	if field.HasOptions() {
		return "select"
	}
	kind := strings.ToLower(strings.TrimSpace(string(field.Kind)))
	if kind == "" {
		return "text"
	}
	return kind
}

func buildControl(field schema.FieldDescriptor, value schema.Value, invalid bool) string {
	switch control := resolveControl(field); control {
	case "select":
		return buildSelect(field, value, invalid)
	case "checkbox", "hide":
		return buildCheckbox(field, value, invalid)
	case "textarea":
		return buildTextArea(field, value, invalid)
	case "gen", "status":
		return buildInput(field, "text", value, invalid, true)
	case "upload", "file", "sign":
		return buildInput(field, "file", value, invalid, false)
	case "email", "tel", "date", "number", "password", "range", "color":
		return buildInput(field, control, value, invalid, false)
	default:
		return buildInput(field, "text", value, invalid, false)
	}
}

func buildInput(field schema.FieldDescriptor, inputType string, value schema.Value, invalid, readonly bool) string {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(inputType)
	b.WriteString(`" id="`)
	b.WriteString(html.EscapeString(controlID(field.ID)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" class="svgform-control"`)

	if inputType != "file" && !value.IsBool() {
		if text := value.Text(); text != "" {
			b.WriteString(` value="`)
			b.WriteString(html.EscapeString(text))
			b.WriteString(`"`)
		}
	}
	if placeholder := strings.TrimSpace(field.Meta["placeholder"]); placeholder != "" && !readonly {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(placeholder))
		b.WriteString(`"`)
	}
	if field.Max != nil && supportsMaxLength(inputType) {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(*field.Max))
		b.WriteString(`"`)
	}
	writeCommonAttrs(&b, field, invalid)
	if readonly {
		b.WriteString(` readonly`)
	}
	b.WriteString(`>`)
	return b.String()
}

func buildSelect(field schema.FieldDescriptor, value schema.Value, invalid bool) string {
	selected := value.String()

	var b strings.Builder
	b.WriteString(`<select id="`)
	b.WriteString(html.EscapeString(controlID(field.ID)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" class="svgform-control"`)
	writeCommonAttrs(&b, field, invalid)
	b.WriteString(">\n")

	for _, option := range field.Options {
		b.WriteString(`  <option value="`)
		b.WriteString(html.EscapeString(option.Value))
		b.WriteString(`"`)
		if option.Value == selected {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(optionLabel(option)))
		b.WriteString("</option>\n")
	}

	b.WriteString(`</select>`)
	return b.String()
}

func buildCheckbox(field schema.FieldDescriptor, value schema.Value, invalid bool) string {
	var b strings.Builder
	b.WriteString(`<input type="checkbox" id="`)
	b.WriteString(html.EscapeString(controlID(field.ID)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" class="svgform-control" value="true"`)
	if value.Truthy() {
		b.WriteString(` checked`)
	}
	writeCommonAttrs(&b, field, invalid)
	b.WriteString(`>`)
	return b.String()
}

func buildTextArea(field schema.FieldDescriptor, value schema.Value, invalid bool) string {
	var b strings.Builder
	b.WriteString(`<textarea id="`)
	b.WriteString(html.EscapeString(controlID(field.ID)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.ID))
	b.WriteString(`" class="svgform-control" rows="4"`)
	if placeholder := strings.TrimSpace(field.Meta["placeholder"]); placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(placeholder))
		b.WriteString(`"`)
	}
	if field.Max != nil {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(*field.Max))
		b.WriteString(`"`)
	}
	writeCommonAttrs(&b, field, invalid)
	b.WriteString(`>`)
	if !value.IsBool() {
		b.WriteString(html.EscapeString(value.Text()))
	}
	b.WriteString(`</textarea>`)
	return b.String()
}

func writeCommonAttrs(b *strings.Builder, field schema.FieldDescriptor, invalid bool) {
	if field.DependsOn != "" {
		b.WriteString(` data-depends-on="`)
		b.WriteString(html.EscapeString(field.DependsOn))
		b.WriteString(`"`)
	}
	if invalid {
		b.WriteString(` aria-invalid="true"`)
	}
}

func supportsMaxLength(inputType string) bool {
	switch inputType {
	case "text", "email", "tel", "password":
		return true
	default:
		return false
	}
}

func optionLabel(option schema.SelectOption) string {
	if label := strings.TrimSpace(option.DisplayText); label != "" {
		return label
	}
	return option.Label
}
