package svg

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	uploadPolicyOnce sync.Once
	uploadPolicy     *bluemonday.Policy
)

// Sanitize cleans an untrusted uploaded template: scripts, event handlers,
// and foreign objects are stripped while the structural, text, and styling
// subset the field engine understands passes through. The payload goes
// through an HTML5 parser, so tag and attribute names come back lowercased.
func Sanitize(svgText string) string {
	trimmed := strings.TrimSpace(svgText)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(uploadSanitizer().Sanitize(trimmed))
}

func uploadSanitizer() *bluemonday.Policy {
	uploadPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()

		elements := []string{
			"svg", "g", "defs", "style", "title", "desc", "use", "symbol",
			"text", "tspan", "textPath", "image", "path", "circle", "rect",
			"line", "polyline", "polygon", "ellipse", "clipPath", "mask",
			"pattern", "linearGradient", "radialGradient", "stop",
		}
		policy.AllowElements(elements...)

		// Field ids and visibility toggles must survive sanitization.
		policy.AllowAttrs("id", "class", "transform", "opacity", "visibility", "display", "style").Globally()

		policy.AllowAttrs(
			"xmlns", "xmlns:xlink", "viewBox", "width", "height",
			"preserveAspectRatio", "version",
		).OnElements("svg")

		policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use", "image")
		policy.AllowAttrs("x", "y", "width", "height").OnElements("image", "use", "rect", "pattern")

		textAttrs := []string{
			"x", "y", "dx", "dy", "text-anchor", "font-family", "font-size",
			"font-weight", "font-style", "letter-spacing", "fill", "stroke",
			"pointer-events",
		}
		policy.AllowAttrs(textAttrs...).OnElements("text", "tspan", "textPath")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "stroke-dasharray",
				"fill-rule", "fill-opacity", "stroke-opacity",
			).OnElements(el)
		}

		policy.AllowAttrs("offset", "stop-color", "stop-opacity").OnElements("stop")
		policy.AllowAttrs("gradientUnits", "gradientTransform", "x1", "y1", "x2", "y2", "cx", "cy", "r", "fx", "fy").OnElements("linearGradient", "radialGradient")
		policy.AllowAttrs("clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("patternUnits", "patternTransform").OnElements("pattern")
		policy.AllowAttrs("type").OnElements("style")

		uploadPolicy = policy
	})
	return uploadPolicy
}
