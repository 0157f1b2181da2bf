// Package watermark stamps unpaid documents with a diagonal grid of marker
// text and strips those markers again on upgrade. Both operations work on
// the raw document text so untouched bytes stay untouched: Remove(Add(x))
// returns x exactly when x carried no pre-existing markers.
package watermark

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-svgform/pkg/svg"
)

const closingTag = "</svg>"

// markerPattern matches one group-wrapped marker and the newline that
// followed it. The attribute wildcards keep it loose enough to also catch
// markers from the retired uniform-random placement, which used the same
// wrapper shape with arbitrary angles.
var markerPattern = regexp.MustCompile(
	`(?is)<g\s+transform="rotate\([^)]+\)">\s*` +
		`<text\s+[^>]*pointer-events="none"[^>]*>` +
		regexp.QuoteMeta(markerLabel) + `</text>\s*</g>\n?`)

// Add inserts the marker grid immediately before the document's closing tag.
// Documents without a closing tag, and documents too small to fit a single
// in-bounds marker, come back unchanged.
func Add(svgText string) string {
	idx := strings.LastIndex(svgText, closingTag)
	if idx < 0 {
		return svgText
	}

	width, height := svg.Dimensions(svgText)
	g := computeGrid(width, height)
	placed := g.markers()
	if len(placed) == 0 {
		return svgText
	}

	var b strings.Builder
	for _, m := range placed {
		writeMarker(&b, m, g.fontSize)
	}
	return svgText[:idx] + b.String() + svgText[idx:]
}

// Remove strips every marker Add (or the retired random placement) inserted.
func Remove(svgText string) string {
	if !strings.Contains(svgText, closingTag) {
		return svgText
	}
	return markerPattern.ReplaceAllString(svgText, "")
}

func writeMarker(b *strings.Builder, m marker, fontSize float64) {
	x := formatCoord(m.x)
	y := formatCoord(m.y)

	b.WriteString(`<g transform="rotate(`)
	b.WriteString(formatCoord(markerAngle))
	b.WriteString(", ")
	b.WriteString(x)
	b.WriteString(", ")
	b.WriteString(y)
	b.WriteString(`)">`)
	b.WriteString(`<text x="`)
	b.WriteString(x)
	b.WriteString(`" y="`)
	b.WriteString(y)
	b.WriteString(`" fill="black" font-size="`)
	b.WriteString(formatCoord(fontSize))
	b.WriteString(`" pointer-events="none">`)
	b.WriteString(markerLabel)
	b.WriteString(`</text></g>`)
	b.WriteString("\n")
}

// formatCoord renders layout numbers with stable precision so output is
// deterministic across runs.
func formatCoord(f float64) string {
	out := strconv.FormatFloat(f, 'f', 2, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}
