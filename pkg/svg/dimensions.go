package svg

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback canvas used when a document declares no usable size.
const (
	DefaultWidth  = 400.0
	DefaultHeight = 300.0
)

var (
	viewBoxPattern = regexp.MustCompile(`viewBox=["']([^"']+)["']`)
	widthPattern   = regexp.MustCompile(`\swidth=["']([^"'px]+)`)
	heightPattern  = regexp.MustCompile(`\sheight=["']([^"'px]+)`)
)

// Dimensions probes the document for its canvas size: the viewBox third and
// fourth values when present, else width/height attributes with unit suffixes
// stripped, else 400x300. The probe is textual so it works on documents the
// XML parser would reject.
func Dimensions(svgText string) (width, height float64) {
	width, height = DefaultWidth, DefaultHeight

	if m := viewBoxPattern.FindStringSubmatch(svgText); m != nil {
		values := strings.Fields(m[1])
		if len(values) >= 4 {
			w, werr := strconv.ParseFloat(values[2], 64)
			h, herr := strconv.ParseFloat(values[3], 64)
			if werr == nil && herr == nil {
				return w, h
			}
		}
	}

	if m := widthPattern.FindStringSubmatch(svgText); m != nil {
		if w, err := strconv.ParseFloat(m[1], 64); err == nil {
			width = w
		}
	}
	if m := heightPattern.FindStringSubmatch(svgText); m != nil {
		if h, err := strconv.ParseFloat(m[1], 64); err == nil {
			height = h
		}
	}
	return width, height
}
