package svg

import (
	"regexp"
	"strings"
)

var (
	commentPattern    = regexp.MustCompile(`(?s)<!--.*?-->`)
	betweenTagPattern = regexp.MustCompile(`>\s+<`)
)

// Minify shrinks a document by removing XML comments and whitespace between
// tags. Attributes, element ids, and text content stay byte-identical, so a
// minified template parses to the same field schema as the original.
func Minify(svgText string) string {
	if svgText == "" {
		return svgText
	}

	out := commentPattern.ReplaceAllString(svgText, "")
	out = betweenTagPattern.ReplaceAllString(out, "><")
	return strings.TrimSpace(out)
}
