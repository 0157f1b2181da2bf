package schema

import (
	"strings"
	"unicode"
)

// DisplayName derives the human-facing field name from a base id: underscores
// become spaces and every letter run is title-cased (first letter upper, rest
// lower).
func DisplayName(baseID string) string {
	if baseID == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(baseID))

	prevLetter := false
	for _, r := range strings.ReplaceAll(baseID, "_", " ") {
		switch {
		case !unicode.IsLetter(r):
			out.WriteRune(r)
			prevLetter = false
		case prevLetter:
			out.WriteRune(unicode.ToLower(r))
		default:
			out.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return out.String()
}
