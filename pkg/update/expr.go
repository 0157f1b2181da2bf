package update

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-svgform/pkg/schema"
)

// dependencyExpr matches extraction expressions of the form name[wK],
// name[chK], name[chK1,K2,...] and name[chA-B]. Anything else is treated as
// a bare field name.
var dependencyExpr = regexp.MustCompile(`^(.+)\[(w|ch)(.+)\]$`)

// resolveDependency evaluates one depends_ expression against the seeded
// value map. Extraction always yields text. Inline image payloads bypass
// slicing entirely so data URIs survive intact.
func resolveDependency(expr string, values map[string]schema.Value) schema.Value {
	if m := dependencyExpr.FindStringSubmatch(expr); m != nil {
		source := values[m[1]]
		if isImagePayload(source) {
			return source
		}
		text := sourceText(source)
		switch m[2] {
		case "w":
			return schema.String(extractWord(text, m[3]))
		case "ch":
			return schema.String(extractChars(text, m[3]))
		}
	}

	source := values[expr]
	if isImagePayload(source) {
		return source
	}
	return schema.String(sourceText(source))
}

func isImagePayload(v schema.Value) bool {
	if v.IsBool() {
		return false
	}
	text := v.Text()
	return strings.HasPrefix(text, "data:image/") || strings.HasPrefix(text, "blob:")
}

// sourceText stringifies a source value, with unset values reading as empty
// rather than "false".
func sourceText(v schema.Value) string {
	if v.IsZero() {
		return ""
	}
	return v.String()
}

// extractWord returns the 1-indexed whitespace-delimited word, or empty when
// the index is unparsable or out of range.
func extractWord(text, pattern string) string {
	words := strings.Fields(text)
	index, err := strconv.Atoi(strings.TrimSpace(pattern))
	if err != nil {
		return ""
	}
	index--
	if index < 0 || index >= len(words) {
		return ""
	}
	return words[index]
}

// extractChars slices 1-indexed character positions out of the text. Indexing
// is by rune so multibyte values slice cleanly. Lists skip unparsable parts;
// ranges clamp to the text length and come back empty when degenerate.
func extractChars(text, pattern string) string {
	runes := []rune(text)
	switch {
	case strings.Contains(pattern, ","):
		var out []rune
		for _, part := range strings.Split(pattern, ",") {
			index, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			index--
			if index >= 0 && index < len(runes) {
				out = append(out, runes[index])
			}
		}
		return string(out)
	case strings.Contains(pattern, "-"):
		bounds := strings.SplitN(pattern, "-", 2)
		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return ""
		}
		end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return ""
		}
		lo, hi := start-1, end
		if lo < 0 {
			lo = 0
		}
		if hi > len(runes) {
			hi = len(runes)
		}
		if lo >= hi {
			return ""
		}
		return string(runes[lo:hi])
	default:
		index, err := strconv.Atoi(strings.TrimSpace(pattern))
		if err != nil {
			return ""
		}
		index--
		if index < 0 || index >= len(runes) {
			return ""
		}
		return string(runes[index])
	}
}
