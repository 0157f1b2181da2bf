package render

import (
	"strings"

	"github.com/goliatone/go-svgform/pkg/schema"
)

// FieldSubset selects a slice of the parsed schema for rendering. Entries may
// contain comma-separated tokens; matching is case-insensitive.
type FieldSubset struct {
	// IDs keeps fields whose base id matches.
	IDs []string
	// Kinds keeps fields whose resolved kind matches (e.g. "select", "gen").
	Kinds []string
	// EditableOnly drops read-only fields regardless of the other filters.
	EditableOnly bool
}

// ApplySubset removes fields that do not match the supplied subset filters.
// When the subset is empty the schema is returned unchanged.
func ApplySubset(s *schema.Schema, subset FieldSubset) {
	if s == nil {
		return
	}

	matcher := newSubsetMatcher(subset)
	if matcher.empty() {
		return
	}

	filtered := make(schema.Schema, 0, len(*s))
	for _, field := range *s {
		if matcher.matches(field) {
			filtered = append(filtered, field)
		}
	}
	if len(filtered) == 0 {
		*s = nil
		return
	}
	*s = filtered
}

type subsetMatcher struct {
	ids          map[string]struct{}
	kinds        map[string]struct{}
	editableOnly bool
}

func newSubsetMatcher(subset FieldSubset) subsetMatcher {
	return subsetMatcher{
		ids:          normaliseTokens(subset.IDs),
		kinds:        normaliseTokens(subset.Kinds),
		editableOnly: subset.EditableOnly,
	}
}

func (m subsetMatcher) empty() bool {
	return len(m.ids) == 0 && len(m.kinds) == 0 && !m.editableOnly
}

func (m subsetMatcher) matches(field schema.FieldDescriptor) bool {
	if m.editableOnly && !field.Editable {
		return false
	}

	if len(m.ids) == 0 && len(m.kinds) == 0 {
		return true
	}

	if len(m.ids) > 0 {
		if _, ok := m.ids[normaliseToken(field.ID)]; ok {
			return true
		}
	}
	if len(m.kinds) > 0 {
		if _, ok := m.kinds[normaliseToken(string(field.Kind))]; ok {
			return true
		}
	}
	return false
}

func normaliseToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normaliseTokens(raw []string) map[string]struct{} {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]struct{})
	for _, entry := range raw {
		for _, token := range strings.Split(entry, ",") {
			if normalized := normaliseToken(token); normalized != "" {
				out[normalized] = struct{}{}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
