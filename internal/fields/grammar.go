package fields

import "strings"

// Token kinds recognised inside dot-delimited element ids.
type tokenKind int

const (
	tokenUnknown tokenKind = iota
	tokenSelect
	tokenMax
	tokenDepends
	tokenTrackingID
	tokenTrackRole
	tokenEditable
	tokenHide
	tokenType
)

// typeKeywords is the closed set of explicit type tokens. Hide variants and
// select options are recognised by prefix instead.
var typeKeywords = map[string]struct{}{
	"text":     {},
	"textarea": {},
	"checkbox": {},
	"date":     {},
	"upload":   {},
	"number":   {},
	"email":    {},
	"tel":      {},
	"gen":      {},
	"password": {},
	"range":    {},
	"color":    {},
	"file":     {},
	"status":   {},
	"sign":     {},
}

type token struct {
	kind tokenKind
	raw  string
	arg  string
}

const linkMarker = ".link_"

// tokenizedID is the scanned form of a single id attribute. The link URL is
// captured from the raw id before splitting because URLs contain dots.
type tokenizedID struct {
	raw    string
	base   string
	link   string
	tokens []token
}

// tokenizeID splits an id attribute into its base token and modifier tokens.
func tokenizeID(rawID string) tokenizedID {
	out := tokenizedID{raw: rawID}

	rest := rawID
	if idx := strings.Index(rest, linkMarker); idx >= 0 {
		out.link = rest[idx+len(linkMarker):]
		rest = rest[:idx]
	}

	parts := strings.Split(rest, ".")
	out.base = parts[0]
	for _, part := range parts[1:] {
		out.tokens = append(out.tokens, classify(part))
	}
	return out
}

func classify(part string) token {
	switch {
	case strings.HasPrefix(part, "select_"):
		return token{kind: tokenSelect, raw: part, arg: part[len("select_"):]}
	case strings.HasPrefix(part, "max_"):
		return token{kind: tokenMax, raw: part, arg: part[len("max_"):]}
	case strings.HasPrefix(part, "depends_"):
		return token{kind: tokenDepends, raw: part, arg: part[len("depends_"):]}
	case part == "tracking_id":
		return token{kind: tokenTrackingID, raw: part}
	case strings.HasPrefix(part, "track_"):
		return token{kind: tokenTrackRole, raw: part, arg: part[len("track_"):]}
	case part == "editable":
		return token{kind: tokenEditable, raw: part}
	case strings.HasPrefix(part, "hide"):
		return token{kind: tokenHide, raw: part}
	}
	if _, ok := typeKeywords[part]; ok {
		return token{kind: tokenType, raw: part}
	}
	return token{kind: tokenUnknown, raw: part}
}

// selectToken returns the first select_ token. The scan includes the base id:
// any token starting with select_ marks the element as a select option.
func (t tokenizedID) selectToken() (token, bool) {
	if strings.HasPrefix(t.base, "select_") {
		return classify(t.base), true
	}
	for _, tok := range t.tokens {
		if tok.kind == tokenSelect {
			return tok, true
		}
	}
	return token{}, false
}

// trackRole returns the first track_ role, scanning the base id too. The
// select-option path uses this scan; it carries no last-token rule.
func (t tokenizedID) trackRole() (string, bool) {
	if strings.HasPrefix(t.base, "track_") {
		return t.base[len("track_"):], true
	}
	for _, tok := range t.tokens {
		if tok.kind == tokenTrackRole {
			return tok.arg, true
		}
	}
	return "", false
}

// editable reports whether any token equals "editable", base included.
func (t tokenizedID) editable() bool {
	if t.base == "editable" {
		return true
	}
	for _, tok := range t.tokens {
		if tok.kind == tokenEditable {
			return true
		}
	}
	return false
}

// trackTokenLast reports whether a track_ token, when present, closes the id.
// Non-select elements violating this are skipped entirely.
func (t tokenizedID) trackTokenLast() bool {
	for i, tok := range t.tokens {
		if tok.kind == tokenTrackRole {
			return i == len(t.tokens)-1
		}
	}
	return true
}

// hideVariant returns the first hide-prefixed raw token (base included),
// defaulting to "hide". Only hide_checked yields a visible-by-default field.
func (t tokenizedID) hideVariant() string {
	if strings.HasPrefix(t.base, "hide") {
		return t.base
	}
	for _, tok := range t.tokens {
		if tok.kind == tokenHide {
			return tok.raw
		}
	}
	return "hide"
}
