package fontpack

import (
	"encoding/base64"
	"regexp"
	"strings"
)

var (
	defsPattern          = regexp.MustCompile(`(?is)(<defs[^>]*>)(.*?)(</defs>)`)
	styleInDefsPattern   = regexp.MustCompile(`(?is)(<style[^>]*>)(<!\[CDATA\[)?(.*?)(\]\]>)?(</style>)`)
	fontFaceBlockPattern = regexp.MustCompile(`(?is)@font-face\s*\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
	faceFamilyPattern    = regexp.MustCompile(`(?i)font-family\s*:\s*["']([^"']+)["']`)
	svgOpenPattern       = regexp.MustCompile(`(?i)<svg[^>]*>`)
)

// InjectOptions configures how font sources are referenced.
type InjectOptions struct {
	// BaseURL prefixes relative font URLs for browser-side rendering.
	BaseURL string
	// Embed inlines font bytes as data URIs for server-side rendering, where
	// external URLs cannot be fetched.
	Embed bool
}

// InjectOption mutates InjectOptions during construction.
type InjectOption func(*InjectOptions)

// WithBaseURL prefixes relative font URLs with the given base.
func WithBaseURL(base string) InjectOption {
	return func(opts *InjectOptions) {
		opts.BaseURL = base
	}
}

// WithEmbedding toggles base64 data-URI embedding.
func WithEmbedding(embed bool) InjectOption {
	return func(opts *InjectOptions) {
		opts.Embed = embed
	}
}

// NewInjectOptions applies InjectOption functions and returns the resulting
// configuration.
func NewInjectOptions(options ...InjectOption) InjectOptions {
	cfg := InjectOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

type fontFace struct {
	family string
	css    string
}

// Inject writes @font-face rules for the given fonts into the document's
// <defs><style> block, creating either when missing. Each rule carries the
// family string the document actually uses so it resolves without renaming
// elements. Families that already have a declaration are left alone; at most
// one rule per normalized family is added.
func Inject(svgText string, fonts []Font, opts InjectOptions) string {
	if len(fonts) == 0 {
		return svgText
	}

	aliases := ExtractAliases(svgText)

	var faces []fontFace
	for _, font := range fonts {
		url := resolveFontURL(font, opts)
		if url == "" {
			continue
		}
		family := matchFamily(font, aliases)
		faces = append(faces, fontFace{family: family, css: buildFontFace(family, url, font.Format())})
	}
	if len(faces) == 0 {
		return svgText
	}

	// One rule per normalized family, first declaration winning.
	unique := make(map[string]fontFace, len(faces))
	var keys []string
	for _, face := range faces {
		key := normalizeKey(face.family)
		if _, ok := unique[key]; ok {
			continue
		}
		unique[key] = face
		keys = append(keys, key)
	}

	rules := make([]string, 0, len(keys))
	for _, key := range keys {
		rules = append(rules, unique[key].css)
	}
	styleBlock := "<style type=\"text/css\"><![CDATA[\n" + strings.Join(rules, "\n") + "\n]]></style>"

	if m := defsPattern.FindStringSubmatch(svgText); m != nil {
		defsFull, defsContent := m[0], m[2]

		if sm := styleInDefsPattern.FindStringSubmatch(defsContent); sm != nil {
			styleFull := sm[0]
			styleOpen, cdataOpen, existing, cdataClose, styleClose := sm[1], sm[2], sm[3], sm[4], sm[5]

			// Families count as present only with a real @font-face rule;
			// plain CSS usage still needs one injected.
			declared := make(map[string]bool)
			for _, block := range fontFaceBlockPattern.FindAllString(existing, -1) {
				for _, fam := range faceFamilyPattern.FindAllStringSubmatch(block, -1) {
					declared[normalizeKey(fam[1])] = true
				}
			}

			var missing []string
			for _, key := range keys {
				if !declared[key] {
					missing = append(missing, unique[key].css)
				}
			}
			if len(missing) == 0 {
				return svgText
			}

			newStyle := styleOpen + cdataOpen + existing + "\n" + strings.Join(missing, "\n") + cdataClose + styleClose
			newDefs := strings.Replace(defsFull, styleFull, newStyle, 1)
			return strings.Replace(svgText, defsFull, newDefs, 1)
		}

		newDefs := strings.Replace(defsFull, defsContent, styleBlock+"\n"+defsContent, 1)
		return strings.Replace(svgText, defsFull, newDefs, 1)
	}

	if open := svgOpenPattern.FindString(svgText); open != "" {
		return strings.Replace(svgText, open, open+"\n<defs>\n"+styleBlock+"\n</defs>", 1)
	}
	return svgText
}

// matchFamily picks the family string the injected rule should declare: the
// document's own spelling when any candidate matches, the declared name
// otherwise.
func matchFamily(font Font, aliases map[string]string) string {
	for _, candidate := range font.Candidates() {
		key := normalizeKey(candidate)
		if key == "" {
			continue
		}
		if family, ok := aliases[key]; ok {
			return family
		}
	}
	if font.Name != "" {
		return font.Name
	}
	if candidates := font.Candidates(); len(candidates) > 0 {
		return candidates[0]
	}
	return "CustomFont"
}

func resolveFontURL(font Font, opts InjectOptions) string {
	if opts.Embed {
		if len(font.Data) == 0 {
			return ""
		}
		return "data:" + font.mimeType() + ";base64," + base64.StdEncoding.EncodeToString(font.Data)
	}
	if font.URL == "" {
		return ""
	}
	if opts.BaseURL != "" && !strings.HasPrefix(font.URL, "http") {
		return opts.BaseURL + font.URL
	}
	return font.URL
}

func buildFontFace(family, url, format string) string {
	return "@font-face {\n" +
		"  font-family: \"" + family + "\";\n" +
		"  src: url(\"" + url + "\") format(\"" + format + "\");\n" +
		"}"
}
