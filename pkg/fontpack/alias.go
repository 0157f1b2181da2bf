package fontpack

import (
	"regexp"
	"strings"
)

var (
	styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)
	styleAttrPattern  = regexp.MustCompile(`(?i)style\s*=\s*["']([^"']+)["']`)
	cssFamilyPattern  = regexp.MustCompile(`(?i)font-family\s*:\s*([^;,\n]+)`)
	familyAttrPattern = regexp.MustCompile(`(?i)font-family\s*=\s*["']([^"']+)["']`)
	nonAlnumPattern   = regexp.MustCompile(`[^a-z0-9]`)
)

// normalizeKey reduces a family name to its lowercase alphanumerics so
// "My Font", "my-font" and "MyFont" all collide.
func normalizeKey(name string) string {
	return nonAlnumPattern.ReplaceAllString(strings.ToLower(name), "")
}

// ExtractAliases maps normalized family keys to the exact family strings a
// document uses, scanning <style> blocks, inline style attributes, and
// font-family XML attributes. Only the first family of a comma-separated
// stack counts; the rest are fallbacks the document does not depend on.
func ExtractAliases(svgText string) map[string]string {
	aliases := make(map[string]string)

	add := func(value string) {
		family := strings.TrimSpace(strings.SplitN(value, ",", 2)[0])
		family = strings.Trim(family, `'"`)
		if family == "" {
			return
		}
		if key := normalizeKey(family); key != "" {
			aliases[key] = family
		}
	}

	for _, block := range styleBlockPattern.FindAllStringSubmatch(svgText, -1) {
		for _, m := range cssFamilyPattern.FindAllStringSubmatch(block[1], -1) {
			add(m[1])
		}
	}
	for _, attr := range styleAttrPattern.FindAllStringSubmatch(svgText, -1) {
		for _, m := range cssFamilyPattern.FindAllStringSubmatch(attr[1], -1) {
			add(m[1])
		}
	}
	for _, m := range familyAttrPattern.FindAllStringSubmatch(svgText, -1) {
		add(m[1])
	}
	return aliases
}

// Match returns the exact family string the document uses for the first
// candidate whose normalized key appears in it. Injected rules built from
// the returned string are guaranteed to resolve.
func Match(svgText string, candidates []string) (string, bool) {
	aliases := ExtractAliases(svgText)
	for _, candidate := range candidates {
		key := normalizeKey(candidate)
		if key == "" {
			continue
		}
		if family, ok := aliases[key]; ok {
			return family, true
		}
	}
	return "", false
}
