package fontpack

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestExtractAliases(t *testing.T) {
	t.Parallel()

	const doc = `<svg>
<style>
.title { font-family: 'Dancing Script', cursive; }
.body { font-family: serif; }
</style>
<text style="font-family: Great Vibes; fill: red">a</text>
<text font-family="Roboto Mono, monospace">b</text>
</svg>`

	want := map[string]string{
		"dancingscript": "Dancing Script",
		"serif":         "serif",
		"greatvibes":    "Great Vibes",
		"robotomono":    "Roboto Mono",
	}
	if diff := cmp.Diff(want, ExtractAliases(doc)); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAliasesKeepsExactSpelling(t *testing.T) {
	t.Parallel()

	aliases := ExtractAliases(`<svg><text font-family="Pinyon-Script">x</text></svg>`)
	if got := aliases["pinyonscript"]; got != "Pinyon-Script" {
		t.Fatalf("alias = %q, want the document's exact spelling", got)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	doc := `<svg><text font-family="Dancing Script">x</text></svg>`

	family, ok := Match(doc, []string{"Unrelated", "DancingScript"})
	if !ok || family != "Dancing Script" {
		t.Fatalf("Match = %q, %v; want exact family via normalized candidate", family, ok)
	}

	if _, ok := Match(doc, []string{"Nope"}); ok {
		t.Fatalf("unexpected match")
	}
	if _, ok := Match(doc, nil); ok {
		t.Fatalf("match with no candidates")
	}
}

func TestFontCandidatesAndFormat(t *testing.T) {
	t.Parallel()

	font := Font{Name: "Dancing Script", FileName: "DancingScript-Regular.ttf"}
	want := []string{"Dancing Script", "DancingScript-Regular"}
	if diff := cmp.Diff(want, font.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	formats := map[string]string{
		"a.ttf":   "truetype",
		"a.TTF":   "truetype",
		"a.otf":   "opentype",
		"a.woff":  "woff",
		"a.woff2": "woff2",
		"a.bin":   "truetype",
		"":        "truetype",
	}
	for file, want := range formats {
		if got := (Font{FileName: file}).Format(); got != want {
			t.Fatalf("Format(%q) = %q, want %q", file, got, want)
		}
	}
}

func TestLoadFont(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"fonts/DancingScript-Regular.ttf": {Data: []byte{0x00, 0x01, 0x02}},
	}

	font, err := LoadFont(fsys, "fonts/DancingScript-Regular.ttf", "Dancing Script", "/media/ds.ttf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if font.FileName != "DancingScript-Regular.ttf" || font.Name != "Dancing Script" {
		t.Fatalf("unexpected font: %+v", font)
	}
	if len(font.Data) != 3 {
		t.Fatalf("data not loaded: %v", font.Data)
	}

	if _, err := LoadFont(fsys, "fonts/missing.ttf", "X", ""); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
