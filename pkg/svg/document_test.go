package svg

import (
	"strings"
	"testing"
)

func TestNewDocumentValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewDocument(nil, []byte("<svg/>")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromFS("tpl.svg"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestDocumentRawIsDefensiveCopy(t *testing.T) {
	t.Parallel()

	payload := []byte("<svg></svg>")
	doc := MustNewDocument(SourceFromFS("tpl.svg"), payload)

	payload[1] = 'x'
	if doc.Text() != "<svg></svg>" {
		t.Fatalf("document shared caller storage: %q", doc.Text())
	}

	raw := doc.Raw()
	raw[1] = 'y'
	if doc.Text() != "<svg></svg>" {
		t.Fatalf("document shared returned storage: %q", doc.Text())
	}
}

func TestDocumentFromString(t *testing.T) {
	t.Parallel()

	doc, err := DocumentFromString("inline.svg", "<svg/>")
	if err != nil {
		t.Fatalf("document from string: %v", err)
	}
	if doc.Location() != "inline.svg" {
		t.Fatalf("location = %q", doc.Location())
	}
	if doc.Source().Kind() != SourceKindFS {
		t.Fatalf("kind = %q", doc.Source().Kind())
	}
}

func TestSourceFromURLPanicsOnInvalid(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	SourceFromURL("://not-a-url")
}

func TestSanitizeStripsScripts(t *testing.T) {
	t.Parallel()

	doc := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script><text id="Company_Name.text" onclick="steal()">Sample Company</text></svg>`
	got := Sanitize(doc)

	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("script survived sanitization: %q", got)
	}
	if strings.Contains(got, "onclick") {
		t.Fatalf("event handler survived sanitization: %q", got)
	}
	if !strings.Contains(got, `id="Company_Name.text"`) {
		t.Fatalf("field id stripped: %q", got)
	}
	if !strings.Contains(got, "Sample Company") {
		t.Fatalf("text content stripped: %q", got)
	}
}

func TestSanitizeEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Sanitize("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestSanitizeKeepsCleanFieldElements(t *testing.T) {
	t.Parallel()

	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 300">` +
		`<text id="Company_Name.text.max_40"><tspan x="10" y="20">Sample Company</tspan></text>` +
		`<text id="Service.select_Express"><tspan>Express</tspan></text>` +
		`<text id="Service.select_Standard" opacity="0"><tspan>Standard</tspan></text>` +
		`<g id="Fragile.checkbox" opacity="0"><path d="M0 0 L5 5"/></g>` +
		`</svg>`
	got := Sanitize(doc)

	for _, marker := range []string{
		`id="Company_Name.text.max_40"`,
		`id="Service.select_Express"`,
		`id="Service.select_Standard"`,
		`id="Fragile.checkbox"`,
		`opacity="0"`,
		"Sample Company",
		"Standard",
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("clean template lost %q after sanitization:\n%s", marker, got)
		}
	}
}
