package svgform

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-svgform/pkg/renderers/htmlform"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	fsys := AssetsFS()
	data, err := fs.ReadFile(fsys, htmlform.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".svgform") {
		t.Fatalf("expected stylesheet to style the form shell")
	}
}

func TestEmbeddedTemplatesContainFormShell(t *testing.T) {
	fsys := EmbeddedTemplates()
	data, err := fs.ReadFile(fsys, "templates/form.html")
	if err != nil {
		t.Fatalf("expected form shell template to be readable: %v", err)
	}
	if !strings.Contains(string(data), "svgform") {
		t.Fatalf("expected form shell template to carry the form class")
	}
}
