package svgform

import (
	"io/fs"

	"github.com/goliatone/go-svgform/pkg/renderers/htmlform"
)

// EmbeddedTemplates exposes the built-in htmlform renderer templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	fsys := htmlform.TemplatesFS()
	return fsys
}
