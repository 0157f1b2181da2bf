package svgform

import (
	"io/fs"

	"github.com/goliatone/go-svgform/pkg/renderers/htmlform"
)

// AssetsFS exposes the bundled form stylesheet so Go applications can serve
// it without a separate asset pipeline.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(svgform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return htmlform.AssetsFS()
}
