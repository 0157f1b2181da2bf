// Package fontpack matches uploaded font assets against the font families a
// document actually uses and injects @font-face rules so renders resolve
// them. Matching is deliberately loose: names are compared after lowering
// and stripping non-alphanumerics, while the injected rule always carries
// the document's exact family string.
package fontpack

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Font is one uploadable font asset.
type Font struct {
	// Name is the family name the asset was registered under.
	Name string
	// FileName is the original upload name. Its extension drives the format
	// and its stem doubles as a matching candidate.
	FileName string
	// URL locates the asset for browser-side rendering.
	URL string
	// Data holds the raw font bytes for embedded rendering.
	Data []byte
}

// LoadFont reads a font asset from a filesystem.
func LoadFont(fsys fs.FS, filePath, name, url string) (Font, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return Font{}, fmt.Errorf("fontpack: read font %s: %w", filePath, err)
	}
	return Font{
		Name:     name,
		FileName: path.Base(filePath),
		URL:      url,
		Data:     data,
	}, nil
}

// Format derives the CSS font format from the file extension, defaulting to
// truetype.
func (f Font) Format() string {
	switch strings.ToLower(path.Ext(f.FileName)) {
	case ".otf":
		return "opentype"
	case ".woff":
		return "woff"
	case ".woff2":
		return "woff2"
	default:
		return "truetype"
	}
}

func (f Font) mimeType() string {
	switch f.Format() {
	case "opentype":
		return "application/font-opentype"
	case "woff":
		return "application/font-woff"
	case "woff2":
		return "application/font-woff2"
	default:
		return "application/font-truetype"
	}
}

// Candidates lists the names that may match a document alias: the declared
// name first, then the upload's file stem.
func (f Font) Candidates() []string {
	var out []string
	if f.Name != "" {
		out = append(out, f.Name)
	}
	base := path.Base(f.FileName)
	if stem := strings.TrimSuffix(base, path.Ext(base)); stem != "" && stem != "." {
		out = append(out, stem)
	}
	return out
}
