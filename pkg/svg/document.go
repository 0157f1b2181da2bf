// Package svg wraps SVG template payloads with origin metadata and the
// document-level helpers the engines share: dimension probing, safe
// minification, and upload sanitization.
package svg

import "errors"

// Source identifies where an SVG document originated so loaders can operate
// on files, fs.FS entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw SVG payload and its origin. Engines operate on the
// text payload; the wrapper keeps provenance for error reporting and caching.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("svg: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("svg: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// DocumentFromString wraps literal SVG text under an fs-style source name.
func DocumentFromString(name, svgText string) (Document, error) {
	return NewDocument(SourceFromFS(name), []byte(svgText))
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the SVG payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Text returns the SVG payload as a string.
func (d Document) Text() string {
	return string(d.raw)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
