// Package fields declares the public contract for parsing SVG templates into
// ordered field schemas. The implementation lives under internal/fields.
package fields

import (
	"context"
	"errors"

	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
)

// ErrMalformed reports that a payload could not be parsed as XML. It is the
// only hard failure the parser produces; match it with errors.Is.
var ErrMalformed = errors.New("fields: malformed svg document")

// Parser extracts the field schema encoded in element id attributes. The
// schema preserves document encounter order; parsing never mutates the
// document.
type Parser interface {
	Parse(ctx context.Context, doc svg.Document) (schema.Schema, error)
}

// ParserOptions exposes parsing toggles.
type ParserOptions struct {
	// NormalizeUnknownKinds maps kinds outside the recognised keyword set to
	// "text" instead of keeping the base-id fallback. Off by default: the
	// fallback is part of the grammar and stored schemas rely on it.
	NormalizeUnknownKinds bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithNormalizedKinds toggles mapping of unrecognised kinds to "text".
func WithNormalizedKinds(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.NormalizeUnknownKinds = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level svgform package to avoid import cycles.
