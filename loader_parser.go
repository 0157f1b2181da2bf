package svgform

import (
	internalFields "github.com/goliatone/go-svgform/internal/fields"
	internalLoader "github.com/goliatone/go-svgform/internal/svgload"
	"github.com/goliatone/go-svgform/pkg/fields"
	"github.com/goliatone/go-svgform/pkg/svg"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...svg.LoaderOption) svg.Loader {
	cfg := svg.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a field parser backed by the internal implementation.
func NewParser(options ...fields.ParserOption) fields.Parser {
	cfg := fields.NewParserOptions(options...)
	return internalFields.New(cfg)
}
