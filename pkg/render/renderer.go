package render

import (
	"context"

	"github.com/goliatone/go-svgform/pkg/schema"
)

// Renderer converts a field schema into a byte representation of a fill-in
// form (HTML, terminal prompts, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, s schema.Schema, options RenderOptions) ([]byte, error)
}
