package svgform

import (
	"context"

	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
	"github.com/goliatone/go-svgform/pkg/update"
	"github.com/goliatone/go-svgform/pkg/watermark"
)

// ParseFields extracts the field schema encoded in the document's element ids.
func ParseFields(ctx context.Context, doc svg.Document) (schema.Schema, error) {
	return NewParser().Parse(ctx, doc)
}

// ApplyUpdates writes the supplied values into the SVG text and returns the
// updated document along with the refreshed schema.
func ApplyUpdates(svgText string, s schema.Schema, updates map[string]schema.Value) (string, schema.Schema, error) {
	return update.New().Apply(svgText, s, updates)
}

// AddWatermark overlays the test-document marker grid onto the SVG text.
func AddWatermark(svgText string) string {
	return watermark.Add(svgText)
}

// RemoveWatermark strips watermark markers, restoring the exact pre-watermark
// bytes for documents produced by AddWatermark.
func RemoveWatermark(svgText string) string {
	return watermark.Remove(svgText)
}
