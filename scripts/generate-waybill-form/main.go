package main

import (
	"context"
	"fmt"
	"os"

	svgform "github.com/goliatone/go-svgform"
	"github.com/goliatone/go-svgform/pkg/svg"
)

func main() {
	ctx := context.Background()

	const (
		templatePath = "examples/fixtures/waybill.svg"
		rendererName = "htmlform"
		outputPath   = "examples/fixtures/waybill-form.html"
	)

	source := svg.SourceFromFile(templatePath)
	html, err := svgform.GenerateHTML(ctx, source, rendererName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate form: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, html, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated waybill form HTML (%d bytes) → %s\n", len(html), outputPath)
}
