package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	svgform "github.com/goliatone/go-svgform"
	"github.com/goliatone/go-svgform/pkg/renderers/tui"
	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
	"github.com/goliatone/go-svgform/pkg/update"
	"github.com/goliatone/go-svgform/pkg/watermark"
)

// svgform-fill walks a template's fields interactively, applies the collected
// answers, and writes the filled document.
func main() {
	source := flag.String("source", "templates/waybill.svg", "SVG template path or URL")
	output := flag.String("output", "", "output file (stdout if empty)")
	seedPath := flag.String("values", "", "JSON file with seed values for the prompts")
	preview := flag.Bool("preview", false, "stamp the output with the test-document watermark")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	loader := svgform.NewLoader(svg.WithHTTPFallback(15 * time.Second))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load template: %v", err)
	}

	s, err := svgform.NewParser().Parse(ctx, doc)
	if err != nil {
		log.Fatalf("Failed to parse fields: %v", err)
	}

	seeds, err := loadSeeds(*seedPath)
	if err != nil {
		log.Fatalf("Failed to load seed values: %v", err)
	}

	renderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormatJSON))
	if err != nil {
		log.Fatalf("Failed to construct prompt renderer: %v", err)
	}

	collected, err := renderer.Render(ctx, s, svgform.RenderOptions{Values: seeds})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(1)
		}
		log.Fatalf("Failed to collect values: %v", err)
	}

	values, err := decodeValues(collected)
	if err != nil {
		log.Fatalf("Failed to decode collected values: %v", err)
	}

	filled, _, err := update.New().Apply(doc.Text(), s, values)
	if err != nil {
		log.Fatalf("Failed to apply values: %v", err)
	}
	if *preview {
		filled = watermark.Add(filled)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(filled), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
	} else {
		fmt.Println(filled)
	}
}

func loadSeeds(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seeds := map[string]any{}
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

func decodeValues(collected []byte) (map[string]schema.Value, error) {
	decoded := map[string]any{}
	if err := json.Unmarshal(collected, &decoded); err != nil {
		return nil, err
	}
	values := make(map[string]schema.Value, len(decoded))
	for key, value := range decoded {
		values[key] = schema.ValueOf(value)
	}
	return values, nil
}

func parseSource(raw string) svg.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return svg.SourceFromURL(path)
	}
	return svg.SourceFromFile(path)
}
