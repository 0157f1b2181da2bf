package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	svgform "github.com/goliatone/go-svgform"
	"github.com/goliatone/go-svgform/pkg/export"
	"github.com/goliatone/go-svgform/pkg/orchestrator"
	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
	"github.com/goliatone/go-svgform/pkg/update"
	"github.com/goliatone/go-svgform/pkg/watermark"
)

func main() {
	op := flag.String("op", "form", "operation: form, schema, apply, watermark, unwatermark, sanitize, minify, export")
	renderer := flag.String("renderer", "htmlform", "renderer to use with -op form")
	output := flag.String("output", "", "output file (stdout if empty)")
	source := flag.String("source", "templates/waybill.svg", "SVG template path or URL")
	valuesPath := flag.String("values", "", "JSON file with field values for -op apply")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	result, err := run(ctx, *op, src, *renderer, *valuesPath)
	if err != nil {
		log.Fatalf("Failed to run %s: %v", *op, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(result))
	}
}

func run(ctx context.Context, op string, src svg.Source, renderer, valuesPath string) ([]byte, error) {
	switch op {
	case "form":
		gen := orchestrator.New()
		return gen.Generate(ctx, orchestrator.Request{
			Source:   src,
			Renderer: renderer,
		})
	case "schema":
		s, _, err := parseSchema(ctx, src)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(s, "", "  ")
	case "apply":
		if valuesPath == "" {
			return nil, fmt.Errorf("-values is required for -op apply")
		}
		values, err := loadValues(valuesPath)
		if err != nil {
			return nil, err
		}
		s, doc, err := parseSchema(ctx, src)
		if err != nil {
			return nil, err
		}
		mutated, _, err := update.New().Apply(doc.Text(), s, values)
		if err != nil {
			return nil, err
		}
		return []byte(mutated), nil
	case "watermark":
		doc, err := loadDocument(ctx, src)
		if err != nil {
			return nil, err
		}
		return []byte(watermark.Add(doc.Text())), nil
	case "unwatermark":
		doc, err := loadDocument(ctx, src)
		if err != nil {
			return nil, err
		}
		return []byte(watermark.Remove(doc.Text())), nil
	case "sanitize":
		doc, err := loadDocument(ctx, src)
		if err != nil {
			return nil, err
		}
		return []byte(svg.Sanitize(doc.Text())), nil
	case "minify":
		doc, err := loadDocument(ctx, src)
		if err != nil {
			return nil, err
		}
		return []byte(svg.Minify(doc.Text())), nil
	case "export":
		s, _, err := parseSchema(ctx, src)
		if err != nil {
			return nil, err
		}
		return export.New().JSON(s)
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

func loadDocument(ctx context.Context, src svg.Source) (svg.Document, error) {
	loader := svgform.NewLoader(svg.WithHTTPFallback(15 * time.Second))
	return loader.Load(ctx, src)
}

func parseSchema(ctx context.Context, src svg.Source) (schema.Schema, svg.Document, error) {
	doc, err := loadDocument(ctx, src)
	if err != nil {
		return nil, svg.Document{}, err
	}
	s, err := svgform.NewParser().Parse(ctx, doc)
	if err != nil {
		return nil, svg.Document{}, err
	}
	return s, doc, nil
}

func loadValues(path string) (map[string]schema.Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	decoded := map[string]any{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
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
