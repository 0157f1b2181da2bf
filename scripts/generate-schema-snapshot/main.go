package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/goliatone/go-svgform/pkg/orchestrator"
	"github.com/goliatone/go-svgform/pkg/render"
	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
)

const snapshotRendererName = "schema-snapshot"

type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, s schema.Schema, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		templatePath = flag.String("template", "examples/fixtures/waybill.svg", "SVG template path")
		overlayPath  = flag.String("overlay", "", "optional field metadata overlay file (.json/.yaml)")
		outputPath   = flag.String("output", "examples/fixtures/waybill-schema.json", "output path for the serialized schema")
	)
	flag.Parse()

	ctx := context.Background()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	}
	if *overlayPath != "" {
		overlayFS, err := loadOverlayFS(*overlayPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load overlay: %v\n", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithFieldMetaFS(overlayFS))
	}

	orch := orchestrator.New(options...)

	_, err := orch.Generate(ctx, orchestrator.Request{
		Source:   svg.SourceFromFile(*templatePath),
		Renderer: snapshotRendererName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote schema snapshot to %s\n", *outputPath)
}

func loadOverlayFS(path string) (fstest.MapFS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}
	return fstest.MapFS{
		filepath.Base(path): {
			Data: data,
		},
	}, nil
}
