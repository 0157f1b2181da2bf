package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"

	svgform "github.com/goliatone/go-svgform"
	"github.com/goliatone/go-svgform/pkg/fields"
	"github.com/goliatone/go-svgform/pkg/schema"
	"github.com/goliatone/go-svgform/pkg/svg"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint SVG templates for field grammar problems.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"examples/fixtures/waybill.svg",
		}
	}

	ctx := context.Background()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := svg.NewDocument(svg.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}

	strict, err := svgform.NewParser().Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse fields: %w", err)
	}
	normalized, err := svgform.NewParser(fields.WithNormalizedKinds(true)).Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse fields: %w", err)
	}

	result := lintSchema(path, strict, normalized)
	result = append(result, lintElements(path, doc.Text())...)
	return result, nil
}

// lintSchema flags problems visible in the parsed schema: unrecognised kinds,
// dangling depends_ references, degenerate selects, and max_ arguments the
// parser had to drop.
func lintSchema(file string, strict, normalized schema.Schema) []violation {
	var result []violation

	for _, field := range strict {
		location := fmt.Sprintf("field %q", field.ID)

		if norm, ok := normalized.ByID(field.ID); ok && norm.Kind != field.Kind {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("kind %q is not a recognised type; add a type token such as .text", field.Kind),
			})
		}

		if field.DependsOn != "" && !strict.Has(field.DependsOn) {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("depends_ references unknown field %q", field.DependsOn),
			})
		}

		if field.Kind == schema.FieldKindSelect && len(field.Options) < 2 {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("select defines %d option; at least 2 are expected", len(field.Options)),
			})
		}

		if strings.Contains(field.SVGElementID, ".max_") && field.Max == nil {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  "max_ argument must be an integer",
			})
		}
	}

	var trackingIDs []string
	for _, field := range strict {
		if field.TrackingID {
			trackingIDs = append(trackingIDs, field.ID)
		}
	}
	if len(trackingIDs) > 1 {
		result = append(result, violation{
			file:     file,
			location: fmt.Sprintf("field %q", trackingIDs[1]),
			message:  fmt.Sprintf("multiple tracking_id fields (%s); only one is honoured", strings.Join(trackingIDs, ", ")),
		})
	}

	return result
}

// lintElements flags problems only visible on the raw element tree: ids the
// parser skips outright and bases redefined by later elements.
func lintElements(file, svgText string) []violation {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(svgText); err != nil {
		return nil
	}
	root := tree.Root()
	if root == nil {
		return nil
	}

	var result []violation
	definitions := map[string][]string{}

	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if id := child.SelectAttrValue("id", ""); id != "" {
				result = append(result, lintID(file, id)...)
				if !isSelectOption(id) {
					base := baseOf(id)
					definitions[base] = append(definitions[base], id)
				}
			}
			walk(child)
		}
	}
	walk(root)

	bases := make([]string, 0, len(definitions))
	for base := range definitions {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	for _, base := range bases {
		ids := definitions[base]
		if len(ids) > 1 {
			result = append(result, violation{
				file:     file,
				location: fmt.Sprintf("field %q", base),
				message:  fmt.Sprintf("defined by %d elements; the last definition wins", len(ids)),
			})
		}
	}

	return result
}

func lintID(file, id string) []violation {
	if isSelectOption(id) {
		return nil
	}

	tokens := tokensOf(id)
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "track_") && i != len(tokens)-1 {
			return []violation{{
				file:     file,
				location: fmt.Sprintf("element %q", id),
				message:  "track_ role must be the final token; the element is skipped",
			}}
		}
	}
	return nil
}

// baseOf returns the field id an element contributes to: the first
// dot-delimited token.
func baseOf(id string) string {
	base, _, _ := strings.Cut(stripLink(id), ".")
	return base
}

func isSelectOption(id string) bool {
	for _, tok := range append([]string{baseOf(id)}, tokensOf(id)...) {
		if strings.HasPrefix(tok, "select_") {
			return true
		}
	}
	return false
}

// tokensOf splits an id into its modifier tokens. The link URL is dropped
// first because URLs contain dots.
func tokensOf(id string) []string {
	parts := strings.Split(stripLink(id), ".")
	return parts[1:]
}

func stripLink(id string) string {
	head, _, _ := strings.Cut(id, ".link_")
	return head
}
