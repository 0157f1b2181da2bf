package watermark

import (
	"math"
	"strings"
	"testing"
)

func TestAddRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	docs := map[string]string{
		"plain":          `<svg viewBox="0 0 800 800"><rect width="10" height="10"/></svg>`,
		"trailing bytes": "<svg viewBox=\"0 0 800 800\"><text id=\"Name.text\">Acme</text></svg>\n",
		"nested svg":     `<svg viewBox="0 0 1200 300"><svg x="1"></svg><g id="body"/></svg>`,
		"no dimensions":  `<svg><circle r="4"/></svg>`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			stamped := Add(doc)
			if stamped == doc {
				t.Fatalf("expected markers to be inserted")
			}
			if got := Remove(stamped); got != doc {
				t.Fatalf("round trip not byte-exact:\n got: %q\nwant: %q", got, doc)
			}
		})
	}
}

func TestAddInsertsBeforeClosingTag(t *testing.T) {
	t.Parallel()

	doc := `<svg viewBox="0 0 800 800"><rect/></svg>`
	stamped := Add(doc)

	want := len(computeGrid(800, 800).markers())
	if want == 0 {
		t.Fatalf("fixture unexpectedly yields no markers")
	}
	if got := strings.Count(stamped, markerLabel); got != want {
		t.Fatalf("marker count = %d, want %d", got, want)
	}
	if got := strings.Count(stamped, `pointer-events="none"`); got != want {
		t.Fatalf("pointer-events count = %d, want %d", got, want)
	}

	closing := strings.LastIndex(stamped, "</svg>")
	if strings.LastIndex(stamped, markerLabel) > closing {
		t.Fatalf("marker placed after the closing tag")
	}
	if !strings.HasSuffix(stamped, "</g>\n</svg>") {
		t.Fatalf("markers must sit immediately before the closing tag, got tail %q", stamped[len(stamped)-40:])
	}
}

func TestAddWithoutClosingTagIsNoOp(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "<svg><rect/>", "plain text"} {
		if got := Add(doc); got != doc {
			t.Fatalf("Add(%q) = %q, want unchanged", doc, got)
		}
		if got := Remove(doc); got != doc {
			t.Fatalf("Remove(%q) = %q, want unchanged", doc, got)
		}
	}
}

func TestAddSkipsDocumentsTooSmallForOneMarker(t *testing.T) {
	t.Parallel()

	doc := `<svg viewBox="0 0 60 40"><rect/></svg>`
	if got := Add(doc); got != doc {
		t.Fatalf("tiny document should come back unchanged, got %q", got)
	}
}

func TestRemoveStripsHistoricalRandomMarkers(t *testing.T) {
	t.Parallel()

	original := `<svg width="400" height="300"><text id="Name.text">Acme</text></svg>`
	historical := strings.Replace(original, "</svg>",
		`<g transform="rotate(37, 123, 45)"><text x="123" y="45" fill="black" font-size="40" pointer-events="none">TEST DOCUMENT</text></g>`+"\n"+
			`<g transform="rotate(-12, 301, 210)"><text x="301" y="210" fill="black" font-size="40" pointer-events="none">TEST DOCUMENT</text></g>`+"\n"+
			"</svg>", 1)

	if got := Remove(historical); got != original {
		t.Fatalf("historical markers not stripped:\n got: %q\nwant: %q", got, original)
	}
}

func TestRemoveLeavesUnrelatedContentAlone(t *testing.T) {
	t.Parallel()

	doc := `<svg>` +
		`<g transform="rotate(30, 1, 1)"><text x="1" y="1" pointer-events="none">Logo</text></g>` +
		`<g transform="rotate(10, 5, 5)"><text x="5" y="5">TEST DOCUMENT</text></g>` +
		`</svg>`

	if got := Remove(doc); got != doc {
		t.Fatalf("unrelated groups were modified:\n got: %q", got)
	}
}

func TestMarkerBoundsAndSeparation(t *testing.T) {
	t.Parallel()

	sizes := []struct {
		name          string
		width, height float64
	}{
		{"default", 400, 300},
		{"square", 800, 800},
		{"wide", 1200, 300},
		{"tall", 300, 1200},
		{"large", 3000, 2000},
	}

	for _, tc := range sizes {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := computeGrid(tc.width, tc.height)
			placed := g.markers()
			if len(placed) == 0 {
				t.Fatalf("no markers for %.0fx%.0f", tc.width, tc.height)
			}
			if len(placed) > maxMarkers {
				t.Fatalf("placed %d markers, cap is %d", len(placed), maxMarkers)
			}

			half := g.boxSide / 2
			for _, m := range placed {
				if m.x-half < 0 || m.x+half > tc.width || m.y-half < 0 || m.y+half > tc.height {
					t.Fatalf("marker at (%.1f, %.1f) leaves %.0fx%.0f bounds", m.x, m.y, tc.width, tc.height)
				}
			}
			for i := range placed {
				for j := i + 1; j < len(placed); j++ {
					dx := math.Abs(placed[i].x - placed[j].x)
					dy := math.Abs(placed[i].y - placed[j].y)
					if dx < g.boxSide && dy < g.boxSide {
						t.Fatalf("markers %d and %d overlap: d=(%.1f, %.1f) box=%.1f", i, j, dx, dy, g.boxSide)
					}
				}
			}
		})
	}
}

func TestGridFollowsAspectRatio(t *testing.T) {
	t.Parallel()

	wide := computeGrid(1200, 300)
	if wide.cols <= wide.rows {
		t.Fatalf("wide document: cols=%d rows=%d, want more columns", wide.cols, wide.rows)
	}
	tall := computeGrid(300, 1200)
	if tall.rows <= tall.cols {
		t.Fatalf("tall document: cols=%d rows=%d, want more rows", tall.cols, tall.rows)
	}
}

func TestGridFontSizeClamped(t *testing.T) {
	t.Parallel()

	if got := computeGrid(100, 100).fontSize; got != minFontSize {
		t.Fatalf("small document fontSize = %g, want %g", got, minFontSize)
	}
	if got := computeGrid(5000, 5000).fontSize; got != maxFontSize {
		t.Fatalf("large document fontSize = %g, want %g", got, maxFontSize)
	}
	if got := computeGrid(400, 300).fontSize; math.Abs(got-28) > 1e-9 {
		t.Fatalf("default document fontSize = %g, want 28", got)
	}
}

func TestGridHonorsMarkerCap(t *testing.T) {
	t.Parallel()

	g := computeGrid(4000, 3000)
	if g.cols*g.rows > maxMarkers {
		t.Fatalf("grid %dx%d exceeds cap %d", g.cols, g.rows, maxMarkers)
	}
	if g.cols < 1 || g.rows < 1 {
		t.Fatalf("grid degenerated to %dx%d", g.cols, g.rows)
	}
}

func TestAddUsesDefaultDimensions(t *testing.T) {
	t.Parallel()

	stamped := Add(`<svg><rect/></svg>`)
	want := len(computeGrid(400, 300).markers())
	if got := strings.Count(stamped, markerLabel); got != want {
		t.Fatalf("marker count = %d, want %d from default dimensions", got, want)
	}
}
