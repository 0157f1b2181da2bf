package watermark

import "math"

const (
	markerLabel  = "TEST DOCUMENT"
	markerAngle  = -45.0
	fontScale    = 0.08
	minFontSize  = 14.0
	maxFontSize  = 44.0
	glyphAspect  = 0.6
	safetyBuffer = 8.0
	// Margins are asymmetric: markers hug the top-left edge and leave the
	// bottom-right corner clear for legends and signatures.
	leadingMargin  = 16.0
	trailingMargin = 40.0
	maxMarkers     = 60
	shearFactor    = 0.18
)

// grid is the computed marker layout for one document size. Spacing is the
// cell size after fitting the grid; it is never below the minimum
// non-overlapping distance on an axis with more than one cell.
type grid struct {
	width, height float64
	fontSize      float64
	// boxSide is the side of the axis-aligned bound of one rotated marker.
	boxSide    float64
	cols, rows int
	colSpacing float64
	rowSpacing float64
}

type marker struct {
	x, y float64
}

// computeGrid derives the densest cols x rows layout whose cells respect the
// minimum spacing, biased toward columns on wide documents and rows on tall
// ones, capped at maxMarkers total.
func computeGrid(width, height float64) grid {
	fontSize := (width + height) / 2 * fontScale
	if fontSize < minFontSize {
		fontSize = minFontSize
	}
	if fontSize > maxFontSize {
		fontSize = maxFontSize
	}

	textWidth := float64(len(markerLabel)) * glyphAspect * fontSize
	textHeight := fontSize
	boxSide := (textWidth + textHeight) * math.Sqrt2 / 2
	minSpacing := boxSide + safetyBuffer

	usableWidth := width - leadingMargin - trailingMargin
	usableHeight := height - leadingMargin - trailingMargin

	cols := int(usableWidth / minSpacing)
	rows := int(usableHeight / minSpacing)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	for cols*rows > maxMarkers {
		if cols >= rows {
			cols--
		} else {
			rows--
		}
	}

	return grid{
		width:      width,
		height:     height,
		fontSize:   fontSize,
		boxSide:    boxSide,
		cols:       cols,
		rows:       rows,
		colSpacing: usableWidth / float64(cols),
		rowSpacing: usableHeight / float64(rows),
	}
}

// markers lays out the surviving grid cells. Every row shifts right by a
// bounded shear so the pattern reads diagonally; candidates whose center
// comes within half a bounding box of any document edge are dropped, never
// clamped.
func (g grid) markers() []marker {
	half := g.boxSide / 2
	var out []marker
	for row := 0; row < g.rows; row++ {
		shear := shearFactor * g.colSpacing * float64(row)
		if bound := g.colSpacing / 2; shear > bound {
			shear = bound
		}
		y := leadingMargin + g.rowSpacing*(float64(row)+0.5)
		if y < half || y > g.height-half {
			continue
		}
		for col := 0; col < g.cols; col++ {
			x := leadingMargin + g.colSpacing*(float64(col)+0.5) + shear
			if x < half || x > g.width-half {
				continue
			}
			out = append(out, marker{x: x, y: y})
		}
	}
	return out
}
