// Package scanfill provides scanline rasterization of closed polygonal
// outlines into boolean pixel coverage.
//
// Coverage is sampled at pixel centers: pixel (x, y) is covered exactly
// when the point (x+0.5, y+0.5) is inside the filled region under the
// chosen fill rule. Sampling is deterministic, so repeated fills of the
// same outline produce identical coverage.
package scanfill

import (
	"math"
	"sort"
)

// Point represents a 2D point (local copy to keep the package leaf-level).
type Point struct {
	X, Y float64
}

// Rule specifies how to determine which areas are inside an outline.
type Rule int

const (
	// EvenOdd uses the even-odd rule.
	EvenOdd Rule = iota
	// NonZero uses the non-zero winding rule.
	NonZero
)

// edge is a non-horizontal segment prepared for scanline sweeps,
// stored with y0 < y1 and the original winding direction.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int // +1 if the segment originally pointed down, -1 if up
}

// newEdge builds an edge from two points, reporting false for
// (near-)horizontal segments, which contribute nothing to the sweep.
func newEdge(p0, p1 Point) (edge, bool) {
	if math.Abs(p1.Y-p0.Y) < 1e-9 {
		return edge{}, false
	}
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dir: dir}, true
}

// xAt returns the x coordinate of the edge at the given y.
func (e edge) xAt(y float64) float64 {
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

// crossing is an active edge intersection on one scanline.
type crossing struct {
	x   float64
	dir int
}

// Fill rasterizes the closed loops onto a width-by-height raster,
// calling set for every covered pixel. Each loop is closed implicitly
// from its last vertex back to its first. Loops with fewer than two
// vertices are ignored.
func Fill(width, height int, loops [][]Point, rule Rule, set func(x, y int)) {
	var edges []edge
	yMin, yMax := math.MaxFloat64, -math.MaxFloat64
	for _, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		for i := range loop {
			p0 := loop[i]
			p1 := loop[(i+1)%len(loop)]
			if e, ok := newEdge(p0, p1); ok {
				edges = append(edges, e)
				yMin = math.Min(yMin, e.y0)
				yMax = math.Max(yMax, e.y1)
			}
		}
	}
	if len(edges) == 0 {
		return
	}

	y0 := int(math.Floor(yMin - 0.5))
	y1 := int(math.Ceil(yMax + 0.5))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > height {
		y1 = height
	}

	active := make([]crossing, 0, len(edges))
	for y := y0; y < y1; y++ {
		ys := float64(y) + 0.5

		active = active[:0]
		for _, e := range edges {
			if e.y0 <= ys && ys < e.y1 {
				active = append(active, crossing{x: e.xAt(ys), dir: e.dir})
			}
		}
		if len(active) == 0 {
			continue
		}
		sort.Slice(active, func(i, j int) bool { return active[i].x < active[j].x })

		if rule == NonZero {
			winding := 0
			var spanStart float64
			for _, c := range active {
				if winding == 0 {
					spanStart = c.x
				}
				winding += c.dir
				if winding == 0 {
					fillSpan(width, y, spanStart, c.x, set)
				}
			}
		} else {
			for i := 0; i+1 < len(active); i += 2 {
				fillSpan(width, y, active[i].x, active[i+1].x, set)
			}
		}
	}
}

// fillSpan covers the pixels of row y whose centers fall in [xa, xb).
func fillSpan(width, y int, xa, xb float64, set func(x, y int)) {
	x0 := int(math.Ceil(xa - 0.5))
	x1 := int(math.Ceil(xb - 0.5))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	for x := x0; x < x1; x++ {
		set(x, y)
	}
}
