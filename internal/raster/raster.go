// Package raster fills polygons on an integer pixel grid.
//
// A pixel belongs to a polygon when its center lies inside it. Filled
// pixels are reported as horizontal spans so the caller can clip them and
// hand them to whatever writes device memory.
package raster

import (
	"image"
	"math"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points crossed an odd number of times. Nested
	// contours become holes regardless of their direction.
	EvenOdd
)

// SpanFunc receives the pixels x0 <= x < x1 of row y.
type SpanFunc func(y, x0, x1 int)

// Rasterizer performs scanline rasterization. It reuses its buffers
// between calls and is not safe for concurrent use.
type Rasterizer struct {
	edges []Edge
	aet   *ActiveEdgeTable
}

// NewRasterizer creates a rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{aet: NewActiveEdgeTable()}
}

// Fill rasterizes the closed contours restricted to bounds. Each contour
// is closed implicitly from its last point back to its first.
func (r *Rasterizer) Fill(contours [][]Point, rule FillRule, bounds image.Rectangle, span SpanFunc) {
	r.edges = r.edges[:0]
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		for i := range c {
			p0, p1 := c[i], c[(i+1)%len(c)]
			if p0.Y == p1.Y {
				continue
			}
			e := NewEdge(p0, p1)
			r.edges = append(r.edges, e)
			yMin = math.Min(yMin, e.y0)
			yMax = math.Max(yMax, e.y1)
		}
	}
	if len(r.edges) == 0 {
		return
	}

	y0 := int(math.Floor(yMin))
	y1 := int(math.Ceil(yMax))
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if y1 > bounds.Max.Y {
		y1 = bounds.Max.Y
	}
	for y := y0; y < y1; y++ {
		r.scanline(y, rule, bounds, span)
	}
}

// FillPolygon is Fill for a single contour.
func (r *Rasterizer) FillPolygon(points []Point, rule FillRule, bounds image.Rectangle, span SpanFunc) {
	r.Fill([][]Point{points}, rule, bounds, span)
}

func (r *Rasterizer) scanline(y int, rule FillRule, bounds image.Rectangle, span SpanFunc) {
	sy := float64(y) + 0.5
	r.aet.Clear()
	for i := range r.edges {
		if r.edges[i].Spans(sy) {
			r.aet.AddAtY(r.edges[i], sy)
		}
	}
	active := r.aet.Edges()
	if len(active) < 2 {
		return
	}
	r.aet.Sort()

	emit := func(xa, xb float64) {
		// Pixel x is inside when xa <= x+0.5 < xb.
		x0 := int(math.Ceil(xa - 0.5))
		x1 := int(math.Ceil(xb - 0.5))
		if x0 < bounds.Min.X {
			x0 = bounds.Min.X
		}
		if x1 > bounds.Max.X {
			x1 = bounds.Max.X
		}
		if x0 < x1 {
			span(y, x0, x1)
		}
	}

	if rule == EvenOdd {
		for i := 0; i+1 < len(active); i += 2 {
			emit(active[i].x, active[i+1].x)
		}
		return
	}
	winding := 0
	var start float64
	for _, e := range active {
		if winding == 0 {
			start = e.x
		}
		winding += e.dir
		if winding == 0 {
			emit(start, e.x)
		}
	}
}
