package fldraw

import (
	"math"

	"github.com/gogpu/fldraw/internal/raster"
)

// maxArcSegments bounds the tessellation of huge arcs.
const maxArcSegments = 1024

// arcSweep normalizes the angles of an arc: the sweep runs
// counter-clockwise from a1 and wraps through 0 when a2 < a1. Sweeps of a
// full turn or more draw the whole ellipse.
func arcSweep(a1, a2 float64) (sweep float64, full bool) {
	s := a2 - a1
	switch {
	case math.Abs(s) >= 360:
		return 360, true
	case s < 0:
		s += 360
	}
	return s, false
}

// arcSegments returns how many chords approximate a sweep of deg degrees
// on an ellipse whose larger radius is r.
func arcSegments(deg, r float64) int {
	n := int(math.Ceil(math.Abs(deg) * math.Pi / 180 * math.Sqrt(math.Max(r, 1))))
	return min(max(n, 4), maxArcSegments)
}

// ellipsePoints returns the points of an elliptic arc around (cx, cy),
// from a1 over sweep degrees, counter-clockwise on screen. Both ends are
// included.
func ellipsePoints(cx, cy, rx, ry, a1, sweep float64) []fpoint {
	n := arcSegments(sweep, math.Max(rx, ry))
	pts := make([]fpoint, n+1)
	for i := 0; i <= n; i++ {
		s, c := sincosDeg(a1 + sweep*float64(i)/float64(n))
		pts[i] = fpoint{cx + rx*c, cy - ry*s}
	}
	return pts
}

// Arc implements Canvas.
func (d *Driver) Arc(x, y, w, h int, a1, a2 float64) { d.ArcUnscaled(x, y, w, h, a1, a2) }

// ArcUnscaled outlines the arc of the ellipse inscribed in the w x h box at
// (x, y).
func (d *Driver) ArcUnscaled(x, y, w, h int, a1, a2 float64) {
	if w <= 0 || h <= 0 || a1 == a2 {
		return
	}
	rx, ry := float64(w-1)/2, float64(h-1)/2
	if rx == 0 && ry == 0 {
		return
	}
	sweep, full := arcSweep(a1, a2)
	d.strokePath(ellipsePoints(float64(x)+rx, float64(y)+ry, rx, ry, a1, sweep), full)
}

// Pie implements Canvas.
func (d *Driver) Pie(x, y, w, h int, a1, a2 float64) { d.PieUnscaled(x, y, w, h, a1, a2) }

// PieUnscaled fills the sector of the ellipse covering the w x h box at
// (x, y).
func (d *Driver) PieUnscaled(x, y, w, h int, a1, a2 float64) {
	if w <= 0 || h <= 0 || a1 == a2 {
		return
	}
	rx, ry := float64(w)/2, float64(h)/2
	cx, cy := float64(x)+rx, float64(y)+ry
	sweep, full := arcSweep(a1, a2)
	arc := ellipsePoints(cx, cy, rx, ry, a1, sweep)
	c := make([]raster.Point, 0, len(arc)+1)
	if !full {
		c = append(c, raster.Point{X: cx, Y: cy})
	}
	for _, p := range arc {
		c = append(c, p.raster())
	}
	d.fillContours([][]raster.Point{c}, raster.NonZero)
}

// Circle draws a circle of radius r around (x, y) through the current
// transform, which may turn it into an ellipse. Inside a polygon it is
// filled, otherwise outlined.
func (d *Driver) Circle(x, y, r float64) {
	if r <= 0 {
		return
	}
	m := d.matrix.Current()
	cx, cy := m.Apply(x, y)
	d.EllipseUnscaled(cx, cy, r*m.RadiusX(), r*m.RadiusY())
}

// EllipseUnscaled implements Unscaled. Inside a complex polygon the
// ellipse becomes one of its contours.
func (d *Driver) EllipseUnscaled(x, y, rx, ry float64) {
	if rx <= 0 && ry <= 0 {
		return
	}
	switch d.path.kind {
	case pathPolygon:
		pts := ellipsePoints(x, y, rx, ry, 0, 360)
		c := make([]raster.Point, len(pts)-1)
		for i := range c {
			c[i] = pts[i].raster()
		}
		d.fillContours([][]raster.Point{c}, raster.NonZero)
	case pathComplex:
		d.path.gap()
		for _, p := range ellipsePoints(x, y, rx, ry, 0, 360) {
			d.path.add(p)
		}
		d.path.gap()
	default:
		d.strokePath(ellipsePoints(x, y, rx, ry, 0, 360), true)
	}
}

// ArcPath adds the vertices of an arc of radius r around (x, y) from start
// to end degrees to the current path.
func (d *Driver) ArcPath(x, y, r, start, end float64) {
	for _, p := range arcPathPoints(x, y, r, start, end, d.matrix.Current()) {
		d.Vertex(p.x, p.y)
	}
}

// arcPathPoints tessellates an ArcPath in untransformed coordinates; m
// only sizes the tessellation.
func arcPathPoints(x, y, r, start, end float64, m Matrix) []fpoint {
	sweep := end - start
	if sweep == 0 || r == 0 {
		return nil
	}
	rt := math.Abs(r) * math.Max(m.RadiusX(), m.RadiusY())
	n := arcSegments(sweep, rt)
	pts := make([]fpoint, n+1)
	for i := 0; i <= n; i++ {
		s, c := sincosDeg(start + sweep*float64(i)/float64(n))
		pts[i] = fpoint{x + r*c, y - r*s}
	}
	return pts
}

// Curve adds a cubic Bezier from (x0, y0) to (x3, y3) to the current path.
func (d *Driver) Curve(x0, y0, x1, y1, x2, y2, x3, y3 float64) {
	for _, p := range curvePoints(x0, y0, x1, y1, x2, y2, x3, y3, d.matrix.Current()) {
		d.Vertex(p.x, p.y)
	}
}

// curvePoints flattens a cubic Bezier; the segment count follows the
// transformed length of its control polygon.
func curvePoints(x0, y0, x1, y1, x2, y2, x3, y3 float64, m Matrix) []fpoint {
	ctl := [4]fpoint{{x0, y0}, {x1, y1}, {x2, y2}, {x3, y3}}
	var l float64
	for i := 0; i < 3; i++ {
		ax, ay := m.Apply(ctl[i].x, ctl[i].y)
		bx, by := m.Apply(ctl[i+1].x, ctl[i+1].y)
		l += math.Hypot(bx-ax, by-ay)
	}
	n := min(max(int(math.Sqrt(l)*2), 4), 100)
	pts := make([]fpoint, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, c, e := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		pts[i] = fpoint{
			a*x0 + b*x1 + c*x2 + e*x3,
			a*y0 + b*y1 + c*y2 + e*y3,
		}
	}
	return pts
}
