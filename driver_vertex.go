package fldraw

import (
	"fmt"

	"github.com/gogpu/fldraw/internal/raster"
)

type pathKind int

const (
	pathIdle pathKind = iota
	pathPoints
	pathLine
	pathLoop
	pathPolygon
	pathComplex
)

// vertexBuilder collects device vertices between a Begin and End call.
type vertexBuilder struct {
	kind     pathKind
	pts      []fpoint
	contours [][]fpoint
}

func (b *vertexBuilder) begin(k pathKind) {
	b.kind = k
	b.pts = b.pts[:0]
	b.contours = nil
}

// add appends p unless it repeats the previous vertex.
func (b *vertexBuilder) add(p fpoint) {
	if n := len(b.pts); n > 0 && b.pts[n-1] == p {
		return
	}
	b.pts = append(b.pts, p)
}

// gap closes the current contour of a complex polygon.
func (b *vertexBuilder) gap() {
	if len(b.pts) == 0 {
		return
	}
	c := make([]fpoint, len(b.pts))
	copy(c, b.pts)
	if len(c) > 1 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	b.contours = append(b.contours, c)
	b.pts = b.pts[:0]
}

// end returns to IDLE and hands over the collected vertices.
func (b *vertexBuilder) end() []fpoint {
	pts := b.pts
	b.pts = nil
	b.kind = pathIdle
	return pts
}

// BeginPoints starts a list of separate points.
func (d *Driver) BeginPoints() { d.path.begin(pathPoints) }

// BeginLine starts an open polyline.
func (d *Driver) BeginLine() { d.path.begin(pathLine) }

// BeginLoop starts a closed polyline.
func (d *Driver) BeginLoop() { d.path.begin(pathLoop) }

// BeginPolygon starts a filled convex polygon.
func (d *Driver) BeginPolygon() { d.path.begin(pathPolygon) }

// BeginComplexPolygon starts a filled polygon that may self-intersect and
// have holes separated by Gap.
func (d *Driver) BeginComplexPolygon() { d.path.begin(pathComplex) }

// Vertex adds (x, y) through the current transform.
func (d *Driver) Vertex(x, y float64) {
	if d.path.kind == pathIdle {
		d.report(fmt.Errorf("%w: (%g, %g)", ErrVertexOutsidePath, x, y))
		return
	}
	d.TransformedVertexUnscaled(d.matrix.Current().Apply(x, y))
}

// TransformedVertex adds (x, y) without applying the transform.
func (d *Driver) TransformedVertex(x, y float64) { d.TransformedVertexUnscaled(x, y) }

// TransformedVertexUnscaled implements Unscaled.
func (d *Driver) TransformedVertexUnscaled(x, y float64) {
	if d.path.kind == pathIdle {
		d.report(fmt.Errorf("%w: (%g, %g)", ErrVertexOutsidePath, x, y))
		return
	}
	d.path.add(fpoint{clampCoord(x), clampCoord(y)})
}

// Gap ends the current contour of a complex polygon.
func (d *Driver) Gap() {
	if d.path.kind == pathComplex {
		d.path.gap()
	}
}

// EndPoints plots every collected vertex.
func (d *Driver) EndPoints() {
	for _, p := range d.path.end() {
		d.plot(roundPixel(p.x), roundPixel(p.y))
	}
}

// EndLine strokes the collected vertices as an open polyline.
func (d *Driver) EndLine() {
	d.strokePath(d.path.end(), false)
}

// EndLoop strokes the collected vertices as a closed polyline.
func (d *Driver) EndLoop() {
	d.strokePath(d.path.end(), true)
}

// EndPolygon fills the collected vertices. Fewer than three vertices are
// drawn as a line.
func (d *Driver) EndPolygon() {
	pts := d.path.end()
	if len(pts) < 3 {
		d.strokePath(pts, false)
		return
	}
	d.fillContours([][]raster.Point{toRaster(pts)}, raster.NonZero)
}

// EndComplexPolygon fills every contour with the even-odd rule, so nested
// contours are holes whatever their direction. Fewer than three vertices
// in total are drawn as a line.
func (d *Driver) EndComplexPolygon() {
	d.path.gap()
	contours := d.path.contours
	d.path.contours = nil
	d.path.end()
	var all []fpoint
	cs := make([][]raster.Point, 0, len(contours))
	for _, c := range contours {
		all = append(all, c...)
		cs = append(cs, toRaster(c))
	}
	if len(all) < 3 {
		d.strokePath(all, false)
		return
	}
	d.ras.Fill(cs, raster.EvenOdd, d.drawBounds(), d.span)
}

func toRaster(pts []fpoint) []raster.Point {
	out := make([]raster.Point, len(pts))
	for i, p := range pts {
		out[i] = p.raster()
	}
	return out
}

// PushMatrix saves the current transform.
func (d *Driver) PushMatrix() { d.report(d.matrix.Push()) }

// PopMatrix restores the last saved transform.
func (d *Driver) PopMatrix() { d.report(d.matrix.Pop()) }

// MultMatrix composes m into the current transform.
func (d *Driver) MultMatrix(m Matrix) { d.matrix.Mult(m) }

// Rotate rotates counter-clockwise by deg degrees.
func (d *Driver) Rotate(deg float64) {
	if deg != 0 {
		d.matrix.Mult(Rotation(deg))
	}
}

// Translate moves the origin.
func (d *Driver) Translate(x, y float64) { d.matrix.Mult(Translation(x, y)) }

// ScaleXY scales the current transform.
func (d *Driver) ScaleXY(x, y float64) { d.matrix.Mult(ScaleMatrix(x, y)) }

// TransformX returns the transformed x of (x, y).
func (d *Driver) TransformX(x, y float64) float64 {
	tx, _ := d.matrix.Current().Apply(x, y)
	return tx
}

// TransformY returns the transformed y of (x, y).
func (d *Driver) TransformY(x, y float64) float64 {
	_, ty := d.matrix.Current().Apply(x, y)
	return ty
}

// TransformDX returns the transformed x of the vector (x, y).
func (d *Driver) TransformDX(x, y float64) float64 {
	tx, _ := d.matrix.Current().ApplyVector(x, y)
	return tx
}

// TransformDY returns the transformed y of the vector (x, y).
func (d *Driver) TransformDY(x, y float64) float64 {
	_, ty := d.matrix.Current().ApplyVector(x, y)
	return ty
}

// Matrix returns the current transform.
func (d *Driver) Matrix() Matrix { return d.matrix.Current() }
