package fldraw

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/fldraw/internal/raster"
)

// miterLimit is the longest miter, in half line widths, drawn before a
// miter join falls back to a bevel.
const miterLimit = 4

// fpoint is a device position. Stroke paths use pixel-index coordinates,
// where (x, y) is the center of pixel (x, y); fill contours use corner
// coordinates.
type fpoint struct {
	x, y float64
}

func (p fpoint) add(dx, dy float64) fpoint { return fpoint{p.x + dx, p.y + dy} }

func (p fpoint) raster() raster.Point { return raster.Point{X: p.x, Y: p.y} }

func roundPixel(v float64) int {
	return int(math.Floor(clampCoord(v) + 0.5))
}

// strokePixels strokes a path through integer pixels.
func (d *Driver) strokePixels(pts []image.Point, closed bool) {
	fp := make([]fpoint, len(pts))
	for i, p := range pts {
		fp[i] = fpoint{float64(p.X), float64(p.Y)}
	}
	d.strokePath(fp, closed)
}

// strokePath strokes a path in pixel-index coordinates with the current
// pen. Hairlines are walked pixel by pixel; wider pens are filled as
// polygons.
func (d *Driver) strokePath(pts []fpoint, closed bool) {
	pts = dedup(pts)
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	switch len(pts) {
	case 0:
		return
	case 1:
		d.plot(roundPixel(pts[0].x), roundPixel(pts[0].y))
		return
	}
	if closed && len(pts) < 3 {
		closed = false
	}
	if d.pen.width <= 1 {
		d.strokeHairline(pts, closed)
		return
	}
	shifted := make([]fpoint, len(pts))
	for i, p := range pts {
		shifted[i] = p.add(0.5, 0.5)
	}
	d.strokeWide(shifted, closed, d.pen.width)
}

func dedup(pts []fpoint) []fpoint {
	out := pts[:0:0]
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (d *Driver) strokeHairline(pts []fpoint, closed bool) {
	var dash *dasher
	if d.pen.dashed() {
		dash = newDasher(d.pen.runs)
	}
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	vis := d.drawBounds()
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		d.hairSegment(roundPixel(a.x), roundPixel(a.y), roundPixel(b.x), roundPixel(b.y), i > 0, dash, vis)
	}
}

// hairSegment walks the part of a hairline segment that can reach vis.
// The segment has n+1 pixels, one per step along its major axis; pixels
// cut off at either end still advance the dash pattern.
func (d *Driver) hairSegment(x0, y0, x1, y1 int, skipFirst bool, dash *dasher, vis image.Rectangle) {
	n := max(abs(x1-x0), abs(y1-y0))
	first := 0
	if skipFirst {
		first = 1
	}
	// Pixel-index coordinates, one pixel of margin on every side.
	t0, t1, ok := clipSegment(float64(x0), float64(y0), float64(x1), float64(y1),
		float64(vis.Min.X-1), float64(vis.Min.Y-1), float64(vis.Max.X), float64(vis.Max.Y))
	if vis.Empty() || !ok {
		dash.skip(n + 1 - first)
		return
	}
	k0 := int(math.Floor(t0 * float64(n)))
	k1 := int(math.Ceil(t1 * float64(n)))
	k0, k1 = max(k0, 0), min(k1, n)
	if k0 == 0 && k1 == n {
		d.bresenham(x0, y0, x1, y1, skipFirst, dash)
		return
	}
	at := func(k int) (int, int) {
		f := float64(k) / float64(n)
		return x0 + int(math.Round(f*float64(x1-x0))), y0 + int(math.Round(f*float64(y1-y0)))
	}
	dash.skip(k0 - first)
	ax, ay := at(k0)
	bx, by := at(k1)
	d.bresenham(ax, ay, bx, by, skipFirst && k0 == 0, dash)
	dash.skip(n - k1)
}

// clipSegment intersects the segment from (x0, y0) to (x1, y1) with the
// rectangle [xmin, xmax] x [ymin, ymax] (Liang-Barsky). It returns the
// parameter range of the visible part, or false when none is visible.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (t0, t1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 = 0, 1
	for _, e := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return t0, t1, true
}

// bresenham plots the pixels from (x0, y0) to (x1, y1), both ends
// included unless skipFirst is set.
func (d *Driver) bresenham(x0, y0, x1, y1 int, skipFirst bool, dash *dasher) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for first := true; ; first = false {
		if !first || !skipFirst {
			if dash == nil || dash.stepPixel() {
				d.plot(x0, y0)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// strokeWide fills the outline of a path in corner coordinates stroked
// with width w, using the pen's dashes, caps and joins.
func (d *Driver) strokeWide(pts []fpoint, closed bool, w float64) {
	hw := w / 2
	capStyle, join := d.pen.style.Cap(), d.pen.style.Join()
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	var cs [][]raster.Point

	if d.pen.dashed() {
		dash := newDasher(d.pen.runs)
		vis := d.drawBounds()
		m := hw + 1
		for i := 0; i < segs; i++ {
			a, b := pts[i], pts[(i+1)%n]
			l := math.Hypot(b.x-a.x, b.y-a.y)
			ux, uy := (b.x-a.x)/l, (b.y-a.y)/l
			// Only the part of the segment whose outline can reach vis is
			// split into dashes; the rest just advances the pattern.
			c0, c1, ok := clipSegment(a.x, a.y, b.x, b.y,
				float64(vis.Min.X)-m, float64(vis.Min.Y)-m, float64(vis.Max.X)+m, float64(vis.Max.Y)+m)
			if vis.Empty() || !ok {
				dash.advance(l)
				continue
			}
			s0, s1 := c0*l, c1*l
			dash.advance(s0)
			dash.split(s1-s0, func(t0, t1 float64) {
				t0, t1 = t0+s0, t1+s0
				p, q := a.add(ux*t0, uy*t0), a.add(ux*t1, uy*t1)
				cs = append(cs, quad(p, q, hw))
				cs = appendCap(cs, p, -ux, -uy, hw, capStyle)
				cs = appendCap(cs, q, ux, uy, hw, capStyle)
			})
			dash.advance(l - s1)
		}
	} else {
		for i := 0; i < segs; i++ {
			cs = append(cs, quad(pts[i], pts[(i+1)%n], hw))
		}
		for i := 0; i < n; i++ {
			if !closed && (i == 0 || i == n-1) {
				continue
			}
			cs = appendJoin(cs, pts[(i+n-1)%n], pts[i], pts[(i+1)%n], hw, join)
		}
		if !closed {
			ux, uy := unit(pts[0], pts[1])
			cs = appendCap(cs, pts[0], -ux, -uy, hw, capStyle)
			ux, uy = unit(pts[n-2], pts[n-1])
			cs = appendCap(cs, pts[n-1], ux, uy, hw, capStyle)
		}
	}
	for i := range cs {
		orient(cs[i])
	}
	d.fillContours(cs, raster.NonZero)
}

func unit(a, b fpoint) (float64, float64) {
	l := math.Hypot(b.x-a.x, b.y-a.y)
	if l == 0 {
		return 0, 0
	}
	return (b.x - a.x) / l, (b.y - a.y) / l
}

// quad is the rectangle of half width hw around the segment a-b.
func quad(a, b fpoint, hw float64) []raster.Point {
	ux, uy := unit(a, b)
	nx, ny := -uy*hw, ux*hw
	return []raster.Point{
		a.add(nx, ny).raster(), b.add(nx, ny).raster(),
		b.add(-nx, -ny).raster(), a.add(-nx, -ny).raster(),
	}
}

// disc approximates a circle of radius r around c.
func disc(c fpoint, r float64) []raster.Point {
	pts := ellipsePoints(c.x, c.y, r, r, 0, 360)
	out := make([]raster.Point, len(pts)-1)
	for i := range out {
		out[i] = pts[i].raster()
	}
	return out
}

// appendCap adds the cap at end point p; (ux, uy) points away from the line.
func appendCap(cs [][]raster.Point, p fpoint, ux, uy, hw float64, style LineStyle) [][]raster.Point {
	switch style {
	case CapSquare:
		return append(cs, quad(p, p.add(ux*hw, uy*hw), hw))
	case CapRound:
		return append(cs, disc(p, hw))
	}
	return cs
}

// appendJoin fills the wedge between the segments prev-cur and cur-next on
// both sides; the inner wedge is already covered by the segments.
func appendJoin(cs [][]raster.Point, prev, cur, next fpoint, hw float64, style LineStyle) [][]raster.Point {
	if style == JoinRound {
		return append(cs, disc(cur, hw))
	}
	ux1, uy1 := unit(prev, cur)
	ux2, uy2 := unit(cur, next)
	n1x, n1y := -uy1, ux1
	n2x, n2y := -uy2, ux2
	mx, my := n1x+n2x, n1y+n2y
	ml := math.Hypot(mx, my)
	for _, s := range [2]float64{1, -1} {
		a := cur.add(n1x*s*hw, n1y*s*hw)
		b := cur.add(n2x*s*hw, n2y*s*hw)
		if style == JoinMiter && ml > 1e-9 {
			// |n1+n2| = 2cos(t/2), t being the angle between the normals.
			cosHalf := ml / 2
			if 1/cosHalf <= miterLimit {
				k := s * hw / cosHalf / ml
				tip := cur.add(mx*k, my*k)
				cs = append(cs, []raster.Point{cur.raster(), a.raster(), tip.raster(), b.raster()})
				continue
			}
		}
		cs = append(cs, []raster.Point{cur.raster(), a.raster(), b.raster()})
	}
	return cs
}

// orient reverses c in place when it winds negatively, so overlapping
// stroke pieces add up under the non-zero rule.
func orient(c []raster.Point) {
	var area float64
	for i := range c {
		j := (i + 1) % len(c)
		area += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	if area < 0 {
		for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
			c[i], c[j] = c[j], c[i]
		}
	}
}

// fillContours fills contours in corner coordinates with the current
// color. Antialiasing applies to the non-zero rule only.
func (d *Driver) fillContours(cs [][]raster.Point, rule raster.FillRule) {
	if d.aa && rule == raster.NonZero {
		d.fillAA(cs)
		return
	}
	d.ras.Fill(cs, rule, d.drawBounds(), d.span)
}

// fillAA accumulates exact coverage with x/image/vector and blends it.
func (d *Driver) fillAA(cs [][]raster.Point) {
	bb := image.Rectangle{}
	first := true
	for _, c := range cs {
		for _, p := range c {
			r := image.Rect(int(math.Floor(clampCoord(p.X))), int(math.Floor(clampCoord(p.Y))),
				int(math.Ceil(clampCoord(p.X)))+1, int(math.Ceil(clampCoord(p.Y)))+1)
			if first {
				bb, first = r, false
				continue
			}
			bb = bb.Union(r)
		}
	}
	bb = bb.Intersect(d.drawBounds())
	if bb.Empty() {
		return
	}
	z := vector.NewRasterizer(bb.Dx(), bb.Dy())
	ox, oy := float64(bb.Min.X), float64(bb.Min.Y)
	for _, c := range cs {
		if len(c) < 3 {
			continue
		}
		z.MoveTo(float32(c[0].X-ox), float32(c[0].Y-oy))
		for _, p := range c[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	for y := 0; y < bb.Dy(); y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < bb.Dx(); x++ {
			if a := row[x]; a != 0 {
				d.blend(bb.Min.X+x, bb.Min.Y+y, d.fg, a)
			}
		}
	}
}
