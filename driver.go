package fldraw

import (
	"image"
	"image/color"

	"github.com/gogpu/fldraw/internal/raster"
)

// Driver is the software implementation of Unscaled. It keeps the drawing
// state, turns every request into spans and pixels, and sends those to its
// Backend, using the backend's optional capabilities where present.
//
// Driver works in device pixels; wrap it in a Scaled to draw in logical
// units. A Driver is not safe for concurrent use.
type Driver struct {
	backend Backend
	bounds  image.Rectangle
	onError ErrorHandler

	palette *Palette
	fonts   FontRegistry
	cache   *ImageCache

	color Color
	fg    color.NRGBA
	pen   pen
	aa    bool

	matrix *MatrixStack
	clip   *ClipStack
	path   vertexBuilder
	ras    *raster.Rasterizer

	font Font
	size float64
	desc *FontDescriptor
}

var _ Unscaled = (*Driver)(nil)

// NewDriver returns a driver drawing to b.
func NewDriver(b Backend, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.fonts == nil {
		o.fonts = DefaultFontRegistry()
	}
	if o.cache == nil {
		o.cache = NewImageCache()
	}
	d := &Driver{
		backend: b,
		bounds:  b.Bounds(),
		onError: o.onError,
		palette: NewPalette(o.hwSlots),
		fonts:   o.fonts,
		cache:   o.cache,
		aa:      o.antialias,
		matrix:  NewMatrixStack(),
		clip:    NewClipStack(),
		ras:     raster.NewRasterizer(),
	}
	d.SetColor(Foreground)
	return d
}

// Backend returns the backend d draws to.
func (d *Driver) Backend() Backend { return d.backend }

// Palette returns the driver's palette.
func (d *Driver) Palette() *Palette { return d.palette }

// ImageCache returns the cache the driver keeps device images in.
func (d *Driver) ImageCache() *ImageCache { return d.cache }

func (d *Driver) report(err error) {
	if err != nil {
		d.onError(err)
	}
}

// spanColor paints row y from x0 to x1 (exclusive) in c, clipped to the
// backend bounds and the active clip region.
func (d *Driver) spanColor(y, x0, x1 int, c color.NRGBA) {
	if y < d.bounds.Min.Y || y >= d.bounds.Max.Y {
		return
	}
	x0 = max(x0, d.bounds.Min.X)
	x1 = min(x1, d.bounds.Max.X)
	if x0 >= x1 {
		return
	}
	r := d.clip.Current()
	if r == nil {
		d.backend.FillSpan(y, x0, x1, c)
		return
	}
	for _, rc := range r.rects {
		if y < rc.Min.Y || y >= rc.Max.Y {
			continue
		}
		if a, b := max(x0, rc.Min.X), min(x1, rc.Max.X); a < b {
			d.backend.FillSpan(y, a, b, c)
		}
	}
}

// span is spanColor in the current color; it is the raster callback.
func (d *Driver) span(y, x0, x1 int) {
	d.spanColor(y, x0, x1, d.fg)
}

func (d *Driver) plot(x, y int) {
	d.spanColor(y, x, x+1, d.fg)
}

// blend composites c over one pixel with the given coverage.
func (d *Driver) blend(x, y int, c color.NRGBA, cov uint8) {
	if cov == 0 || !image.Pt(x, y).In(d.bounds) {
		return
	}
	if r := d.clip.Current(); r != nil && !r.Contains(x, y) {
		return
	}
	if cov == 0xff && c.A == 0xff {
		d.backend.FillSpan(y, x, x+1, c)
		return
	}
	d.backend.BlendPixel(x, y, c, cov)
}

// drawBounds is the device area drawing can reach: the backend bounds
// reduced to the clip region's bounding box.
func (d *Driver) drawBounds() image.Rectangle {
	if r := d.clip.Current(); r != nil {
		return d.bounds.Intersect(r.Bounds())
	}
	return d.bounds
}

// fillRect paints the w x h rectangle at (x, y) in the current color.
func (d *Driver) fillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	rc := image.Rect(x, y, x+w, y+h).Intersect(d.bounds)
	if rc.Empty() {
		return
	}
	pieces := []image.Rectangle{rc}
	if r := d.clip.Current(); r != nil {
		pieces = pieces[:0]
		for _, c := range r.rects {
			if in := rc.Intersect(c); !in.Empty() {
				pieces = append(pieces, in)
			}
		}
	}
	rf, fast := d.backend.(RectFiller)
	for _, p := range pieces {
		if fast {
			rf.FillRect(p, d.fg)
			continue
		}
		for y := p.Min.Y; y < p.Max.Y; y++ {
			d.backend.FillSpan(y, p.Min.X, p.Max.X, d.fg)
		}
	}
}

// thickness is the pen width in whole device pixels, at least one.
func (d *Driver) thickness() int {
	return max(1, int(d.pen.width))
}

func (d *Driver) plainPen() bool {
	return d.pen.width <= 1 && !d.pen.dashed()
}

// Point implements Canvas.
func (d *Driver) Point(x, y int) { d.PointUnscaled(x, y) }

// PointUnscaled implements Unscaled.
func (d *Driver) PointUnscaled(x, y int) { d.plot(x, y) }

// Rect implements Canvas. The outline covers the pixels x..x+w-1 and
// y..y+h-1.
func (d *Driver) Rect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if !d.plainPen() {
		d.LoopUnscaled([]image.Point{{x, y}, {x + w - 1, y}, {x + w - 1, y + h - 1}, {x, y + h - 1}})
		return
	}
	if w <= 2 || h <= 2 {
		d.fillRect(x, y, w, h)
		return
	}
	d.fillRect(x, y, w, 1)
	d.fillRect(x, y+h-1, w, 1)
	d.fillRect(x, y+1, 1, h-2)
	d.fillRect(x+w-1, y+1, 1, h-2)
}

// Rectf implements Canvas.
func (d *Driver) Rectf(x, y, w, h int) { d.RectfUnscaled(x, y, w, h) }

// RectfUnscaled implements Unscaled.
func (d *Driver) RectfUnscaled(x, y, w, h int) { d.fillRect(x, y, w, h) }

// ColoredRectf sets the current color to c and fills the rectangle.
func (d *Driver) ColoredRectf(x, y, w, h int, c Color) {
	d.SetColor(c)
	d.Rectf(x, y, w, h)
}

// FocusRect draws a dotted outline, every other pixel along the border.
// The border is numbered clockwise from the top-left corner; only the
// pixels inside the drawable area are visited.
func (d *Driver) FocusRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	vis := d.drawBounds()
	if vis.Empty() {
		return
	}
	dot := func(px, py, i int) {
		if i&1 == 0 {
			d.plot(px, py)
		}
	}
	inX := func(v int) bool { return v >= vis.Min.X && v < vis.Max.X }
	inY := func(v int) bool { return v >= vis.Min.Y && v < vis.Max.Y }
	x1, y1 := x+w-1, y+h-1
	if inY(y) {
		for px := max(x, vis.Min.X); px < min(x1, vis.Max.X); px++ {
			dot(px, y, px-x)
		}
	}
	if inX(x1) {
		for py := max(y, vis.Min.Y); py < min(y1, vis.Max.Y); py++ {
			dot(x1, py, w-1+py-y)
		}
	}
	if inY(y1) {
		for px := min(x1, vis.Max.X-1); px > max(x, vis.Min.X-1); px-- {
			dot(px, y1, w-1+h-1+x1-px)
		}
	}
	if inX(x) {
		for py := min(y1, vis.Max.Y-1); py > max(y, vis.Min.Y-1); py-- {
			dot(x, py, 2*(w-1)+h-1+y1-py)
		}
	}
	if w == 1 && h == 1 {
		d.plot(x, y)
	}
}

// OverlayRect draws a one pixel outline whatever the line style.
func (d *Driver) OverlayRect(x, y, w, h int) {
	saved := d.pen
	d.pen = pen{}
	d.Rect(x, y, w, h)
	d.pen = saved
}

// Line implements Canvas. Axis-aligned lines take the XYLine and YXLine
// paths.
func (d *Driver) Line(x, y, x1, y1 int) {
	switch {
	case x == x1 && y == y1:
	case y == y1:
		d.XYLineUnscaled(x, y, x1)
	case x == x1:
		d.YXLineUnscaled(x, y, y1)
	default:
		d.LineUnscaled(x, y, x1, y1)
	}
}

// LineUnscaled implements Unscaled.
func (d *Driver) LineUnscaled(x, y, x1, y1 int) {
	if x == x1 && y == y1 {
		return
	}
	d.strokePixels([]image.Point{{x, y}, {x1, y1}}, false)
}

// Line3 draws two connected segments.
func (d *Driver) Line3(x, y, x1, y1, x2, y2 int) {
	d.strokePixels([]image.Point{{x, y}, {x1, y1}, {x2, y2}}, false)
}

// XYLine implements Canvas.
func (d *Driver) XYLine(x, y, x1 int) { d.XYLineUnscaled(x, y, x1) }

// XYLineUnscaled draws the pixels x..x1 of row y. A wider pen extends the
// line downward from y.
func (d *Driver) XYLineUnscaled(x, y, x1 int) {
	if x1 < x {
		x, x1 = x1, x
	}
	t := d.thickness()
	switch {
	case !d.pen.dashed():
		d.fillRect(x, y, x1-x+1, t)
	case t == 1:
		d.strokePixels([]image.Point{{x, y}, {x1, y}}, false)
	default:
		c := float64(y) + float64(t)/2
		d.strokeWide([]fpoint{{float64(x), c}, {float64(x1 + 1), c}}, false, float64(t))
	}
}

// XYLine2 draws a horizontal then a vertical segment.
func (d *Driver) XYLine2(x, y, x1, y2 int) {
	d.XYLine(x, y, x1)
	d.YXLine(x1, y, y2)
}

// XYLine3 draws horizontal, vertical, horizontal segments.
func (d *Driver) XYLine3(x, y, x1, y2, x3 int) {
	d.XYLine(x, y, x1)
	d.YXLine(x1, y, y2)
	d.XYLine(x1, y2, x3)
}

// YXLine implements Canvas.
func (d *Driver) YXLine(x, y, y1 int) { d.YXLineUnscaled(x, y, y1) }

// YXLineUnscaled draws the pixels y..y1 of column x. A wider pen extends
// the line rightward from x.
func (d *Driver) YXLineUnscaled(x, y, y1 int) {
	if y1 < y {
		y, y1 = y1, y
	}
	t := d.thickness()
	switch {
	case !d.pen.dashed():
		d.fillRect(x, y, t, y1-y+1)
	case t == 1:
		d.strokePixels([]image.Point{{x, y}, {x, y1}}, false)
	default:
		c := float64(x) + float64(t)/2
		d.strokeWide([]fpoint{{c, float64(y)}, {c, float64(y1 + 1)}}, false, float64(t))
	}
}

// YXLine2 draws a vertical then a horizontal segment.
func (d *Driver) YXLine2(x, y, y1, x2 int) {
	d.YXLine(x, y, y1)
	d.XYLine(x, y1, x2)
}

// YXLine3 draws vertical, horizontal, vertical segments.
func (d *Driver) YXLine3(x, y, y1, x2, y3 int) {
	d.YXLine(x, y, y1)
	d.XYLine(x, y1, x2)
	d.YXLine(x2, y1, y3)
}

// Loop3 outlines a triangle.
func (d *Driver) Loop3(x0, y0, x1, y1, x2, y2 int) {
	d.LoopUnscaled([]image.Point{{x0, y0}, {x1, y1}, {x2, y2}})
}

// Loop4 outlines a quadrilateral.
func (d *Driver) Loop4(x0, y0, x1, y1, x2, y2, x3, y3 int) {
	d.LoopUnscaled([]image.Point{{x0, y0}, {x1, y1}, {x2, y2}, {x3, y3}})
}

// LoopUnscaled implements Unscaled.
func (d *Driver) LoopUnscaled(pts []image.Point) {
	d.strokePixels(pts, true)
}

// Polygon3 fills a triangle.
func (d *Driver) Polygon3(x0, y0, x1, y1, x2, y2 int) {
	d.PolygonUnscaled([]image.Point{{x0, y0}, {x1, y1}, {x2, y2}})
}

// Polygon4 fills a quadrilateral.
func (d *Driver) Polygon4(x0, y0, x1, y1, x2, y2, x3, y3 int) {
	d.PolygonUnscaled([]image.Point{{x0, y0}, {x1, y1}, {x2, y2}, {x3, y3}})
}

// PolygonUnscaled fills the polygon whose vertices are the pixel corners
// pts.
func (d *Driver) PolygonUnscaled(pts []image.Point) {
	c := make([]raster.Point, len(pts))
	for i, p := range pts {
		c[i] = raster.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	d.fillContours([][]raster.Point{c}, raster.NonZero)
}

// LineStyle implements Canvas.
func (d *Driver) LineStyle(style LineStyle, width int, dashes []byte) {
	d.LineStyleUnscaled(style, float64(width), dashes)
}

// LineStyleUnscaled implements Unscaled.
func (d *Driver) LineStyleUnscaled(style LineStyle, width float64, dashes []byte) {
	d.pen = newPen(style, width, dashes)
}

// Scale returns 1: a Driver draws in device pixels.
func (d *Driver) Scale() float64 { return 1 }

// SetScale does nothing on a Driver; use Scaled.
func (d *Driver) SetScale(float64) {}

// OverrideScale returns 1.
func (d *Driver) OverrideScale() float64 { return 1 }

// RestoreScale does nothing on a Driver.
func (d *Driver) RestoreScale(float64) {}

// SetAntialias turns antialiased filling of simple polygons, ellipses and
// wide strokes on or off. Complex polygons are always aliased.
func (d *Driver) SetAntialias(on bool) { d.aa = on }

// Antialias reports whether antialiasing is on.
func (d *Driver) Antialias() bool { return d.aa }

// HasFeature reports whether the backend advertises f.
func (d *Driver) HasFeature(f Feature) bool {
	if fr, ok := d.backend.(FeatureReporter); ok {
		return fr.Features()&f != 0
	}
	return false
}

// CanDoAlphaBlending reports whether partial coverage is drawn as such.
// Paletted devices cannot show blended colors.
func (d *Driver) CanDoAlphaBlending() bool {
	return !d.palette.Paletted()
}
