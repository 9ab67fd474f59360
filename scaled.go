package fldraw

import (
	"image"
	"math"
)

// MinScale is the smallest scale factor SetScale accepts.
const MinScale = 1.0 / 64

// Scaled draws in logical units on an Unscaled canvas. Every coordinate
// goes through Floor, and extents are computed as Floor(x+w) - Floor(x),
// so shapes that touch in logical units touch on the device at any scale.
//
// A Scaled is not safe for concurrent use.
type Scaled struct {
	inner Unscaled
	scale float64

	// Logical pen and font, re-applied when the scale changes.
	style   LineStyle
	width   int
	dashes  []byte
	font    Font
	size    float64
	fontSet bool
}

var _ Canvas = (*Scaled)(nil)

// NewScaled wraps inner with the given scale factor.
func NewScaled(inner Unscaled, scale float64) *Scaled {
	s := &Scaled{inner: inner, scale: 1}
	s.SetScale(scale)
	return s
}

// Inner returns the wrapped canvas.
func (s *Scaled) Inner() Unscaled { return s.inner }

func (s *Scaled) fl(v int) int { return Floor(v, s.scale) }

// box converts a logical rectangle into device pixels.
func (s *Scaled) box(x, y, w, h int) (int, int, int, int) {
	X, Y := s.fl(x), s.fl(y)
	return X, Y, s.fl(x+w) - X, s.fl(y+h) - Y
}

// devWidth is the device pen width for a logical width. Hairlines stay one
// pixel wide until the scale reaches 2.
func (s *Scaled) devWidth(width int) float64 {
	if width == 0 {
		if s.scale < 2 {
			return 0
		}
		return s.scale
	}
	return float64(width) * s.scale
}

// penOffset centers integer line endpoints inside a logical pixel.
func (s *Scaled) penOffset() int {
	return (max(1, int(s.devWidth(s.width))) - 1) / 2
}

// pt maps a logical pixel to the device pixel the pen is centered on.
func (s *Scaled) pt(x, y int) image.Point {
	o := s.penOffset()
	return image.Pt(s.fl(x)+o, s.fl(y)+o)
}

func (s *Scaled) plainPen() bool {
	return s.width <= 1 && s.style.Pattern() == Solid && len(s.dashes) == 0
}

// Point implements Canvas.
func (s *Scaled) Point(x, y int) { s.Rectf(x, y, 1, 1) }

// Rect outlines the rectangle with edges one logical pixel thick.
func (s *Scaled) Rect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if !s.plainPen() {
		s.inner.LoopUnscaled([]image.Point{s.pt(x, y), s.pt(x+w-1, y), s.pt(x+w-1, y+h-1), s.pt(x, y+h-1)})
		return
	}
	t := max(1, int(s.scale))
	X, Y, W, H := s.box(x, y, w, h)
	if W <= 2*t || H <= 2*t {
		s.inner.RectfUnscaled(X, Y, W, H)
		return
	}
	s.inner.RectfUnscaled(X, Y, W, t)
	s.inner.RectfUnscaled(X, Y+H-t, W, t)
	s.inner.RectfUnscaled(X, Y+t, t, H-2*t)
	s.inner.RectfUnscaled(X+W-t, Y+t, t, H-2*t)
}

// Rectf implements Canvas.
func (s *Scaled) Rectf(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.inner.RectfUnscaled(s.box(x, y, w, h))
}

// ColoredRectf sets the current color to c and fills the rectangle.
func (s *Scaled) ColoredRectf(x, y, w, h int, c Color) {
	s.SetColor(c)
	s.Rectf(x, y, w, h)
}

// FocusRect implements Canvas.
func (s *Scaled) FocusRect(x, y, w, h int) {
	if w > 0 && h > 0 {
		s.inner.FocusRect(s.box(x, y, w, h))
	}
}

// OverlayRect implements Canvas.
func (s *Scaled) OverlayRect(x, y, w, h int) {
	if w > 0 && h > 0 {
		s.inner.OverlayRect(s.box(x, y, w, h))
	}
}

// Line implements Canvas.
func (s *Scaled) Line(x, y, x1, y1 int) {
	switch {
	case x == x1 && y == y1:
	case y == y1:
		s.XYLine(x, y, x1)
	case x == x1:
		s.YXLine(x, y, y1)
	default:
		p, q := s.pt(x, y), s.pt(x1, y1)
		s.inner.LineUnscaled(p.X, p.Y, q.X, q.Y)
	}
}

// Line3 implements Canvas.
func (s *Scaled) Line3(x, y, x1, y1, x2, y2 int) {
	s.Line(x, y, x1, y1)
	s.Line(x1, y1, x2, y2)
}

// XYLine covers the logical pixels x..x1 of row y.
func (s *Scaled) XYLine(x, y, x1 int) {
	if x1 < x {
		x, x1 = x1, x
	}
	s.inner.XYLineUnscaled(s.fl(x), s.fl(y), s.fl(x1+1)-1)
}

// XYLine2 implements Canvas.
func (s *Scaled) XYLine2(x, y, x1, y2 int) {
	s.XYLine(x, y, x1)
	s.YXLine(x1, y, y2)
}

// XYLine3 implements Canvas.
func (s *Scaled) XYLine3(x, y, x1, y2, x3 int) {
	s.XYLine(x, y, x1)
	s.YXLine(x1, y, y2)
	s.XYLine(x1, y2, x3)
}

// YXLine covers the logical pixels y..y1 of column x.
func (s *Scaled) YXLine(x, y, y1 int) {
	if y1 < y {
		y, y1 = y1, y
	}
	s.inner.YXLineUnscaled(s.fl(x), s.fl(y), s.fl(y1+1)-1)
}

// YXLine2 implements Canvas.
func (s *Scaled) YXLine2(x, y, y1, x2 int) {
	s.YXLine(x, y, y1)
	s.XYLine(x, y1, x2)
}

// YXLine3 implements Canvas.
func (s *Scaled) YXLine3(x, y, y1, x2, y3 int) {
	s.YXLine(x, y, y1)
	s.XYLine(x, y1, x2)
	s.YXLine(x2, y1, y3)
}

// Loop3 implements Canvas.
func (s *Scaled) Loop3(x0, y0, x1, y1, x2, y2 int) {
	s.inner.LoopUnscaled([]image.Point{s.pt(x0, y0), s.pt(x1, y1), s.pt(x2, y2)})
}

// Loop4 implements Canvas.
func (s *Scaled) Loop4(x0, y0, x1, y1, x2, y2, x3, y3 int) {
	s.inner.LoopUnscaled([]image.Point{s.pt(x0, y0), s.pt(x1, y1), s.pt(x2, y2), s.pt(x3, y3)})
}

func (s *Scaled) corner(x, y int) image.Point {
	return image.Pt(s.fl(x), s.fl(y))
}

// Polygon3 implements Canvas.
func (s *Scaled) Polygon3(x0, y0, x1, y1, x2, y2 int) {
	s.inner.PolygonUnscaled([]image.Point{s.corner(x0, y0), s.corner(x1, y1), s.corner(x2, y2)})
}

// Polygon4 implements Canvas.
func (s *Scaled) Polygon4(x0, y0, x1, y1, x2, y2, x3, y3 int) {
	s.inner.PolygonUnscaled([]image.Point{s.corner(x0, y0), s.corner(x1, y1), s.corner(x2, y2), s.corner(x3, y3)})
}

// Arc implements Canvas.
func (s *Scaled) Arc(x, y, w, h int, a1, a2 float64) {
	if w <= 0 || h <= 0 {
		return
	}
	X, Y, W, H := s.box(x, y, w, h)
	s.inner.ArcUnscaled(X, Y, W, H, a1, a2)
}

// Pie implements Canvas.
func (s *Scaled) Pie(x, y, w, h int, a1, a2 float64) {
	if w <= 0 || h <= 0 {
		return
	}
	X, Y, W, H := s.box(x, y, w, h)
	s.inner.PieUnscaled(X, Y, W, H, a1, a2)
}

// Circle implements Canvas.
func (s *Scaled) Circle(x, y, r float64) {
	if r <= 0 {
		return
	}
	m := s.inner.Matrix()
	cx, cy := m.Apply(x, y)
	s.inner.EllipseUnscaled(cx*s.scale, cy*s.scale, r*m.RadiusX()*s.scale, r*m.RadiusY()*s.scale)
}

// ArcPath implements Canvas.
func (s *Scaled) ArcPath(x, y, r, start, end float64) {
	m := s.inner.Matrix().Mult(ScaleMatrix(s.scale, s.scale))
	for _, p := range arcPathPoints(x, y, r, start, end, m) {
		s.Vertex(p.x, p.y)
	}
}

// Curve implements Canvas.
func (s *Scaled) Curve(x0, y0, x1, y1, x2, y2, x3, y3 float64) {
	m := s.inner.Matrix().Mult(ScaleMatrix(s.scale, s.scale))
	for _, p := range curvePoints(x0, y0, x1, y1, x2, y2, x3, y3, m) {
		s.Vertex(p.x, p.y)
	}
}

// LineStyle implements Canvas. The width and dashes are logical.
func (s *Scaled) LineStyle(style LineStyle, width int, dashes []byte) {
	s.style, s.width = style, width
	s.dashes = append(s.dashes[:0], dashes...)
	s.inner.LineStyleUnscaled(style, s.devWidth(width), scaledDashes(dashes, s.scale))
}

// BeginPoints implements Canvas.
func (s *Scaled) BeginPoints() { s.inner.BeginPoints() }

// BeginLine implements Canvas.
func (s *Scaled) BeginLine() { s.inner.BeginLine() }

// BeginLoop implements Canvas.
func (s *Scaled) BeginLoop() { s.inner.BeginLoop() }

// BeginPolygon implements Canvas.
func (s *Scaled) BeginPolygon() { s.inner.BeginPolygon() }

// BeginComplexPolygon implements Canvas.
func (s *Scaled) BeginComplexPolygon() { s.inner.BeginComplexPolygon() }

// Vertex adds (x, y) through the current transform and the scale.
func (s *Scaled) Vertex(x, y float64) {
	tx, ty := s.inner.Matrix().Apply(x, y)
	s.inner.TransformedVertexUnscaled(tx*s.scale, ty*s.scale)
}

// TransformedVertex adds the logical position (x, y) without transform.
func (s *Scaled) TransformedVertex(x, y float64) {
	s.inner.TransformedVertexUnscaled(x*s.scale, y*s.scale)
}

// Gap implements Canvas.
func (s *Scaled) Gap() { s.inner.Gap() }

// EndPoints implements Canvas.
func (s *Scaled) EndPoints() { s.inner.EndPoints() }

// EndLine implements Canvas.
func (s *Scaled) EndLine() { s.inner.EndLine() }

// EndLoop implements Canvas.
func (s *Scaled) EndLoop() { s.inner.EndLoop() }

// EndPolygon implements Canvas.
func (s *Scaled) EndPolygon() { s.inner.EndPolygon() }

// EndComplexPolygon implements Canvas.
func (s *Scaled) EndComplexPolygon() { s.inner.EndComplexPolygon() }

// PushMatrix implements Canvas.
func (s *Scaled) PushMatrix() { s.inner.PushMatrix() }

// PopMatrix implements Canvas.
func (s *Scaled) PopMatrix() { s.inner.PopMatrix() }

// MultMatrix implements Canvas.
func (s *Scaled) MultMatrix(m Matrix) { s.inner.MultMatrix(m) }

// Rotate implements Canvas.
func (s *Scaled) Rotate(deg float64) { s.inner.Rotate(deg) }

// Translate implements Canvas.
func (s *Scaled) Translate(x, y float64) { s.inner.Translate(x, y) }

// ScaleXY implements Canvas.
func (s *Scaled) ScaleXY(x, y float64) { s.inner.ScaleXY(x, y) }

// TransformX implements Canvas; the result is logical.
func (s *Scaled) TransformX(x, y float64) float64 { return s.inner.TransformX(x, y) }

// TransformY implements Canvas.
func (s *Scaled) TransformY(x, y float64) float64 { return s.inner.TransformY(x, y) }

// TransformDX implements Canvas.
func (s *Scaled) TransformDX(x, y float64) float64 { return s.inner.TransformDX(x, y) }

// TransformDY implements Canvas.
func (s *Scaled) TransformDY(x, y float64) float64 { return s.inner.TransformDY(x, y) }

// Matrix implements Canvas.
func (s *Scaled) Matrix() Matrix { return s.inner.Matrix() }

// PushClip implements Canvas.
func (s *Scaled) PushClip(x, y, w, h int) { s.inner.PushClip(s.box(x, y, w, h)) }

// PushNoClip implements Canvas.
func (s *Scaled) PushNoClip() { s.inner.PushNoClip() }

// PopClip implements Canvas.
func (s *Scaled) PopClip() { s.inner.PopClip() }

// ClipBox implements Canvas. The device answer is mapped back to logical
// units by rounding.
func (s *Scaled) ClipBox(x, y, w, h int) (cx, cy, cw, ch int, changed bool) {
	X, Y, W, H := s.box(x, y, w, h)
	dx, dy, dw, dh, ch0 := s.inner.ClipBox(X, Y, W, H)
	if !ch0 {
		return x, y, w, h, false
	}
	if dw <= 0 || dh <= 0 {
		return x, y, 0, 0, true
	}
	cx, cy = unscaleRound(dx, s.scale), unscaleRound(dy, s.scale)
	cw = unscaleRound(dx+dw, s.scale) - cx
	ch = unscaleRound(dy+dh, s.scale) - cy
	return cx, cy, cw, ch, cx != x || cy != y || cw != w || ch != h
}

// NotClipped implements Canvas.
func (s *Scaled) NotClipped(x, y, w, h int) Visibility {
	if w <= 0 || h <= 0 {
		return Out
	}
	return s.inner.NotClipped(s.box(x, y, w, h))
}

// ClipRegion returns the active region in device pixels.
func (s *Scaled) ClipRegion() *Region { return s.inner.ClipRegion() }

// SetClipRegion installs a region given in device pixels.
func (s *Scaled) SetClipRegion(r *Region) { s.inner.SetClipRegion(r) }

// RestoreClip implements Canvas.
func (s *Scaled) RestoreClip() { s.inner.RestoreClip() }

// SetColor implements Canvas.
func (s *Scaled) SetColor(c Color) { s.inner.SetColor(c) }

// SetRGB implements Canvas.
func (s *Scaled) SetRGB(r, g, b uint8) { s.inner.SetRGB(r, g, b) }

// Color implements Canvas.
func (s *Scaled) Color() Color { return s.inner.Color() }

// SetIndexColor implements Canvas.
func (s *Scaled) SetIndexColor(i Color, rgb uint32) { s.inner.SetIndexColor(i, rgb) }

// FreeColor implements Canvas.
func (s *Scaled) FreeColor(i Color) { s.inner.FreeColor(i) }

// Scale returns the current scale factor.
func (s *Scaled) Scale() float64 { return s.scale }

// SetScale changes the scale factor. Values below MinScale are raised to
// it. The active clip region is rescaled and the pen and font re-applied;
// the default hairline pen widens with the scale. Cached images are
// regenerated on their next draw.
func (s *Scaled) SetScale(f float64) {
	if math.IsNaN(f) || f < MinScale {
		f = MinScale
	}
	old := s.scale
	if f == old {
		return
	}
	if s.inner.ClipRegion() != nil {
		s.inner.ScaleClip(f / old).Release()
	}
	s.scale = f
	Logger().Debug("fldraw: scale changed", "from", old, "to", f)
	s.LineStyle(s.style, s.width, s.dashes)
	if s.fontSet {
		s.SetFont(s.font, s.size)
	}
}

// OverrideScale switches to scale 1 for drawing in device pixels and
// returns the previous scale for RestoreScale. The clip is suspended
// meanwhile.
func (s *Scaled) OverrideScale() float64 {
	old := s.scale
	if old != 1 {
		s.inner.PushNoClip()
		s.SetScale(1)
	}
	return old
}

// RestoreScale undoes OverrideScale.
func (s *Scaled) RestoreScale(f float64) {
	if f != 1 {
		s.SetScale(f)
		s.inner.PopClip()
	}
}

// SetAntialias implements Canvas.
func (s *Scaled) SetAntialias(on bool) { s.inner.SetAntialias(on) }

// Antialias implements Canvas.
func (s *Scaled) Antialias() bool { return s.inner.Antialias() }

// HasFeature implements Canvas.
func (s *Scaled) HasFeature(f Feature) bool { return s.inner.HasFeature(f) }

// CanDoAlphaBlending implements Canvas.
func (s *Scaled) CanDoAlphaBlending() bool { return s.inner.CanDoAlphaBlending() }
