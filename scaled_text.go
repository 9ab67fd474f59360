package fldraw

import "math"

// SetFont selects f at the logical size; the inner canvas resolves the
// device size.
func (s *Scaled) SetFont(f Font, size float64) {
	s.font, s.size, s.fontSet = f, size, true
	s.inner.FontUnscaled(f, size*s.scale)
}

func (s *Scaled) ensureFont() {
	if !s.fontSet {
		s.SetFont(Helvetica, DefaultFontSize)
	}
}

// Font implements Canvas.
func (s *Scaled) Font() Font {
	s.ensureFont()
	return s.font
}

// Size returns the logical font size, as given to SetFont.
func (s *Scaled) Size() float64 {
	s.ensureFont()
	return s.size
}

// FontDescriptor returns the device-resolution font.
func (s *Scaled) FontDescriptor() *FontDescriptor {
	s.ensureFont()
	return s.inner.FontDescriptor()
}

// unscaleMetric converts a device metric to logical units, rounding down.
func (s *Scaled) unscaleMetric(v int) int {
	return int(math.Floor(float64(v)/s.scale + floorBias))
}

// Width implements Canvas.
func (s *Scaled) Width(str string) float64 {
	s.ensureFont()
	return s.inner.WidthUnscaled(str) / s.scale
}

// RuneWidth implements Canvas.
func (s *Scaled) RuneWidth(r rune) float64 {
	s.ensureFont()
	return s.inner.RuneWidthUnscaled(r) / s.scale
}

// TextExtents implements Canvas.
func (s *Scaled) TextExtents(str string) (dx, dy, w, h int) {
	s.ensureFont()
	dx, dy, w, h = s.inner.TextExtentsUnscaled(str)
	return s.unscaleMetric(dx), s.unscaleMetric(dy), s.unscaleMetric(w), s.unscaleMetric(h)
}

// Height implements Canvas.
func (s *Scaled) Height() int {
	s.ensureFont()
	return s.unscaleMetric(s.inner.HeightUnscaled())
}

// Descent implements Canvas.
func (s *Scaled) Descent() int {
	s.ensureFont()
	return s.unscaleMetric(s.inner.DescentUnscaled())
}

// Draw implements Canvas.
func (s *Scaled) Draw(str string, x, y int) {
	s.ensureFont()
	s.inner.DrawUnscaled(str, float64(s.fl(x)), float64(s.fl(y)))
}

// DrawAt implements Canvas.
func (s *Scaled) DrawAt(str string, x, y float64) {
	s.ensureFont()
	s.inner.DrawUnscaled(str, float64(floorf(x, s.scale)), float64(floorf(y, s.scale)))
}

// DrawAngle implements Canvas.
func (s *Scaled) DrawAngle(angle float64, str string, x, y int) {
	s.ensureFont()
	s.inner.DrawAngleUnscaled(angle, str, s.fl(x), s.fl(y))
}

// RTLDraw implements Canvas.
func (s *Scaled) RTLDraw(str string, x, y int) {
	s.ensureFont()
	s.inner.RTLDrawUnscaled(str, s.fl(x), s.fl(y))
}
