package fldraw

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// DefaultFontSize is the size used until SetFont is called.
const DefaultFontSize = 14

// SetFont selects face f at size.
func (d *Driver) SetFont(f Font, size float64) { d.FontUnscaled(f, size) }

// FontUnscaled implements Unscaled. A face the registry cannot resolve is
// reported and the previous font stays selected.
func (d *Driver) FontUnscaled(f Font, size float64) {
	desc, err := d.fonts.Resolve(f, size)
	if err != nil {
		d.report(err)
		return
	}
	d.font, d.size, d.desc = f, size, desc
}

// Font returns the selected face.
func (d *Driver) Font() Font { return d.font }

// Size returns the selected size.
func (d *Driver) Size() float64 {
	d.fontDesc()
	return d.size
}

// FontDescriptor returns the resolved font, selecting the default one
// first if no font was set.
func (d *Driver) FontDescriptor() *FontDescriptor { return d.fontDesc() }

func (d *Driver) fontDesc() *FontDescriptor {
	if d.desc == nil {
		d.FontUnscaled(Helvetica, DefaultFontSize)
	}
	return d.desc
}

// Width implements Canvas.
func (d *Driver) Width(s string) float64 { return d.WidthUnscaled(s) }

// WidthUnscaled implements Unscaled.
func (d *Driver) WidthUnscaled(s string) float64 {
	if desc := d.fontDesc(); desc != nil {
		return desc.Width(s)
	}
	return 0
}

// RuneWidth implements Canvas.
func (d *Driver) RuneWidth(r rune) float64 { return d.RuneWidthUnscaled(r) }

// RuneWidthUnscaled implements Unscaled.
func (d *Driver) RuneWidthUnscaled(r rune) float64 {
	if desc := d.fontDesc(); desc != nil {
		return desc.RuneWidth(r)
	}
	return 0
}

// TextExtents implements Canvas.
func (d *Driver) TextExtents(s string) (dx, dy, w, h int) { return d.TextExtentsUnscaled(s) }

// TextExtentsUnscaled implements Unscaled.
func (d *Driver) TextExtentsUnscaled(s string) (dx, dy, w, h int) {
	if desc := d.fontDesc(); desc != nil {
		return desc.Extents(s)
	}
	return 0, 0, 0, 0
}

// Height implements Canvas.
func (d *Driver) Height() int { return d.HeightUnscaled() }

// HeightUnscaled implements Unscaled.
func (d *Driver) HeightUnscaled() int {
	if desc := d.fontDesc(); desc != nil {
		return desc.Height()
	}
	return 0
}

// Descent implements Canvas.
func (d *Driver) Descent() int { return d.DescentUnscaled() }

// DescentUnscaled implements Unscaled.
func (d *Driver) DescentUnscaled() int {
	if desc := d.fontDesc(); desc != nil {
		return desc.Descent
	}
	return 0
}

// Draw draws s with its baseline origin at (x, y).
func (d *Driver) Draw(s string, x, y int) { d.DrawUnscaled(s, float64(x), float64(y)) }

// DrawAt draws s at a fractional position.
func (d *Driver) DrawAt(s string, x, y float64) { d.DrawUnscaled(s, x, y) }

// DrawUnscaled implements Unscaled.
func (d *Driver) DrawUnscaled(s string, x, y float64) {
	desc := d.fontDesc()
	s = validPrefix(s)
	if desc == nil || s == "" {
		return
	}
	desc.mu.Lock()
	defer desc.mu.Unlock()
	dot := fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot.X += desc.face.Kern(prev, r)
		}
		dr, mask, mp, adv, ok := desc.face.Glyph(dot, r)
		if ok {
			d.blendMask(dr, mask, mp)
		}
		dot.X += adv
		prev = r
	}
}

// maxTextCoord keeps text positions inside the 26.6 fixed-point range.
const maxTextCoord = 1 << 24

func toFixed(v float64) fixed.Int26_6 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-maxTextCoord, math.Min(maxTextCoord, v))
	return fixed.Int26_6(math.Round(v * 64))
}

// blendMask draws the coverage of mask in the current color; mp is the
// mask point matching dr.Min.
func (d *Driver) blendMask(dr image.Rectangle, mask image.Image, mp image.Point) {
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			_, _, _, a := mask.At(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y).RGBA()
			d.blend(x, y, d.fg, uint8(a>>8))
		}
	}
}

// DrawAngle draws s with its baseline rotated counter-clockwise by angle
// degrees around (x, y).
func (d *Driver) DrawAngle(angle float64, s string, x, y int) {
	d.DrawAngleUnscaled(angle, s, x, y)
}

// DrawAngleUnscaled implements Unscaled.
func (d *Driver) DrawAngleUnscaled(angle float64, s string, x, y int) {
	if math.Mod(angle, 360) == 0 {
		d.DrawUnscaled(s, float64(x), float64(y))
		return
	}
	desc := d.fontDesc()
	s = validPrefix(s)
	if desc == nil || s == "" {
		return
	}
	mask := d.renderText(desc, s)
	if mask == nil {
		return
	}
	sin, cos := sincosDeg(angle)
	mb := mask.Bounds()

	// Forward map: u = px*cos + py*sin, v = py*cos - px*sin.
	var bb image.Rectangle
	for i, c := range [4]image.Point{mb.Min, {mb.Max.X, mb.Min.Y}, mb.Max, {mb.Min.X, mb.Max.Y}} {
		u := float64(c.X)*cos + float64(c.Y)*sin
		v := float64(c.Y)*cos - float64(c.X)*sin
		r := image.Rect(int(math.Floor(u)), int(math.Floor(v)), int(math.Ceil(u))+1, int(math.Ceil(v))+1)
		if i == 0 {
			bb = r
		} else {
			bb = bb.Union(r)
		}
	}
	for v := bb.Min.Y; v < bb.Max.Y; v++ {
		for u := bb.Min.X; u < bb.Max.X; u++ {
			fu, fv := float64(u)+0.5, float64(v)+0.5
			px := int(math.Floor(fu*cos - fv*sin))
			py := int(math.Floor(fu*sin + fv*cos))
			if !image.Pt(px, py).In(mb) {
				continue
			}
			d.blend(x+u, y+v, d.fg, mask.AlphaAt(px, py).A)
		}
	}
}

// renderText rasterizes s into a coverage mask whose origin is the
// baseline start.
func (d *Driver) renderText(desc *FontDescriptor, s string) *image.Alpha {
	desc.mu.Lock()
	defer desc.mu.Unlock()
	b, _ := font.BoundString(desc.face, s)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Empty() {
		return nil
	}
	mask := image.NewAlpha(r)
	dr := font.Drawer{Dst: mask, Src: image.Opaque, Face: desc.face}
	dr.DrawString(s)
	return mask
}

// RTLDraw draws s right to left so that it ends at (x, y).
func (d *Driver) RTLDraw(s string, x, y int) { d.RTLDrawUnscaled(s, x, y) }

// RTLDrawUnscaled implements Unscaled.
func (d *Driver) RTLDrawUnscaled(s string, x, y int) {
	s = bidi.ReverseString(validPrefix(s))
	w := d.WidthUnscaled(s)
	d.DrawUnscaled(s, float64(x)-w, float64(y))
}
