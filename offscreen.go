package fldraw

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Offscreen is an in-memory Backend backed by an *image.NRGBA. It is the
// default target of the software driver and doubles as the source image
// for CopyOffscreen.
type Offscreen struct {
	img         *image.NRGBA
	clip        *Region
	directScale bool
}

var (
	_ Backend         = (*Offscreen)(nil)
	_ RectFiller      = (*Offscreen)(nil)
	_ ClipSetter      = (*Offscreen)(nil)
	_ ImageScaler     = (*Offscreen)(nil)
	_ OffscreenCopier = (*Offscreen)(nil)
	_ image.Image     = (*Offscreen)(nil)
)

// NewOffscreen creates a transparent w x h buffer.
func NewOffscreen(w, h int) *Offscreen {
	return &Offscreen{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// Width returns the width of the buffer.
func (o *Offscreen) Width() int { return o.img.Rect.Dx() }

// Height returns the height of the buffer.
func (o *Offscreen) Height() int { return o.img.Rect.Dy() }

// Image returns the underlying pixels.
func (o *Offscreen) Image() *image.NRGBA { return o.img }

// SetDirectScaling makes the buffer accept images for direct scaling with
// x/image/draw, bypassing the driver's image cache.
func (o *Offscreen) SetDirectScaling(on bool) { o.directScale = on }

// Clear fills the whole buffer with c, ignoring the clip.
func (o *Offscreen) Clear(c color.NRGBA) {
	for i := 0; i < len(o.img.Pix); i += 4 {
		o.img.Pix[i], o.img.Pix[i+1], o.img.Pix[i+2], o.img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Pixel returns the color at (x, y), transparent outside the buffer.
func (o *Offscreen) Pixel(x, y int) color.NRGBA {
	return o.img.NRGBAAt(x, y)
}

// Bounds implements Backend and image.Image.
func (o *Offscreen) Bounds() image.Rectangle { return o.img.Rect }

// FillSpan implements Backend.
func (o *Offscreen) FillSpan(y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= o.img.Rect.Max.Y {
		return
	}
	x0, x1 = max(x0, 0), min(x1, o.img.Rect.Max.X)
	row := o.img.Pix[y*o.img.Stride:]
	for x := x0; x < x1; x++ {
		p := row[x*4 : x*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
}

// FillRect implements RectFiller.
func (o *Offscreen) FillRect(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(o.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		o.FillSpan(y, r.Min.X, r.Max.X, c)
	}
}

// BlendPixel implements Backend with source-over compositing.
func (o *Offscreen) BlendPixel(x, y int, c color.NRGBA, coverage uint8) {
	if !image.Pt(x, y).In(o.img.Rect) {
		return
	}
	i := o.img.PixOffset(x, y)
	p := o.img.Pix[i : i+4]
	sa := uint32(c.A) * uint32(coverage) / 0xff
	if sa == 0 {
		return
	}
	da := uint32(p[3]) * (0xff - sa) / 0xff
	oa := sa + da
	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*sa + uint32(d)*da) / oa)
	}
	p[0], p[1], p[2], p[3] = blend(c.R, p[0]), blend(c.G, p[1]), blend(c.B, p[2]), uint8(oa)
}

// SetClip implements ClipSetter.
func (o *Offscreen) SetClip(r *Region) {
	o.clip = r.Clone()
}

// visible splits r into the parts allowed by the clip.
func (o *Offscreen) visible(r image.Rectangle) []image.Rectangle {
	r = r.Intersect(o.img.Rect)
	if r.Empty() {
		return nil
	}
	if o.clip == nil {
		return []image.Rectangle{r}
	}
	var out []image.Rectangle
	for _, c := range o.clip.Rects() {
		if in := r.Intersect(c); !in.Empty() {
			out = append(out, in)
		}
	}
	return out
}

// ScaleImage implements ImageScaler when direct scaling is enabled.
func (o *Offscreen) ScaleImage(src image.Image, p Placement) bool {
	if !o.directScale {
		return false
	}
	var s xdraw.Interpolator = xdraw.NearestNeighbor
	sb := src.Bounds()
	if p.Scaling == ScaleArea && (p.CacheW < sb.Dx() || p.CacheH < sb.Dy()) {
		s = xdraw.ApproxBiLinear
	}
	for _, r := range o.visible(p.Rect()) {
		s.Scale(o.img.SubImage(r).(*image.NRGBA), p.Full(), src, sb, xdraw.Over, nil)
	}
	return true
}

// CopyFrom implements OffscreenCopier.
func (o *Offscreen) CopyFrom(dst image.Rectangle, src image.Image, sp image.Point) bool {
	for _, r := range o.visible(dst) {
		xdraw.Draw(o.img, r, src, sp.Add(r.Min.Sub(dst.Min)), xdraw.Src)
	}
	return true
}

// At implements image.Image.
func (o *Offscreen) At(x, y int) color.Color { return o.img.At(x, y) }

// ColorModel implements image.Image.
func (o *Offscreen) ColorModel() color.Model { return color.NRGBAModel }

// SavePNG writes the buffer to a PNG file.
func (o *Offscreen) SavePNG(path string) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, o.img); err != nil {
		return fmt.Errorf("fldraw: encode %s: %w", path, err)
	}
	return nil
}
