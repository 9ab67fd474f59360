package fldraw

import (
	"fmt"
	"image"
	"image/color"
)

// clipBoxFunc is the ClipBox method of a Canvas.
type clipBoxFunc func(x, y, w, h int) (int, int, int, int, bool)

// startImage reduces a request to draw the w x h part at offset (cx, cy)
// of img at (x, y) to what the clip and the image allow, and places the
// result in device pixels at scale s. It returns false when nothing is
// visible.
func startImage(clip clipBoxFunc, img Image, x, y, w, h, cx, cy int, s float64) (Placement, bool) {
	X, Y, W, H, _ := clip(x, y, w, h)
	if W <= 0 || H <= 0 {
		return Placement{}, false
	}
	cx += X - x
	cy += Y - y
	if cx < 0 {
		W += cx
		X -= cx
		cx = 0
	}
	if cx+W > img.W() {
		W = img.W() - cx
	}
	if cy < 0 {
		H += cy
		Y -= cy
		cy = 0
	}
	if cy+H > img.H() {
		H = img.H() - cy
	}
	if W <= 0 || H <= 0 {
		return Placement{}, false
	}
	ox, oy := X-cx, Y-cy // logical origin of the whole image
	dox, doy := Floor(ox, s), Floor(oy, s)
	p := Placement{X: Floor(X, s), Y: Floor(Y, s), Scale: s, Scaling: img.scaling()}
	p.W = Floor(X+W, s) - p.X
	p.H = Floor(Y+H, s) - p.Y
	p.CX, p.CY = p.X-dox, p.Y-doy
	p.CacheW = Floor(ox+img.W(), s) - dox
	p.CacheH = Floor(oy+img.H(), s) - doy
	if p.W <= 0 || p.H <= 0 || p.CacheW <= 0 || p.CacheH <= 0 {
		return Placement{}, false
	}
	return p, true
}

// DrawRGB implements Canvas.
func (d *Driver) DrawRGB(img *RGBImage, x, y, w, h, cx, cy int) {
	if img == nil {
		return
	}
	if p, ok := startImage(d.ClipBox, img, x, y, w, h, cx, cy, 1); ok {
		d.DrawRGBUnscaled(img, p)
	}
}

// DrawPixmap implements Canvas.
func (d *Driver) DrawPixmap(img *Pixmap, x, y, w, h, cx, cy int) {
	if img == nil {
		return
	}
	if p, ok := startImage(d.ClipBox, img, x, y, w, h, cx, cy, 1); ok {
		d.DrawPixmapUnscaled(img, p)
	}
}

// DrawBitmap implements Canvas. Set bits are drawn in the current color.
func (d *Driver) DrawBitmap(img *Bitmap, x, y, w, h, cx, cy int) {
	if img == nil {
		return
	}
	if p, ok := startImage(d.ClipBox, img, x, y, w, h, cx, cy, 1); ok {
		d.DrawBitmapUnscaled(img, p)
	}
}

// DrawRGBUnscaled implements Unscaled.
func (d *Driver) DrawRGBUnscaled(img *RGBImage, p Placement) { d.drawPlaced(img, p) }

// DrawPixmapUnscaled implements Unscaled.
func (d *Driver) DrawPixmapUnscaled(img *Pixmap, p Placement) { d.drawPlaced(img, p) }

// DrawBitmapUnscaled implements Unscaled.
func (d *Driver) DrawBitmapUnscaled(img *Bitmap, p Placement) { d.drawPlaced(img, p) }

// drawPlaced offers the image to an ImageScaler backend, then falls back
// to the device-resolution cache entry, drawn by a FixedDrawer backend or
// blitted here.
func (d *Driver) drawPlaced(img Image, p Placement) {
	if sc, ok := d.backend.(ImageScaler); ok && sc.ScaleImage(d.naturalImage(img), p) {
		return
	}
	rel, _ := d.backend.(CacheReleaser)
	e := d.cache.Lookup(img, p.CacheW, p.CacheH, p.Scale, rel)
	if fd, ok := d.backend.(FixedDrawer); ok {
		fd.DrawFixed(e, p, d.fg)
		return
	}
	d.blitEntry(e, p)
}

// naturalImage merges the pixels and mask of img into one image. Bitmaps
// take the current color.
func (d *Driver) naturalImage(img Image) *image.NRGBA {
	pix, mask := img.pixels()
	if pix == nil {
		pix = image.NewNRGBA(image.Rect(0, 0, img.DataW(), img.DataH()))
		for i := 0; i < len(pix.Pix); i += 4 {
			pix.Pix[i], pix.Pix[i+1], pix.Pix[i+2], pix.Pix[i+3] = d.fg.R, d.fg.G, d.fg.B, 0xff
		}
	}
	if mask != nil {
		for i, a := range mask.Pix {
			pix.Pix[i*4+3] = uint8(int(pix.Pix[i*4+3]) * int(a) / 0xff)
		}
	}
	return pix
}

// blitEntry draws the visible part of a cache entry pixel by pixel.
func (d *Driver) blitEntry(e *CacheEntry, p Placement) {
	for y := 0; y < p.H; y++ {
		sy := p.CY + y
		if sy >= e.H {
			break
		}
		for x := 0; x < p.W; x++ {
			sx := p.CX + x
			if sx >= e.W {
				break
			}
			c, a := d.fg, uint8(0xff)
			if e.Pix != nil {
				i := e.Pix.PixOffset(sx, sy)
				s := e.Pix.Pix[i : i+4]
				c, a = color.NRGBA{R: s[0], G: s[1], B: s[2], A: 0xff}, s[3]
			}
			if e.Mask != nil {
				a = uint8(int(a) * int(e.Mask.AlphaAt(sx, sy).A) / 0xff)
			}
			d.blend(p.X+x, p.Y+y, c, a)
		}
	}
}

// blitNRGBA draws img with its top-left corner at (x, y).
func (d *Driver) blitNRGBA(img *image.NRGBA, x, y int) {
	b := img.Bounds()
	for j := 0; j < b.Dy(); j++ {
		row := img.Pix[j*img.Stride:]
		for i := 0; i < b.Dx(); i++ {
			s := row[i*4 : i*4+4]
			d.blend(x+i, y+j, color.NRGBA{R: s[0], G: s[1], B: s[2], A: 0xff}, s[3])
		}
	}
}

// checkBuffer validates the layout of a caller buffer and returns its
// effective stride.
func checkBuffer(n, w, h, depth, stride int) (int, error) {
	if depth < 1 || depth > 4 {
		return 0, fmt.Errorf("%w: depth %d", ErrImageData, depth)
	}
	if stride == 0 {
		stride = w * depth
	}
	if stride < w*depth || n < stride*(h-1)+w*depth {
		return 0, fmt.Errorf("%w: %dx%dx%d stride %d, got %d bytes", ErrImageData, w, h, depth, stride, n)
	}
	return stride, nil
}

// rawImage validates a caller buffer and converts it. Mono images use the
// first byte of each pixel as a gray level.
func rawImage(buf []byte, w, h, depth, stride int, mono bool) (*image.NRGBA, error) {
	stride, err := checkBuffer(len(buf), w, h, depth, stride)
	if err != nil {
		return nil, err
	}
	if !mono {
		return bufferToNRGBA(buf, w, h, depth, stride), nil
	}
	gray := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray[y*w+x] = buf[y*stride+x*depth]
		}
	}
	return bufferToNRGBA(gray, w, h, 1, w), nil
}

// DrawImage implements Canvas.
func (d *Driver) DrawImage(buf []byte, x, y, w, h, depth, stride int) {
	d.DrawImageUnscaled(buf, x, y, w, h, depth, stride)
}

// DrawImageMono implements Canvas.
func (d *Driver) DrawImageMono(buf []byte, x, y, w, h, depth, stride int) {
	d.DrawImageMonoUnscaled(buf, x, y, w, h, depth, stride)
}

// DrawImageUnscaled draws a raw buffer of w x h pixels without caching it.
func (d *Driver) DrawImageUnscaled(buf []byte, x, y, w, h, depth, stride int) {
	d.drawRaw(buf, x, y, w, h, depth, stride, false)
}

// DrawImageMonoUnscaled draws a raw buffer as gray levels.
func (d *Driver) DrawImageMonoUnscaled(buf []byte, x, y, w, h, depth, stride int) {
	d.drawRaw(buf, x, y, w, h, depth, stride, true)
}

func (d *Driver) drawRaw(buf []byte, x, y, w, h, depth, stride int, mono bool) {
	if w <= 0 || h <= 0 {
		return
	}
	img, err := rawImage(buf, w, h, depth, stride, mono)
	if err != nil {
		d.report(err)
		return
	}
	d.blitNRGBA(img, x, y)
}

// funcImage collects the rows of a callback image into a buffer.
func funcImage(cb ImageFunc, w, h, depth int) []byte {
	if cb == nil || w <= 0 || h <= 0 || depth < 1 || depth > 4 {
		return nil
	}
	row := w * depth
	buf := make([]byte, row*h)
	for y := 0; y < h; y++ {
		cb(0, y, w, buf[y*row:(y+1)*row])
	}
	return buf
}

// DrawImageFunc implements Canvas.
func (d *Driver) DrawImageFunc(cb ImageFunc, x, y, w, h, depth int) {
	if buf := funcImage(cb, w, h, depth); buf != nil {
		d.DrawImage(buf, x, y, w, h, depth, 0)
	}
}

// DrawImageMonoFunc implements Canvas.
func (d *Driver) DrawImageMonoFunc(cb ImageFunc, x, y, w, h, depth int) {
	if buf := funcImage(cb, w, h, depth); buf != nil {
		d.DrawImageMono(buf, x, y, w, h, depth, 0)
	}
}

// CopyOffscreen implements Canvas.
func (d *Driver) CopyOffscreen(x, y, w, h int, src image.Image, srcx, srcy int) {
	d.CopyOffscreenUnscaled(x, y, w, h, src, srcx, srcy)
}

// CopyOffscreenUnscaled copies the w x h block at (srcx, srcy) of src to
// (x, y).
func (d *Driver) CopyOffscreenUnscaled(x, y, w, h int, src image.Image, srcx, srcy int) {
	if src == nil || w <= 0 || h <= 0 {
		return
	}
	vis := d.clipRect(image.Rect(x, y, x+w, y+h))
	if vis.Empty() {
		return
	}
	sp := image.Pt(srcx+vis.Min.X-x, srcy+vis.Min.Y-y)
	if oc, ok := d.backend.(OffscreenCopier); ok && oc.CopyFrom(vis, src, sp) {
		return
	}
	sb := src.Bounds()
	for j := 0; j < vis.Dy(); j++ {
		for i := 0; i < vis.Dx(); i++ {
			q := sp.Add(image.Pt(i, j))
			if !q.In(sb) {
				continue
			}
			c := color.NRGBAModel.Convert(src.At(q.X, q.Y)).(color.NRGBA)
			a := c.A
			c.A = 0xff
			d.blend(vis.Min.X+i, vis.Min.Y+j, c, a)
		}
	}
}

// Uncache drops the device-resolution copy of img.
func (d *Driver) Uncache(img Image) {
	if isNil(img) {
		return
	}
	rel, _ := d.backend.(CacheReleaser)
	d.cache.Uncache(img, rel)
}

// CreateBitmask prepares a w x h bitmap for repeated drawing. It returns
// nil when bits is too short.
func (d *Driver) CreateBitmask(w, h int, bits []byte) *Bitmask {
	return newBitmask(w, h, bits)
}

// DeleteBitmask frees b. It may be called on nil.
func (d *Driver) DeleteBitmask(b *Bitmask) { b.release() }
