package fldraw

import "image"

// DrawRGB implements Canvas.
func (s *Scaled) DrawRGB(img *RGBImage, x, y, w, h, cx, cy int) {
	if img == nil {
		return
	}
	if p, ok := startImage(s.ClipBox, img, x, y, w, h, cx, cy, s.scale); ok {
		s.inner.DrawRGBUnscaled(img, p)
	}
}

// DrawPixmap implements Canvas.
func (s *Scaled) DrawPixmap(img *Pixmap, x, y, w, h, cx, cy int) {
	if img == nil {
		return
	}
	if p, ok := startImage(s.ClipBox, img, x, y, w, h, cx, cy, s.scale); ok {
		s.inner.DrawPixmapUnscaled(img, p)
	}
}

// DrawBitmap implements Canvas.
func (s *Scaled) DrawBitmap(img *Bitmap, x, y, w, h, cx, cy int) {
	if img == nil {
		return
	}
	if p, ok := startImage(s.ClipBox, img, x, y, w, h, cx, cy, s.scale); ok {
		s.inner.DrawBitmapUnscaled(img, p)
	}
}

// DrawImage implements Canvas.
func (s *Scaled) DrawImage(buf []byte, x, y, w, h, depth, stride int) {
	s.rescaleImage(buf, x, y, w, h, depth, stride, false)
}

// DrawImageMono implements Canvas.
func (s *Scaled) DrawImageMono(buf []byte, x, y, w, h, depth, stride int) {
	s.rescaleImage(buf, x, y, w, h, depth, stride, true)
}

// rescaleImage draws a raw buffer at the device size of its logical box.
// At scale 1 the buffer goes through untouched; otherwise it is resampled,
// replicating pixels when enlarging and averaging them when shrinking.
func (s *Scaled) rescaleImage(buf []byte, x, y, w, h, depth, stride int, mono bool) {
	if w <= 0 || h <= 0 {
		return
	}
	X, Y, W, H := s.box(x, y, w, h)
	st, err := checkBuffer(len(buf), w, h, depth, stride)
	if s.scale == 1 || err != nil || W <= 0 || H <= 0 {
		// The inner canvas reports a malformed buffer.
		if mono {
			s.inner.DrawImageMonoUnscaled(buf, X, Y, w, h, depth, stride)
		} else {
			s.inner.DrawImageUnscaled(buf, X, Y, w, h, depth, stride)
		}
		return
	}
	out, d, ost := rescaleBuffer(buf, w, h, depth, st, W, H, mono)
	if mono {
		s.inner.DrawImageMonoUnscaled(out, X, Y, W, H, d, ost)
		return
	}
	s.inner.DrawImageUnscaled(out, X, Y, W, H, d, ost)
}

// DrawImageFunc implements Canvas.
func (s *Scaled) DrawImageFunc(cb ImageFunc, x, y, w, h, depth int) {
	if buf := funcImage(cb, w, h, depth); buf != nil {
		s.DrawImage(buf, x, y, w, h, depth, 0)
	}
}

// DrawImageMonoFunc implements Canvas.
func (s *Scaled) DrawImageMonoFunc(cb ImageFunc, x, y, w, h, depth int) {
	if buf := funcImage(cb, w, h, depth); buf != nil {
		s.DrawImageMono(buf, x, y, w, h, depth, 0)
	}
}

// CopyOffscreen copies from a device-resolution buffer; the source
// position is logical like the destination.
func (s *Scaled) CopyOffscreen(x, y, w, h int, src image.Image, srcx, srcy int) {
	if w <= 0 || h <= 0 {
		return
	}
	X, Y, W, H := s.box(x, y, w, h)
	s.inner.CopyOffscreenUnscaled(X, Y, W, H, src, s.fl(srcx), s.fl(srcy))
}

// Uncache implements Canvas.
func (s *Scaled) Uncache(img Image) { s.inner.Uncache(img) }

// CreateBitmask implements Canvas.
func (s *Scaled) CreateBitmask(w, h int, bits []byte) *Bitmask {
	return s.inner.CreateBitmask(w, h, bits)
}

// DeleteBitmask implements Canvas.
func (s *Scaled) DeleteBitmask(b *Bitmask) { s.inner.DeleteBitmask(b) }
