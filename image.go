package fldraw

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Image is a drawable image: Bitmap, Pixmap or RGBImage. Only this
// package implements it; the unexported methods give the drawing core
// access to the pixels and the cache slot without exposing them.
type Image interface {
	// W and H are the logical display size.
	W() int
	H() int
	// DataW and DataH are the natural pixel size.
	DataW() int
	DataH() int
	// SetSize changes the logical display size. A cached copy of the old
	// size is regenerated on the next draw.
	SetSize(w, h int)

	slot() *cacheSlot
	// pixels returns the natural-resolution color pixels (nil for bitmaps)
	// and coverage mask (nil when fully opaque).
	pixels() (*image.NRGBA, *image.Alpha)
	scaling() Scaling
}

// Scaling selects how an image is resampled to device resolution.
type Scaling int

const (
	// ScaleNearest replicates source pixels.
	ScaleNearest Scaling = iota
	// ScaleArea averages the source pixels covered by each device pixel.
	ScaleArea
)

// ErrImageData is returned by image constructors given too little data.
var ErrImageData = errors.New("fldraw: image data too short")

// cacheSlot holds the device-resolution copy of one image. It is the only
// state drivers mutate on an image; the mutex makes concurrent draws of a
// shared image from different drivers safe.
type cacheSlot struct {
	mu    sync.Mutex
	entry *CacheEntry
}

type imageBase struct {
	w, h         int
	dataW, dataH int
	cache        cacheSlot
	Scaling      Scaling
}

func (b *imageBase) W() int           { return b.w }
func (b *imageBase) H() int           { return b.h }
func (b *imageBase) DataW() int       { return b.dataW }
func (b *imageBase) DataH() int       { return b.dataH }
func (b *imageBase) slot() *cacheSlot { return &b.cache }
func (b *imageBase) scaling() Scaling { return b.Scaling }

// isNil reports whether img is nil or a nil pointer of one of the image
// types.
func isNil(img Image) bool {
	switch v := img.(type) {
	case nil:
		return true
	case *Bitmap:
		return v == nil
	case *Pixmap:
		return v == nil
	case *RGBImage:
		return v == nil
	}
	return false
}

func (b *imageBase) SetSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	b.cache.mu.Lock()
	b.w, b.h = w, h
	b.cache.mu.Unlock()
}

func newBase(w, h int) imageBase {
	return imageBase{w: w, h: h, dataW: w, dataH: h}
}

// Bitmap is a 1-bit mask drawn in the current color. Rows are padded to
// whole bytes; the least significant bit of each byte is the leftmost
// pixel.
type Bitmap struct {
	imageBase
	bits []byte
}

// NewBitmap wraps bits as a w x h bitmap.
func NewBitmap(bits []byte, w, h int) (*Bitmap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("fldraw: bitmap size %dx%d", w, h)
	}
	if len(bits) < (w+7)/8*h {
		return nil, fmt.Errorf("%w: bitmap %dx%d needs %d bytes, got %d", ErrImageData, w, h, (w+7)/8*h, len(bits))
	}
	return &Bitmap{imageBase: newBase(w, h), bits: bits}, nil
}

func (bm *Bitmap) pixels() (*image.NRGBA, *image.Alpha) {
	return nil, bitsToAlpha(bm.bits, bm.dataW, bm.dataH)
}

func bitsToAlpha(bits []byte, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	stride := (w + 7) / 8
	for y := 0; y < h; y++ {
		row := bits[y*stride:]
		for x := 0; x < w; x++ {
			if row[x>>3]&(1<<(x&7)) != 0 {
				mask.Pix[y*mask.Stride+x] = 0xff
			}
		}
	}
	return mask
}

// Pixmap is an indexed-color image. Palette entries with zero alpha are
// transparent and give the pixmap a mask.
type Pixmap struct {
	imageBase
	palette []color.NRGBA
	index   []byte
}

// NewPixmap wraps a w x h index array and its palette.
func NewPixmap(palette []color.NRGBA, index []byte, w, h int) (*Pixmap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("fldraw: pixmap size %dx%d", w, h)
	}
	if len(index) < w*h {
		return nil, fmt.Errorf("%w: pixmap %dx%d needs %d indexes, got %d", ErrImageData, w, h, w*h, len(index))
	}
	return &Pixmap{imageBase: newBase(w, h), palette: palette, index: index}, nil
}

func (pm *Pixmap) pixels() (*image.NRGBA, *image.Alpha) {
	w, h := pm.dataW, pm.dataH
	pix := image.NewNRGBA(image.Rect(0, 0, w, h))
	var mask *image.Alpha
	for i, idx := range pm.index[:w*h] {
		var c color.NRGBA
		if int(idx) < len(pm.palette) {
			c = pm.palette[idx]
		}
		if c.A == 0 {
			if mask == nil {
				mask = opaqueAlpha(w, h)
			}
			mask.Pix[(i/w)*mask.Stride+i%w] = 0
			continue
		}
		c.A = 0xff
		pix.SetNRGBA(i%w, i/w, c)
	}
	return pix, mask
}

func opaqueAlpha(w, h int) *image.Alpha {
	a := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range a.Pix {
		a.Pix[i] = 0xff
	}
	return a
}

// RGBImage is a direct-color image with depth 1 (gray), 2 (gray, alpha),
// 3 (RGB) or 4 (RGBA) bytes per pixel.
type RGBImage struct {
	imageBase
	pix    []byte
	depth  int
	stride int
}

// NewRGBImage wraps pix as a w x h image of the given depth. stride is the
// byte distance between rows; 0 means w*depth.
func NewRGBImage(pix []byte, w, h, depth, stride int) (*RGBImage, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("fldraw: rgb image size %dx%d", w, h)
	}
	if depth < 1 || depth > 4 {
		return nil, fmt.Errorf("fldraw: rgb image depth %d", depth)
	}
	if stride == 0 {
		stride = w * depth
	}
	if stride < w*depth || len(pix) < stride*(h-1)+w*depth {
		return nil, fmt.Errorf("%w: rgb image %dx%dx%d stride %d, got %d bytes", ErrImageData, w, h, depth, stride, len(pix))
	}
	return &RGBImage{imageBase: newBase(w, h), pix: pix, depth: depth, stride: stride}, nil
}

// NewRGBImageFrom copies any image.Image into a depth-4 RGBImage.
func NewRGBImageFrom(src image.Image) *RGBImage {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	img, _ := NewRGBImage(dst.Pix, b.Dx(), b.Dy(), 4, dst.Stride)
	return img
}

// Depth returns the number of bytes per pixel.
func (ri *RGBImage) Depth() int { return ri.depth }

func (ri *RGBImage) pixels() (*image.NRGBA, *image.Alpha) {
	return bufferToNRGBA(ri.pix, ri.dataW, ri.dataH, ri.depth, ri.stride), nil
}

// bufferToNRGBA converts a raw pixel buffer of the given depth and stride
// into an NRGBA image.
func bufferToNRGBA(buf []byte, w, h, depth, stride int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := buf[y*stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			s := src[x*depth:]
			d := dst[x*4 : x*4+4]
			switch depth {
			case 1:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 0xff
			case 2:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], s[1]
			case 3:
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
			default:
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], s[3]
			}
		}
	}
	return out
}
