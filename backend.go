package fldraw

import (
	"image"
	"image/color"
)

// Backend writes device pixels for a Driver. It is the only interface a
// platform must implement; every Canvas operation reduces to these three
// calls when no capability below is offered. Coordinates are device pixels
// and are already clipped to Bounds and to the active clip region.
type Backend interface {
	// Bounds returns the drawable device area.
	Bounds() image.Rectangle
	// FillSpan paints the pixels x0 <= x < x1 of row y opaquely.
	FillSpan(y, x0, x1 int, c color.NRGBA)
	// BlendPixel composites c over the pixel (x, y) with the given
	// coverage, 0 being transparent and 255 opaque.
	BlendPixel(x, y int, c color.NRGBA, coverage uint8)
}

// RectFiller is implemented by backends that fill rectangles faster than
// row by row.
type RectFiller interface {
	FillRect(r image.Rectangle, c color.NRGBA)
}

// ClipSetter is implemented by backends that want to know the active clip
// region, for example to clip the output of FixedDrawer or ImageScaler.
// A nil region means drawing is unrestricted.
type ClipSetter interface {
	SetClip(r *Region)
}

// ImageScaler is implemented by backends that can scale an image and draw
// it in one step. src has the image's natural resolution; the backend maps
// it onto the CacheW x CacheH device rectangle at (X-CX, Y-CY) and shows
// only the W x H part at (X, Y). ScaleImage returns false to fall back to
// the cached path.
type ImageScaler interface {
	ScaleImage(src image.Image, p Placement) bool
}

// FixedDrawer is implemented by backends that draw device-resolution
// cache entries themselves. fg is the color bitmaps are drawn with.
type FixedDrawer interface {
	DrawFixed(e *CacheEntry, p Placement, fg color.NRGBA)
}

// CacheReleaser is implemented by backends that keep resources keyed by
// CacheEntry.ID and must free them when an entry is dropped.
type CacheReleaser interface {
	Release(id uint64)
}

// OffscreenCopier is implemented by backends that copy from an offscreen
// buffer faster than pixel by pixel. It reports whether it handled the copy.
type OffscreenCopier interface {
	CopyFrom(dst image.Rectangle, src image.Image, sp image.Point) bool
}

// FeatureReporter is implemented by backends that advertise features.
type FeatureReporter interface {
	Features() Feature
}

// Feature is a set of backend features.
type Feature uint

const (
	// FeatureNative marks a driver drawing to the screen.
	FeatureNative Feature = 1 << iota
	// FeaturePrinter marks a driver producing printed output.
	FeaturePrinter
)

// Placement locates the visible part of an image in device pixels.
type Placement struct {
	X, Y           int // top-left visible device pixel
	W, H           int // visible device size
	CX, CY         int // offset of (X, Y) inside the device-resolution image
	CacheW, CacheH int // device size of the whole image
	Scale          float64
	Scaling        Scaling
}

// Rect returns the visible device rectangle.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// Full returns the device rectangle the whole image would cover.
func (p Placement) Full() image.Rectangle {
	x, y := p.X-p.CX, p.Y-p.CY
	return image.Rect(x, y, x+p.CacheW, y+p.CacheH)
}
