package fldraw

import (
	"image"
	"sync/atomic"
)

// CacheEntry is an image resampled to device resolution. Pix is nil for
// bitmaps, which are drawn in the current color through Mask; Mask is nil
// for fully opaque images.
type CacheEntry struct {
	ID    uint64
	Pix   *image.NRGBA
	Mask  *image.Alpha
	W, H  int
	Scale float64
}

// nextCacheID numbers entries process-wide so backends can key resources
// on CacheEntry.ID whichever driver created the entry.
var nextCacheID atomic.Uint64

// CacheStats reports ImageCache activity.
type CacheStats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// ImageCache creates and reuses the device-resolution copies of images.
// The copy lives in the image itself, one per image: drawing an image at a
// new size or scale regenerates it. Drivers may share one ImageCache.
type ImageCache struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	invalidations atomic.Uint64
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{}
}

// Stats returns the counters accumulated so far.
func (c *ImageCache) Stats() CacheStats {
	return CacheStats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

// Entry returns the current cache entry of img, or nil.
func (c *ImageCache) Entry(img Image) *CacheEntry {
	if isNil(img) {
		return nil
	}
	s := img.slot()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry
}

// Lookup returns the w x h entry of img for the given scale, building it
// when the image has none or a stale one. A stale entry is passed to rel
// before it is dropped; rel may be nil.
func (c *ImageCache) Lookup(img Image, w, h int, scale float64, rel CacheReleaser) *CacheEntry {
	s := img.slot()
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.entry; e != nil {
		if e.W == w && e.H == h && e.Scale == scale {
			c.hits.Add(1)
			return e
		}
		c.invalidations.Add(1)
		if rel != nil {
			rel.Release(e.ID)
		}
		Logger().Debug("fldraw: image cache invalidated",
			"id", e.ID, "size", image.Pt(e.W, e.H), "scale", e.Scale, "newScale", scale)
	}
	c.misses.Add(1)
	s.entry = buildEntry(img, w, h, scale)
	return s.entry
}

// Uncache drops the entry of img. Calling it again, or on an image that was
// never drawn, does nothing.
func (c *ImageCache) Uncache(img Image, rel CacheReleaser) {
	if isNil(img) {
		return
	}
	s := img.slot()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == nil {
		return
	}
	if rel != nil {
		rel.Release(s.entry.ID)
	}
	s.entry = nil
}

func buildEntry(img Image, w, h int, scale float64) *CacheEntry {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	pix, mask := img.pixels()
	e := &CacheEntry{ID: nextCacheID.Add(1), W: w, H: h, Scale: scale}
	if pix != nil {
		e.Pix = resampleNRGBA(pix, w, h, img.scaling())
	}
	if mask != nil {
		e.Mask = resampleAlpha(mask, w, h, img.scaling())
	}
	return e
}

// Bitmask is a 1-bit mask prepared for repeated drawing.
type Bitmask struct {
	Mask *image.Alpha
}

// newBitmask expands LSB-first bitmap rows into a coverage mask.
func newBitmask(w, h int, bits []byte) *Bitmask {
	if w <= 0 || h <= 0 || len(bits) < (w+7)/8*h {
		return nil
	}
	return &Bitmask{Mask: bitsToAlpha(bits, w, h)}
}

// release frees the mask; it is safe to call on nil or twice.
func (b *Bitmask) release() {
	if b != nil {
		b.Mask = nil
	}
}
