package recording

import "github.com/gogpu/fldraw"

// ResourcePool stores the cache entries referenced by DrawFixed commands.
// An entry is stored once however often it is drawn. Entries are never
// modified after creation, so the pool keeps the pointers.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	images []*fldraw.CacheEntry
	byID   map[uint64]ImageRef
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		images: make([]*fldraw.CacheEntry, 0, 8),
		byID:   make(map[uint64]ImageRef),
	}
}

// AddImage adds a cache entry to the pool and returns its reference.
// A nil entry yields an invalid reference.
func (p *ResourcePool) AddImage(e *fldraw.CacheEntry) ImageRef {
	if e == nil {
		return ImageRef(InvalidRef)
	}
	if ref, ok := p.byID[e.ID]; ok {
		return ref
	}
	p.images = append(p.images, e)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := ImageRef(uint32(len(p.images) - 1))
	p.byID[e.ID] = ref
	return ref
}

// GetImage returns the entry for the given reference, or nil.
func (p *ResourcePool) GetImage(ref ImageRef) *fldraw.CacheEntry {
	if !ref.IsValid() || int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of entries in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Clone returns a copy sharing the immutable entries.
func (p *ResourcePool) Clone() *ResourcePool {
	c := &ResourcePool{
		images: append([]*fldraw.CacheEntry(nil), p.images...),
		byID:   make(map[uint64]ImageRef, len(p.byID)),
	}
	for k, v := range p.byID {
		c.byID[k] = v
	}
	return c
}
