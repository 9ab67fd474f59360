package fldraw

import "image"

// Visibility is the answer of a rectangle-in-region test.
type Visibility int

const (
	// Out means no part of the rectangle can be drawn.
	Out Visibility = iota
	// In means the whole rectangle lies inside the clip.
	In
	// Partial means some part of the rectangle might be visible.
	Partial
)

// String implements fmt.Stringer.
func (v Visibility) String() string {
	switch v {
	case Out:
		return "Out"
	case In:
		return "In"
	case Partial:
		return "Partial"
	default:
		return "Visibility(?)"
	}
}

// Region is a set of device pixels stored as pairwise-disjoint rectangles.
// It plays the role of the host windowing system's region handle: drivers
// only create it from a rectangle, union rectangles into it, intersect it,
// test it and release it.
type Region struct {
	rects    []image.Rectangle
	released bool
}

// NewRectRegion returns a region covering the w x h rectangle at (x, y).
// A non-positive size gives an empty region.
func NewRectRegion(x, y, w, h int) *Region {
	r := &Region{}
	r.AddRect(x, y, w, h)
	return r
}

// AddRect unions the w x h rectangle at (x, y) into r.
func (r *Region) AddRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	pieces := []image.Rectangle{image.Rect(x, y, x+w, y+h)}
	for _, have := range r.rects {
		var next []image.Rectangle
		for _, p := range pieces {
			next = append(next, subtractRect(p, have)...)
		}
		pieces = next
		if len(pieces) == 0 {
			return
		}
	}
	r.rects = append(r.rects, pieces...)
}

// subtractRect returns a minus b as at most four disjoint rectangles.
func subtractRect(a, b image.Rectangle) []image.Rectangle {
	in := a.Intersect(b)
	if in.Empty() {
		return []image.Rectangle{a}
	}
	var out []image.Rectangle
	if a.Min.Y < in.Min.Y {
		out = append(out, image.Rect(a.Min.X, a.Min.Y, a.Max.X, in.Min.Y))
	}
	if in.Max.Y < a.Max.Y {
		out = append(out, image.Rect(a.Min.X, in.Max.Y, a.Max.X, a.Max.Y))
	}
	if a.Min.X < in.Min.X {
		out = append(out, image.Rect(a.Min.X, in.Min.Y, in.Min.X, in.Max.Y))
	}
	if in.Max.X < a.Max.X {
		out = append(out, image.Rect(in.Max.X, in.Min.Y, a.Max.X, in.Max.Y))
	}
	return out
}

// Intersect returns a new region holding the pixels present in both r and o.
func (r *Region) Intersect(o *Region) *Region {
	out := &Region{}
	for _, a := range r.rects {
		for _, b := range o.rects {
			if in := a.Intersect(b); !in.Empty() {
				out.rects = append(out.rects, in)
			}
		}
	}
	return out
}

// IntersectRect returns a new region holding the pixels of r inside the
// w x h rectangle at (x, y).
func (r *Region) IntersectRect(x, y, w, h int) *Region {
	return r.Intersect(NewRectRegion(x, y, w, h))
}

// Empty reports whether r contains no pixel.
func (r *Region) Empty() bool {
	return r == nil || len(r.rects) == 0
}

// Rects returns a copy of the disjoint rectangles making up r.
func (r *Region) Rects() []image.Rectangle {
	if r == nil {
		return nil
	}
	out := make([]image.Rectangle, len(r.rects))
	copy(out, r.rects)
	return out
}

// Bounds returns the smallest rectangle containing r.
func (r *Region) Bounds() image.Rectangle {
	var b image.Rectangle
	if r == nil {
		return b
	}
	for _, rc := range r.rects {
		b = b.Union(rc)
	}
	return b
}

// Contains reports whether the pixel (x, y) belongs to r.
func (r *Region) Contains(x, y int) bool {
	p := image.Pt(x, y)
	for _, rc := range r.rects {
		if p.In(rc) {
			return true
		}
	}
	return false
}

// RectIn tests the w x h rectangle at (x, y) against r. A rectangle that
// spans several of r's pieces is reported Partial even when the pieces
// cover it entirely; callers only use the answer to skip work.
func (r *Region) RectIn(x, y, w, h int) Visibility {
	if w <= 0 || h <= 0 {
		return Out
	}
	q := image.Rect(x, y, x+w, y+h)
	vis := Out
	for _, rc := range r.rects {
		if q.In(rc) {
			return In
		}
		if q.Overlaps(rc) {
			vis = Partial
		}
	}
	return vis
}

// Scale returns a new region with every rectangle mapped through Floor
// with factor f. Edges are scaled independently so neighbouring
// rectangles stay adjacent.
func (r *Region) Scale(f float64) *Region {
	out := &Region{}
	for _, rc := range r.rects {
		x0, y0 := floorf(float64(rc.Min.X), f), floorf(float64(rc.Min.Y), f)
		x1, y1 := floorf(float64(rc.Max.X), f), floorf(float64(rc.Max.Y), f)
		out.AddRect(x0, y0, x1-x0, y1-y0)
	}
	return out
}

// Unscale is the inverse of Scale: it maps device rectangles scaled by f
// back to logical units, rounding each edge to the nearest unit.
func (r *Region) Unscale(f float64) *Region {
	out := &Region{}
	for _, rc := range r.rects {
		x0, y0 := unscaleRound(rc.Min.X, f), unscaleRound(rc.Min.Y, f)
		x1, y1 := unscaleRound(rc.Max.X, f), unscaleRound(rc.Max.Y, f)
		out.AddRect(x0, y0, x1-x0, y1-y0)
	}
	return out
}

// Clone returns an independent copy of r.
func (r *Region) Clone() *Region {
	if r == nil {
		return nil
	}
	return &Region{rects: r.Rects()}
}

// Release frees r. Releasing twice is harmless; a released region is empty.
func (r *Region) Release() {
	if r == nil || r.released {
		return
	}
	r.rects = nil
	r.released = true
}
