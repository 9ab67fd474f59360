package fldraw

import "image"

// PushClip restricts drawing to the intersection of the current clip and
// the w x h rectangle at (x, y).
func (d *Driver) PushClip(x, y, w, h int) {
	d.report(d.clip.PushRect(x, y, w, h))
	d.RestoreClip()
}

// PushNoClip pushes an unrestricted entry.
func (d *Driver) PushNoClip() {
	d.report(d.clip.PushNone())
	d.RestoreClip()
}

// PopClip restores the clip active before the matching push.
func (d *Driver) PopClip() {
	d.report(d.clip.Pop())
	d.RestoreClip()
}

// ClipBox intersects the w x h rectangle at (x, y) with the current clip.
// changed reports whether the result differs from the input; a zero size
// means nothing is visible.
func (d *Driver) ClipBox(x, y, w, h int) (cx, cy, cw, ch int, changed bool) {
	r := d.clip.Current()
	if r == nil {
		return x, y, w, h, false
	}
	if w <= 0 || h <= 0 {
		return x, y, 0, 0, true
	}
	in := r.IntersectRect(x, y, w, h)
	b := in.Bounds()
	in.Release()
	if b.Empty() {
		return x, y, 0, 0, true
	}
	cx, cy, cw, ch = b.Min.X, b.Min.Y, b.Dx(), b.Dy()
	return cx, cy, cw, ch, cx != x || cy != y || cw != w || ch != h
}

// NotClipped reports how much of the w x h rectangle at (x, y) can be
// drawn. The answer is conservative: Partial may also mean In.
func (d *Driver) NotClipped(x, y, w, h int) Visibility {
	if w <= 0 || h <= 0 {
		return Out
	}
	r := d.clip.Current()
	if r == nil {
		return In
	}
	return r.RectIn(x, y, w, h)
}

// ClipRegion returns the active clip region, or nil when drawing is
// unrestricted. The region stays owned by the driver.
func (d *Driver) ClipRegion() *Region { return d.clip.Current() }

// SetClipRegion replaces the active clip region with r, which the driver
// now owns. The replaced region is released.
func (d *Driver) SetClipRegion(r *Region) {
	if old := d.clip.Replace(r); old != r {
		old.Release()
	}
	d.RestoreClip()
}

// RestoreClip passes the active clip region to the backend.
func (d *Driver) RestoreClip() {
	if cs, ok := d.backend.(ClipSetter); ok {
		cs.SetClip(d.clip.Current())
	}
}

// ScaleClip implements Unscaled.
func (d *Driver) ScaleClip(f float64) *Region {
	old := d.clip.Current()
	if old == nil {
		return nil
	}
	d.clip.Replace(old.Scale(f))
	d.RestoreClip()
	return old
}

// UnscaleClip implements Unscaled.
func (d *Driver) UnscaleClip(r *Region) {
	if cur := d.clip.Replace(r); cur != r {
		cur.Release()
	}
	d.RestoreClip()
}

// clipRect returns the visible part of rc, ignoring multi-rectangle
// detail.
func (d *Driver) clipRect(rc image.Rectangle) image.Rectangle {
	return rc.Intersect(d.drawBounds())
}
