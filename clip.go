package fldraw

// ClipStackSize is the number of clip slots a ClipStack holds. Slot 0 is
// the permanent "no clip" base, so MaxClipDepth pushes fit.
const ClipStackSize = 10

// MaxClipDepth is the number of clip pushes a ClipStack accepts.
const MaxClipDepth = ClipStackSize - 1

// ClipStack manages nested clip regions in device coordinates. Each slot
// owns its region; a nil slot means drawing is unrestricted.
type ClipStack struct {
	slots [ClipStackSize]*Region
	top   int
}

// NewClipStack returns an empty, unrestricted clip stack.
func NewClipStack() *ClipStack {
	return &ClipStack{}
}

// Depth returns the number of pushed entries.
func (cs *ClipStack) Depth() int {
	return cs.top
}

// Current returns the active region, or nil when drawing is unrestricted.
// The region is still owned by the stack.
func (cs *ClipStack) Current() *Region {
	return cs.slots[cs.top]
}

// PushRect pushes the intersection of the current region with the w x h
// rectangle at (x, y). A non-positive size pushes an empty region, which
// hides all drawing until popped.
func (cs *ClipStack) PushRect(x, y, w, h int) error {
	if cs.top == MaxClipDepth {
		return ErrClipStackOverflow
	}
	r := NewRectRegion(x, y, w, h)
	if cur := cs.slots[cs.top]; cur != nil {
		in := cur.Intersect(r)
		r.Release()
		r = in
	}
	cs.top++
	cs.slots[cs.top] = r
	return nil
}

// PushNone pushes an unrestricted entry.
func (cs *ClipStack) PushNone() error {
	if cs.top == MaxClipDepth {
		return ErrClipStackOverflow
	}
	cs.top++
	cs.slots[cs.top] = nil
	return nil
}

// Pop releases the top region and restores the previous one.
func (cs *ClipStack) Pop() error {
	if cs.top == 0 {
		return ErrClipStackUnderflow
	}
	cs.slots[cs.top].Release()
	cs.slots[cs.top] = nil
	cs.top--
	return nil
}

// Replace makes r the active region and returns the region it displaced.
// Ownership of the returned region passes to the caller; r becomes owned
// by the stack. Replacing the base slot is allowed: it is how a clip
// region installed from outside the driver takes effect.
func (cs *ClipStack) Replace(r *Region) *Region {
	old := cs.slots[cs.top]
	cs.slots[cs.top] = r
	return old
}

// Reset releases every region and returns to the unrestricted state.
func (cs *ClipStack) Reset() {
	for i := range cs.slots {
		cs.slots[i].Release()
		cs.slots[i] = nil
	}
	cs.top = 0
}
