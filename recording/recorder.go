package recording

import (
	"image"
	"image/color"

	"github.com/gogpu/fldraw"
)

// Recorder captures the device operations of a driver as commands.
// It implements fldraw.Backend together with the RectFiller, ClipSetter,
// FixedDrawer, CacheReleaser and FeatureReporter capabilities. Use Finish
// to obtain an immutable Recording.
//
// Example:
//
//	rec := recording.NewRecorder(800, 600)
//	d := fldraw.NewDriver(rec)
//	d.SetColor(fldraw.Red)
//	d.Rectf(10, 10, 100, 100)
//	r := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	bounds    image.Rectangle
	features  fldraw.Feature
	commands  []Command
	resources *ResourcePool
}

// NewRecorder creates a Recorder with a width x height device area.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		bounds:    image.Rect(0, 0, width, height),
		commands:  make([]Command, 0, 256),
		resources: NewResourcePool(),
	}
}

// SetFeatures sets the features the recorder advertises, so drivers can
// be tested against screen and printer backends.
func (r *Recorder) SetFeatures(f fldraw.Feature) {
	r.features = f
}

// Bounds implements fldraw.Backend.
func (r *Recorder) Bounds() image.Rectangle { return r.bounds }

// FillSpan implements fldraw.Backend.
func (r *Recorder) FillSpan(y, x0, x1 int, c color.NRGBA) {
	r.commands = append(r.commands, FillSpanCommand{Y: y, X0: x0, X1: x1, Color: c})
}

// BlendPixel implements fldraw.Backend.
func (r *Recorder) BlendPixel(x, y int, c color.NRGBA, coverage uint8) {
	r.commands = append(r.commands, BlendPixelCommand{X: x, Y: y, Color: c, Coverage: coverage})
}

// FillRect implements fldraw.RectFiller.
func (r *Recorder) FillRect(rect image.Rectangle, c color.NRGBA) {
	r.commands = append(r.commands, FillRectCommand{Rect: rect, Color: c})
}

// SetClip implements fldraw.ClipSetter.
func (r *Recorder) SetClip(reg *fldraw.Region) {
	var rects []image.Rectangle
	if reg != nil {
		rects = reg.Rects()
	}
	r.commands = append(r.commands, SetClipCommand{Rects: rects})
}

// DrawFixed implements fldraw.FixedDrawer.
func (r *Recorder) DrawFixed(e *fldraw.CacheEntry, p fldraw.Placement, fg color.NRGBA) {
	ref := r.resources.AddImage(e)
	var id uint64
	if e != nil {
		id = e.ID
	}
	r.commands = append(r.commands, DrawFixedCommand{Image: ref, EntryID: id, Placement: p, Color: fg})
}

// Release implements fldraw.CacheReleaser.
func (r *Recorder) Release(id uint64) {
	r.commands = append(r.commands, ReleaseCommand{EntryID: id})
}

// Features implements fldraw.FeatureReporter.
func (r *Recorder) Features() fldraw.Feature { return r.features }

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int { return len(r.commands) }

// Reset drops every recorded command and pooled entry.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.resources = NewResourcePool()
}

// Finish returns a Recording of the commands so far. The recorder keeps
// recording; later commands do not affect the returned Recording.
func (r *Recorder) Finish() *Recording {
	cmds := make([]Command, len(r.commands))
	copy(cmds, r.commands)
	return &Recording{
		bounds:    r.bounds,
		commands:  cmds,
		resources: r.resources.Clone(),
	}
}

// Recording is an immutable sequence of device commands.
type Recording struct {
	bounds    image.Rectangle
	commands  []Command
	resources *ResourcePool
}

// Bounds returns the device area of the recorder.
func (rec *Recording) Bounds() image.Rectangle { return rec.bounds }

// Commands returns the recorded commands. The slice must not be modified.
func (rec *Recording) Commands() []Command { return rec.commands }

// Resources returns the pool of cache entries.
func (rec *Recording) Resources() *ResourcePool { return rec.resources }

// Count returns how many commands of type t were recorded.
func (rec *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range rec.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Painted returns the set of device pixels written by span, rectangle and
// pixel commands with non-zero coverage. Fixed images are not included.
func (rec *Recording) Painted() map[image.Point]bool {
	px := make(map[image.Point]bool)
	for _, cmd := range rec.commands {
		switch c := cmd.(type) {
		case FillSpanCommand:
			for x := c.X0; x < c.X1; x++ {
				px[image.Pt(x, c.Y)] = true
			}
		case FillRectCommand:
			for y := c.Rect.Min.Y; y < c.Rect.Max.Y; y++ {
				for x := c.Rect.Min.X; x < c.Rect.Max.X; x++ {
					px[image.Pt(x, y)] = true
				}
			}
		case BlendPixelCommand:
			if c.Coverage > 0 {
				px[image.Pt(c.X, c.Y)] = true
			}
		}
	}
	return px
}

// Playback replays the recording onto b, clipped to its bounds. Optional
// capabilities of b are used when present; otherwise rectangles become
// spans and fixed images are blended pixel by pixel.
func (rec *Recording) Playback(b fldraw.Backend) {
	bounds := b.Bounds()
	rf, _ := b.(fldraw.RectFiller)
	cs, _ := b.(fldraw.ClipSetter)
	fd, _ := b.(fldraw.FixedDrawer)
	rel, _ := b.(fldraw.CacheReleaser)
	var clip *fldraw.Region

	for _, cmd := range rec.commands {
		switch c := cmd.(type) {
		case FillSpanCommand:
			if c.Y < bounds.Min.Y || c.Y >= bounds.Max.Y {
				continue
			}
			x0, x1 := max(c.X0, bounds.Min.X), min(c.X1, bounds.Max.X)
			if x0 < x1 {
				b.FillSpan(c.Y, x0, x1, c.Color)
			}
		case FillRectCommand:
			r := c.Rect.Intersect(bounds)
			if r.Empty() {
				continue
			}
			if rf != nil {
				rf.FillRect(r, c.Color)
				continue
			}
			for y := r.Min.Y; y < r.Max.Y; y++ {
				b.FillSpan(y, r.Min.X, r.Max.X, c.Color)
			}
		case BlendPixelCommand:
			if image.Pt(c.X, c.Y).In(bounds) {
				b.BlendPixel(c.X, c.Y, c.Color, c.Coverage)
			}
		case SetClipCommand:
			clip = regionOf(c.Rects)
			if cs != nil {
				cs.SetClip(clip)
			}
		case DrawFixedCommand:
			e := rec.resources.GetImage(c.Image)
			if e == nil {
				continue
			}
			if fd != nil {
				fd.DrawFixed(e, c.Placement, c.Color)
				continue
			}
			blit(b, bounds, clip, e, c.Placement, c.Color)
		case ReleaseCommand:
			if rel != nil {
				rel.Release(c.EntryID)
			}
		}
	}
}

func regionOf(rects []image.Rectangle) *fldraw.Region {
	if rects == nil {
		return nil
	}
	reg := fldraw.NewRectRegion(0, 0, 0, 0)
	for _, r := range rects {
		reg.AddRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	return reg
}

// blit draws the visible part of e at p, honouring the clip.
func blit(b fldraw.Backend, bounds image.Rectangle, clip *fldraw.Region, e *fldraw.CacheEntry, p fldraw.Placement, fg color.NRGBA) {
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
			dx, dy := p.X+x, p.Y+y
			if !image.Pt(dx, dy).In(bounds) || (clip != nil && !clip.Contains(dx, dy)) {
				continue
			}
			c, a := fg, uint8(0xff)
			if e.Pix != nil {
				s := e.Pix.NRGBAAt(sx, sy)
				c, a = color.NRGBA{R: s.R, G: s.G, B: s.B, A: 0xff}, s.A
			}
			if e.Mask != nil {
				a = uint8(int(a) * int(e.Mask.AlphaAt(sx, sy).A) / 0xff)
			}
			if a > 0 {
				b.BlendPixel(dx, dy, c, a)
			}
		}
	}
}
