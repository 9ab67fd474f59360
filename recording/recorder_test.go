package recording

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fldraw"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func testImage(t *testing.T) *fldraw.RGBImage {
	t.Helper()
	pix := make([]byte, 4*4*3)
	for i := range pix {
		pix[i] = 0x80
	}
	img, err := fldraw.NewRGBImage(pix, 4, 4, 3, 0)
	if err != nil {
		t.Fatalf("NewRGBImage: %v", err)
	}
	return img
}

func TestRecorderRectf(t *testing.T) {
	rec := NewRecorder(20, 20)
	d := fldraw.NewDriver(rec)
	d.SetColor(fldraw.Red)
	d.Rectf(1, 2, 3, 4)

	want := []Command{FillRectCommand{Rect: image.Rect(1, 2, 4, 6), Color: red}}
	if diff := cmp.Diff(want, rec.Finish().Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderClip(t *testing.T) {
	rec := NewRecorder(20, 20)
	d := fldraw.NewDriver(rec)
	d.PushClip(0, 0, 5, 5)
	d.SetColor(fldraw.Red)
	d.Rectf(2, 2, 10, 10)
	d.PopClip()

	want := []Command{
		SetClipCommand{Rects: []image.Rectangle{image.Rect(0, 0, 5, 5)}},
		FillRectCommand{Rect: image.Rect(2, 2, 5, 5), Color: red},
		SetClipCommand{},
	}
	if diff := cmp.Diff(want, rec.Finish().Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderScaleChangeReleasesEntry(t *testing.T) {
	rec := NewRecorder(40, 40)
	c := fldraw.NewScaled(fldraw.NewDriver(rec), 1)
	img := testImage(t)

	c.DrawRGB(img, 0, 0, 4, 4, 0, 0)
	c.DrawRGB(img, 0, 0, 4, 4, 0, 0)
	c.SetScale(2)
	c.DrawRGB(img, 0, 0, 4, 4, 0, 0)

	r := rec.Finish()
	if got := r.Count(CmdDrawFixed); got != 3 {
		t.Fatalf("DrawFixed count = %d, want 3", got)
	}
	if got := r.Count(CmdRelease); got != 1 {
		t.Errorf("Release count = %d, want 1", got)
	}
	if got := r.Resources().ImageCount(); got != 2 {
		t.Errorf("pooled entries = %d, want 2", got)
	}

	var fixed []DrawFixedCommand
	var released uint64
	for _, cmd := range r.Commands() {
		switch c := cmd.(type) {
		case DrawFixedCommand:
			fixed = append(fixed, c)
		case ReleaseCommand:
			released = c.EntryID
		}
	}
	if fixed[0].EntryID != fixed[1].EntryID {
		t.Error("second draw at the same scale should reuse the entry")
	}
	if released != fixed[0].EntryID {
		t.Errorf("released entry %d, want %d", released, fixed[0].EntryID)
	}
	if e := r.Resources().GetImage(fixed[2].Image); e.W != 8 || e.H != 8 || e.Scale != 2 {
		t.Errorf("entry at scale 2 = %dx%d@%g, want 8x8@2", e.W, e.H, e.Scale)
	}
	if got, want := fixed[2].Placement.Rect(), image.Rect(0, 0, 8, 8); got != want {
		t.Errorf("placement = %v, want %v", got, want)
	}
}

func TestRecorderUncacheIdempotent(t *testing.T) {
	rec := NewRecorder(10, 10)
	d := fldraw.NewDriver(rec)
	img := testImage(t)

	d.Uncache(img)
	d.DrawRGB(img, 0, 0, 4, 4, 0, 0)
	d.Uncache(img)
	d.Uncache(img)

	if got := rec.Finish().Count(CmdRelease); got != 1 {
		t.Errorf("Release count = %d, want 1", got)
	}
}

func TestRecorderFeatures(t *testing.T) {
	rec := NewRecorder(10, 10)
	d := fldraw.NewDriver(rec)
	if d.HasFeature(fldraw.FeaturePrinter) {
		t.Error("printer feature reported before it was set")
	}
	rec.SetFeatures(fldraw.FeaturePrinter)
	if !d.HasFeature(fldraw.FeaturePrinter) || d.HasFeature(fldraw.FeatureNative) {
		t.Error("features not reported as set")
	}
}

func TestFinishIsSnapshot(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.FillSpan(0, 0, 1, red)
	r := rec.Finish()
	rec.FillSpan(1, 0, 1, red)
	if len(r.Commands()) != 1 || rec.Len() != 2 {
		t.Errorf("recording has %d commands, recorder %d; want 1 and 2", len(r.Commands()), rec.Len())
	}
	rec.Reset()
	if rec.Len() != 0 {
		t.Errorf("Len() after Reset = %d", rec.Len())
	}
}

func TestPlayback(t *testing.T) {
	draw := func(c fldraw.Canvas) {
		c.SetColor(fldraw.Blue)
		c.Rectf(1, 1, 6, 4)
		c.PushClip(0, 0, 5, 10)
		c.SetColor(fldraw.Red)
		c.XYLine(0, 6, 9)
		c.DrawRGB(testImage(t), 4, 3, 4, 4, 0, 0)
		c.PopClip()
	}

	direct := fldraw.NewOffscreen(10, 10)
	draw(fldraw.NewDriver(direct))

	rec := NewRecorder(10, 10)
	draw(fldraw.NewDriver(rec))
	replayed := fldraw.NewOffscreen(10, 10)
	rec.Finish().Playback(replayed)

	if diff := cmp.Diff(direct.Image().Pix, replayed.Image().Pix); diff != "" {
		t.Errorf("playback differs from direct drawing (-direct +replayed):\n%s", diff)
	}
}

func TestPainted(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.FillRect(image.Rect(0, 0, 2, 1), red)
	rec.FillSpan(3, 1, 3, red)
	rec.BlendPixel(5, 5, red, 0)
	rec.BlendPixel(6, 6, red, 10)

	want := map[image.Point]bool{
		{0, 0}: true, {1, 0}: true,
		{1, 3}: true, {2, 3}: true,
		{6, 6}: true,
	}
	if diff := cmp.Diff(want, rec.Finish().Painted()); diff != "" {
		t.Errorf("Painted() mismatch (-want +got):\n%s", diff)
	}
}

func TestResourcePool(t *testing.T) {
	p := NewResourcePool()
	e := &fldraw.CacheEntry{ID: 42}
	a, b := p.AddImage(e), p.AddImage(e)
	if a != b || p.ImageCount() != 1 {
		t.Errorf("same entry pooled twice: refs %d %d, count %d", a, b, p.ImageCount())
	}
	if ref := p.AddImage(nil); ref.IsValid() {
		t.Error("nil entry should give an invalid reference")
	}
	if p.GetImage(ImageRef(InvalidRef)) != nil || p.GetImage(5) != nil {
		t.Error("GetImage of a bad reference should be nil")
	}
	if CmdDrawFixed.String() != "DrawFixed" || CommandType(200).String() != "Unknown" {
		t.Error("CommandType.String mismatch")
	}
}
