package fldraw

import (
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// frame returns the pixels of a w x h outline at (x, y) with edges t
// pixels thick.
func frame(x, y, w, h, t int) map[image.Point]bool {
	px := make(map[image.Point]bool)
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if i < x+t || i >= x+w-t || j < y+t || j >= y+h-t {
				px[image.Pt(i, j)] = true
			}
		}
	}
	return px
}

func TestHairlineRect(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  map[image.Point]bool
	}{
		{"scale 1", 1, frame(10, 10, 5, 5, 1)},
		{"scale 1.5", 1.5, frame(15, 15, 7, 7, 1)},
		{"scale 2", 2, frame(20, 20, 10, 10, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := NewOffscreen(40, 40)
			c := NewScaled(NewDriver(off), tt.scale)
			c.SetColor(Black)
			c.Rect(10, 10, 5, 5)
			if diff := cmp.Diff(tt.want, painted(off)); diff != "" {
				t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDriverRectMatchesScaleOne(t *testing.T) {
	a, b := NewOffscreen(30, 30), NewOffscreen(30, 30)
	NewDriver(a).Rect(3, 4, 10, 7)
	NewScaled(NewDriver(b), 1).Rect(3, 4, 10, 7)
	if diff := cmp.Diff(a.Image().Pix, b.Image().Pix); diff != "" {
		t.Error("Scaled at 1 differs from the bare driver")
	}
}

func TestScaledRectfTiles(t *testing.T) {
	for _, s := range []float64{1.25, 1.5, 1.75} {
		off := NewOffscreen(100, 20)
		c := NewScaled(NewDriver(off), s)
		c.SetColor(Red)
		c.Rectf(0, 0, 7, 5)
		c.SetColor(Blue)
		c.Rectf(7, 0, 9, 5)

		edge := Floor(7, s)
		if got := off.Pixel(edge-1, 0); got.R != 0xff {
			t.Errorf("scale %g: pixel %d = %v, want red", s, edge-1, got)
		}
		if got := off.Pixel(edge, 0); got.B != 0xff || got.R != 0 {
			t.Errorf("scale %g: pixel %d = %v, want blue", s, edge, got)
		}
		if got, want := paintedRect(off), image.Rect(0, 0, Floor(16, s), Floor(5, s)); got != want {
			t.Errorf("scale %g: painted %v, want %v", s, got, want)
		}
	}
}

func TestScaledLines(t *testing.T) {
	off := NewOffscreen(40, 40)
	c := NewScaled(NewDriver(off), 2)
	c.XYLine(1, 1, 3)
	if got, want := paintedRect(off), image.Rect(2, 2, 8, 4); got != want {
		t.Errorf("XYLine at scale 2 painted %v, want %v", got, want)
	}

	off = NewOffscreen(40, 40)
	c = NewScaled(NewDriver(off), 1.5)
	c.YXLine(2, 0, 3)
	if got, want := paintedRect(off), image.Rect(3, 0, 4, 6); got != want {
		t.Errorf("YXLine at scale 1.5 painted %v, want %v", got, want)
	}
}

func TestScaledLineWidth(t *testing.T) {
	off := NewOffscreen(60, 60)
	c := NewScaled(NewDriver(off), 2)
	c.LineStyle(Solid, 3, nil)
	c.XYLine(5, 5, 10)
	if got, want := paintedRect(off), image.Rect(10, 10, 22, 16); got != want {
		t.Errorf("3-wide line at scale 2 painted %v, want %v", got, want)
	}
}

func TestSetScale(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{0, MinScale},
		{-1, MinScale},
		{math.NaN(), MinScale},
		{1.0 / 128, MinScale},
	}
	for _, tt := range tests {
		c := NewScaled(NewDriver(NewOffscreen(1, 1)), 1)
		c.SetScale(tt.in)
		if got := c.Scale(); got != tt.want {
			t.Errorf("SetScale(%g) gives %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestScaledFontSize(t *testing.T) {
	d := NewDriver(NewOffscreen(10, 10))
	c := NewScaled(d, 2)
	c.SetFont(Helvetica, 14)
	if got := c.Size(); got != 14 {
		t.Errorf("Size() = %g, want 14", got)
	}
	if got := d.Size(); got != 28 {
		t.Errorf("device size = %g, want 28", got)
	}
	c.SetScale(1.5)
	if got := d.Size(); got != 21 {
		t.Errorf("device size after SetScale(1.5) = %g, want 21", got)
	}
	if got := c.Size(); got != 14 {
		t.Errorf("Size() after SetScale = %g, want 14", got)
	}
}

func TestScaledDefaultFont(t *testing.T) {
	d := NewDriver(NewOffscreen(10, 10))
	c := NewScaled(d, 2)
	if c.Font() != Helvetica || c.Size() != DefaultFontSize {
		t.Errorf("default font = %d at %g, want Helvetica at %d", c.Font(), c.Size(), DefaultFontSize)
	}
	if d.Size() != 2*DefaultFontSize {
		t.Errorf("device size = %g, want %d", d.Size(), 2*DefaultFontSize)
	}
}

func TestScaledTextMetrics(t *testing.T) {
	one := NewScaled(NewDriver(NewOffscreen(10, 10)), 1)
	two := NewScaled(NewDriver(NewOffscreen(10, 10)), 2)
	one.SetFont(Helvetica, 14)
	two.SetFont(Helvetica, 14)

	const s = "Scale"
	if w1, w2 := one.Width(s), two.Width(s); math.Abs(w1-w2) > 1 {
		t.Errorf("logical width at 1 = %g, at 2 = %g; want within one unit", w1, w2)
	}
	if h1, h2 := one.Height(), two.Height(); abs(h1-h2) > 1 {
		t.Errorf("logical height at 1 = %d, at 2 = %d", h1, h2)
	}
	if one.Width("") != 0 {
		t.Error("empty string has width")
	}
}

func TestScaledDashesScale(t *testing.T) {
	got := scaledDashes([]byte{3, 1, 200, 0, 9}, 1.5)
	if diff := cmp.Diff([]byte{4, 1, 255}, got); diff != "" {
		t.Errorf("scaledDashes mismatch (-want +got):\n%s", diff)
	}
}
