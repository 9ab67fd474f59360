package fldraw

import (
	"errors"
	"image"
	"testing"
)

func TestValidPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"é", "é"},
		{"a\xc3", "a"},
		{"ab\xe2\x82", "ab"},
		{"€", "€"},
		{"x\xf0\x9f\x98", "x"},
	}
	for _, tt := range tests {
		if got := validPrefix(tt.in); got != tt.want {
			t.Errorf("validPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGoFontRegistryResolve(t *testing.T) {
	r := NewGoFontRegistry()
	a, err := r.Resolve(Helvetica, 14)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Resolve(Helvetica, 14)
	if a != b {
		t.Error("same face and size resolved twice")
	}
	c, _ := r.Resolve(Helvetica, 20)
	if c.Next != a {
		t.Error("new size not chained in front of the old one")
	}
	if c.Height() <= a.Height() || a.QWidth <= 0 {
		t.Errorf("metrics: 14pt height %d, 20pt height %d, qwidth %d", a.Height(), c.Height(), a.QWidth)
	}

	small, _ := r.Resolve(Courier, 0.2)
	if small.Size != MinFontSize {
		t.Errorf("size 0.2 resolved at %g", small.Size)
	}

	unknown, err := r.Resolve(Font(99), 12)
	if err != nil {
		t.Fatalf("unknown face: %v", err)
	}
	helv, _ := r.Resolve(Helvetica, 12)
	if unknown != helv || r.Name(Font(99)) != "" {
		t.Error("unknown face not resolved through Helvetica")
	}
}

func TestGoFontRegistrySetFace(t *testing.T) {
	r := NewGoFontRegistry()
	if err := r.SetFace(FreeFont, "broken", []byte("not a font")); err == nil {
		t.Error("SetFace accepted garbage")
	}
	empty := &GoFontRegistry{faces: map[Font]*fontEntry{}}
	if _, err := empty.Resolve(Helvetica, 12); !errors.Is(err, ErrFontUnavailable) {
		t.Errorf("empty registry error = %v, want ErrFontUnavailable", err)
	}
}

func TestFontWidths(t *testing.T) {
	d, _, _ := newTestDriver(10, 10)
	d.SetFont(Courier, 12)
	w1, w3 := d.Width("M"), d.Width("MMM")
	if w1 <= 0 || w3 != 3*w1 {
		t.Errorf("monospace widths: M=%g MMM=%g", w1, w3)
	}
	if got := d.RuneWidth('M'); got != w1 {
		t.Errorf("RuneWidth('M') = %g, want %g", got, w1)
	}
	if got := d.Width("MM\xe2"); got != 2*w1 {
		t.Errorf("width with a cut sequence = %g, want %g", got, 2*w1)
	}
}

func TestDrawText(t *testing.T) {
	d, off, _ := newTestDriver(80, 40)
	d.SetFont(Helvetica, 14)
	d.Draw("Hi", 10, 20)
	dx, dy, w, h := d.TextExtents("Hi")
	ext := image.Rect(10+dx, 20+dy, 10+dx+w, 20+dy+h).Inset(-1)
	got := paintedRect(off)
	if got.Empty() || !got.In(ext) {
		t.Errorf("painted %v outside the ink box %v", got, ext)
	}
}

func TestRTLDrawEndsAtOrigin(t *testing.T) {
	d, off, _ := newTestDriver(80, 40)
	d.SetFont(Helvetica, 14)
	d.RTLDraw("abc", 60, 20)
	got := paintedRect(off)
	if got.Empty() || got.Max.X > 61 || got.Min.X < 60-int(d.Width("abc"))-1 {
		t.Errorf("painted %v, want text ending at x=60", got)
	}
}

func TestDrawAngle(t *testing.T) {
	straight, offS, _ := newTestDriver(80, 80)
	straight.SetFont(Helvetica, 14)
	straight.Draw("Hello", 20, 60)

	full, offF, _ := newTestDriver(80, 80)
	full.SetFont(Helvetica, 14)
	full.DrawAngle(360, "Hello", 20, 60)
	if paintedRect(offS) != paintedRect(offF) {
		t.Errorf("360 degrees painted %v, straight %v", paintedRect(offF), paintedRect(offS))
	}

	up, offU, _ := newTestDriver(80, 80)
	up.SetFont(Helvetica, 14)
	up.DrawAngle(90, "Hello", 40, 70)
	r := paintedRect(offU)
	if r.Dy() <= r.Dx() {
		t.Errorf("90 degrees painted %v, want a tall box", r)
	}
	if r.Max.Y > 71 {
		t.Errorf("90 degrees text runs below its origin: %v", r)
	}
}
