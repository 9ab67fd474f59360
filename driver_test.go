package fldraw

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestDriver(w, h int) (*Driver, *Offscreen, *[]error) {
	var errs []error
	off := NewOffscreen(w, h)
	d := NewDriver(off, WithErrorHandler(func(err error) { errs = append(errs, err) }))
	return d, off, &errs
}

func pts(ps ...image.Point) map[image.Point]bool {
	m := make(map[image.Point]bool, len(ps))
	for _, p := range ps {
		m[p] = true
	}
	return m
}

func TestPointAndLines(t *testing.T) {
	tests := []struct {
		name string
		draw func(d *Driver)
		want map[image.Point]bool
	}{
		{"point", func(d *Driver) { d.Point(3, 4) }, pts(image.Pt(3, 4))},
		{"diagonal", func(d *Driver) { d.Line(0, 0, 3, 3) },
			pts(image.Pt(0, 0), image.Pt(1, 1), image.Pt(2, 2), image.Pt(3, 3))},
		{"xyline reversed", func(d *Driver) { d.XYLine(4, 1, 2) },
			pts(image.Pt(2, 1), image.Pt(3, 1), image.Pt(4, 1))},
		{"yxline", func(d *Driver) { d.YXLine(1, 0, 2) },
			pts(image.Pt(1, 0), image.Pt(1, 1), image.Pt(1, 2))},
		{"xyline2", func(d *Driver) { d.XYLine2(0, 0, 2, 2) },
			pts(image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0), image.Pt(2, 1), image.Pt(2, 2))},
		{"focus rect", func(d *Driver) { d.FocusRect(0, 0, 3, 3) },
			pts(image.Pt(0, 0), image.Pt(2, 0), image.Pt(2, 2), image.Pt(0, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, off, _ := newTestDriver(10, 10)
			tt.draw(d)
			if diff := cmp.Diff(tt.want, painted(off)); diff != "" {
				t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDashedHairline(t *testing.T) {
	d, off, _ := newTestDriver(20, 3)
	d.LineStyle(Dash, 0, nil)
	d.XYLine(0, 1, 19)
	for x := 0; x < 20; x++ {
		got := off.Pixel(x, 1).A != 0
		if want := x%4 != 3; got != want {
			t.Errorf("pixel %d drawn = %v, want %v", x, got, want)
		}
	}
}

func TestWideLine(t *testing.T) {
	d, off, _ := newTestDriver(20, 20)
	d.LineStyle(Solid, 3, nil)
	d.XYLine(2, 5, 9)
	if got, want := paintedRect(off), image.Rect(2, 5, 10, 8); got != want {
		t.Errorf("3-wide line painted %v, want %v", got, want)
	}

	d, off, _ = newTestDriver(20, 20)
	d.LineStyle(Solid|CapSquare, 4, nil)
	d.Line(4, 4, 10, 10)
	if got := paintedRect(off); !got.Overlaps(image.Rect(3, 3, 12, 12)) || got.Dx() < 8 {
		t.Errorf("wide diagonal painted %v", got)
	}
}

func TestArcWrapsThroughZero(t *testing.T) {
	d, off, _ := newTestDriver(45, 45)
	d.Arc(0, 0, 41, 41, 350, 10)
	px := painted(off)
	if !px[image.Pt(40, 20)] {
		t.Error("arc 350..10 misses the pixel at 0 degrees")
	}
	for p := range px {
		if p.X < 39 || p.Y < 15 || p.Y > 25 {
			t.Errorf("arc 350..10 painted %v, outside the 20-degree sweep", p)
		}
	}

	d, off, _ = newTestDriver(45, 45)
	d.Arc(0, 0, 41, 41, 10, 350)
	if px := painted(off); !px[image.Pt(0, 20)] || px[image.Pt(40, 20)] {
		t.Error("arc 10..350 should cover 180 degrees and skip 0 degrees")
	}
}

func TestArcFullTurn(t *testing.T) {
	a, offA, _ := newTestDriver(30, 30)
	a.Arc(0, 0, 21, 21, 0, 360)
	b, offB, _ := newTestDriver(30, 30)
	b.Arc(0, 0, 21, 21, 90, -400)
	if len(painted(offA)) == 0 {
		t.Fatal("full arc painted nothing")
	}
	if diff := cmp.Diff(paintedRect(offA), paintedRect(offB)); diff != "" {
		t.Errorf("sweeps beyond a full turn should draw the whole ellipse:\n%s", diff)
	}
}

func TestPie(t *testing.T) {
	d, off, _ := newTestDriver(20, 20)
	d.Pie(0, 0, 20, 20, 0, 90)
	px := painted(off)
	if !px[image.Pt(14, 5)] {
		t.Error("quarter pie misses its inside")
	}
	for p := range px {
		if p.X < 10 || p.Y >= 10 {
			t.Errorf("quarter pie painted %v outside the upper right quadrant", p)
		}
	}
}

func TestComplexPolygonHole(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		d, off, _ := newTestDriver(30, 30)
		d.BeginComplexPolygon()
		d.Vertex(0, 0)
		d.Vertex(20, 0)
		d.Vertex(20, 20)
		d.Vertex(0, 20)
		d.Gap()
		inner := [][2]float64{{5, 5}, {15, 5}, {15, 15}, {5, 15}}
		if reversed {
			inner[1], inner[3] = inner[3], inner[1]
		}
		for _, v := range inner {
			d.Vertex(v[0], v[1])
		}
		d.EndComplexPolygon()

		px := painted(off)
		if !px[image.Pt(2, 2)] || !px[image.Pt(17, 17)] {
			t.Errorf("reversed=%v: ring not filled", reversed)
		}
		if px[image.Pt(10, 10)] || px[image.Pt(5, 5)] || px[image.Pt(14, 14)] {
			t.Errorf("reversed=%v: hole filled", reversed)
		}
		if got, want := paintedRect(off), image.Rect(0, 0, 20, 20); got != want {
			t.Errorf("reversed=%v: painted %v, want %v", reversed, got, want)
		}
	}
}

func TestComplexPolygonCircles(t *testing.T) {
	d, off, _ := newTestDriver(40, 40)
	d.BeginComplexPolygon()
	d.Circle(20, 20, 15)
	d.Gap()
	d.Circle(20, 20, 6)
	d.EndComplexPolygon()
	px := painted(off)
	if px[image.Pt(20, 20)] || !px[image.Pt(20, 9)] {
		t.Error("ring of two circles drawn wrong")
	}
}

func TestPolygonTransformed(t *testing.T) {
	d, off, _ := newTestDriver(30, 30)
	d.PushMatrix()
	d.Translate(10, 10)
	d.ScaleXY(2, 2)
	d.BeginPolygon()
	d.Vertex(0, 0)
	d.Vertex(5, 0)
	d.Vertex(5, 5)
	d.Vertex(0, 5)
	d.EndPolygon()
	d.PopMatrix()
	if got, want := paintedRect(off), image.Rect(10, 10, 20, 20); got != want {
		t.Errorf("painted %v, want %v", got, want)
	}
	if !d.Matrix().IsIdentity() {
		t.Error("PopMatrix did not restore the identity")
	}
}

func TestShortPolygonDrawsLine(t *testing.T) {
	d, off, _ := newTestDriver(10, 10)
	d.BeginPolygon()
	d.Vertex(1, 1)
	d.Vertex(4, 1)
	d.EndPolygon()
	want := pts(image.Pt(1, 1), image.Pt(2, 1), image.Pt(3, 1), image.Pt(4, 1))
	if diff := cmp.Diff(want, painted(off)); diff != "" {
		t.Errorf("two-vertex polygon mismatch (-want +got):\n%s", diff)
	}
}

func TestVertexOutsidePath(t *testing.T) {
	d, off, errs := newTestDriver(10, 10)
	d.Vertex(1, 1)
	d.BeginLine()
	d.Vertex(1, 1)
	d.Vertex(3, 1)
	d.EndLine()
	d.TransformedVertex(2, 2)

	if len(*errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(*errs), *errs)
	}
	for _, err := range *errs {
		if !errors.Is(err, ErrVertexOutsidePath) {
			t.Errorf("error %v is not ErrVertexOutsidePath", err)
		}
	}
	if len(painted(off)) != 3 {
		t.Errorf("painted %d pixels, want the 3 of the line", len(painted(off)))
	}
}

func TestEndPoints(t *testing.T) {
	d, off, _ := newTestDriver(10, 10)
	d.BeginPoints()
	d.Vertex(1.2, 1.4)
	d.Vertex(5.6, 2)
	d.EndPoints()
	if diff := cmp.Diff(pts(image.Pt(1, 1), image.Pt(6, 2)), painted(off)); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestAntialiasBlends(t *testing.T) {
	d, off, _ := newTestDriver(30, 30)
	d.SetAntialias(true)
	d.BeginPolygon()
	d.Vertex(2, 2)
	d.Vertex(25, 5)
	d.Vertex(10, 25)
	d.EndPolygon()

	partial := 0
	for _, a := range alphas(off) {
		if a > 0 && a < 0xff {
			partial++
		}
	}
	if partial == 0 {
		t.Error("antialiased polygon has no partially covered pixels")
	}
}

func alphas(off *Offscreen) []uint8 {
	img := off.Image()
	out := make([]uint8, 0, len(img.Pix)/4)
	for i := 3; i < len(img.Pix); i += 4 {
		out = append(out, img.Pix[i])
	}
	return out
}

func TestFeatures(t *testing.T) {
	d, _, _ := newTestDriver(1, 1)
	if d.HasFeature(FeatureNative) {
		t.Error("offscreen backend reports the native feature")
	}
	if !d.CanDoAlphaBlending() {
		t.Error("true-color driver cannot blend")
	}
	if NewDriver(NewOffscreen(1, 1), WithPalette(16)).CanDoAlphaBlending() {
		t.Error("paletted driver claims alpha blending")
	}
	if d.Scale() != 1 {
		t.Errorf("driver Scale() = %g, want 1", d.Scale())
	}
}
