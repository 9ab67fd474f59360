package raster

import (
	"image"
	"testing"
)

type grid map[image.Point]int

func (g grid) collect(y, x0, x1 int) {
	for x := x0; x < x1; x++ {
		g[image.Pt(x, y)]++
	}
}

func rect(x0, y0, x1, y1 float64) []Point {
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

var big = image.Rect(0, 0, 100, 100)

func TestFillRectCoversPixelCenters(t *testing.T) {
	g := grid{}
	NewRasterizer().FillPolygon(rect(10, 10, 15, 15), NonZero, big, g.collect)
	if len(g) != 25 {
		t.Fatalf("filled %d pixels, want 25", len(g))
	}
	for y := 10; y < 15; y++ {
		for x := 10; x < 15; x++ {
			if g[image.Pt(x, y)] != 1 {
				t.Errorf("pixel (%d,%d) filled %d times", x, y, g[image.Pt(x, y)])
			}
		}
	}
}

func TestFillRules(t *testing.T) {
	outer := rect(0, 0, 10, 10)
	// Same direction as outer: nonzero keeps the hole filled.
	inner := rect(3, 3, 7, 7)

	tests := []struct {
		name     string
		rule     FillRule
		wantHole bool
	}{
		{"even-odd", EvenOdd, true},
		{"nonzero", NonZero, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid{}
			NewRasterizer().Fill([][]Point{outer, inner}, tt.rule, big, g.collect)
			if got := g[image.Pt(5, 5)] == 0; got != tt.wantHole {
				t.Errorf("hole at (5,5) = %v, want %v", got, tt.wantHole)
			}
			if g[image.Pt(1, 1)] != 1 {
				t.Errorf("outer ring pixel not filled once")
			}
		})
	}
}

func TestFillClipsToBounds(t *testing.T) {
	g := grid{}
	NewRasterizer().FillPolygon(rect(-5, -5, 5, 5), NonZero, image.Rect(0, 0, 3, 3), g.collect)
	if len(g) != 9 {
		t.Fatalf("filled %d pixels, want 9", len(g))
	}
	for p := range g {
		if !p.In(image.Rect(0, 0, 3, 3)) {
			t.Errorf("pixel %v outside bounds", p)
		}
	}
}

func TestFillDegenerate(t *testing.T) {
	g := grid{}
	r := NewRasterizer()
	r.FillPolygon([]Point{{1, 1}, {5, 1}}, NonZero, big, g.collect)
	r.FillPolygon(nil, NonZero, big, g.collect)
	if len(g) != 0 {
		t.Errorf("degenerate input filled %d pixels", len(g))
	}
}

func TestFillTriangle(t *testing.T) {
	g := grid{}
	NewRasterizer().FillPolygon([]Point{{0, 0}, {10, 0}, {0, 10}}, EvenOdd, big, g.collect)
	// Row 0 samples y=0.5: x < 9.5 gives pixels 0..8.
	for x := 0; x < 9; x++ {
		if g[image.Pt(x, 0)] != 1 {
			t.Errorf("row 0 pixel %d not filled", x)
		}
	}
	if g[image.Pt(9, 0)] != 0 {
		t.Error("row 0 pixel 9 filled")
	}
}
