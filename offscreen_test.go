package fldraw

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
)

func TestOffscreenBlendPixel(t *testing.T) {
	tests := []struct {
		name     string
		bg       color.NRGBA
		c        color.NRGBA
		coverage uint8
		want     color.NRGBA
	}{
		{"full", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, color.NRGBA{A: 0xff}, 0xff, color.NRGBA{A: 0xff}},
		{"half on white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, color.NRGBA{A: 0xff}, 0x80, color.NRGBA{R: 127, G: 127, B: 127, A: 0xff}},
		{"half on clear", color.NRGBA{}, color.NRGBA{R: 0xff, A: 0xff}, 0x80, color.NRGBA{R: 0xff, A: 0x80}},
		{"zero coverage", color.NRGBA{G: 0xff, A: 0xff}, color.NRGBA{R: 0xff, A: 0xff}, 0, color.NRGBA{G: 0xff, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOffscreen(1, 1)
			o.Clear(tt.bg)
			o.BlendPixel(0, 0, tt.c, tt.coverage)
			if diff := cmp.Diff(tt.want, o.Pixel(0, 0)); diff != "" {
				t.Errorf("pixel mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOffscreenClipsToBounds(t *testing.T) {
	o := NewOffscreen(4, 4)
	o.FillSpan(1, -3, 10, color.NRGBA{A: 0xff})
	o.FillRect(image.Rect(3, 3, 9, 9), color.NRGBA{A: 0xff})
	o.BlendPixel(-1, 0, color.NRGBA{A: 0xff}, 0xff)
	want := pts(image.Pt(0, 1), image.Pt(1, 1), image.Pt(2, 1), image.Pt(3, 1), image.Pt(3, 3))
	if diff := cmp.Diff(want, painted(o)); diff != "" {
		t.Errorf("painted mismatch (-want +got):\n%s", diff)
	}
}

func TestOffscreenCopyFromClip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	o := NewOffscreen(4, 4)
	var reg Region
	reg.AddRect(0, 0, 2, 4)
	o.SetClip(&reg)
	o.CopyFrom(o.Bounds(), src, image.Point{})
	if got, want := paintedRect(o), image.Rect(0, 0, 2, 4); got != want {
		t.Errorf("painted %v, want %v", got, want)
	}
}

func TestResampleFilter(t *testing.T) {
	tests := []struct {
		name           string
		sw, sh, dw, dh int
		mode           Scaling
		want           string
	}{
		{"enlarge area", 2, 2, 4, 4, ScaleArea, "nearest"},
		{"same size", 3, 3, 3, 3, ScaleArea, "nearest"},
		{"shrink area", 4, 4, 2, 2, ScaleArea, "box"},
		{"shrink nearest", 4, 4, 2, 2, ScaleNearest, "nearest"},
		{"mixed", 4, 2, 2, 4, ScaleArea, "box"},
	}
	name := func(f imaging.ResampleFilter) string {
		switch f.Support {
		case imaging.NearestNeighbor.Support:
			return "nearest"
		case imaging.Box.Support:
			return "box"
		}
		return "other"
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := name(resampleFilter(tt.sw, tt.sh, tt.dw, tt.dh, tt.mode)); got != tt.want {
				t.Errorf("resampleFilter = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResampleAlphaShrinkAverages(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 2, 2))
	src.Pix[0], src.Pix[3] = 0xff, 0xff
	got := resampleAlpha(src, 1, 1, ScaleArea)
	if a := got.Pix[0]; a < 0x7e || a > 0x81 {
		t.Errorf("averaged coverage = %#x, want about 0x80", a)
	}
}

func TestSavePNG(t *testing.T) {
	o := NewOffscreen(3, 2)
	o.FillRect(image.Rect(1, 0, 2, 2), color.NRGBA{B: 0xff, A: 0xff})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := o.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v", got)
	}
	if got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA); got != (color.NRGBA{B: 0xff, A: 0xff}) {
		t.Errorf("pixel (1,1) = %v", got)
	}
	if err := o.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}
