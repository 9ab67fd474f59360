// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"
	"testing"

	"github.com/gogpu/fldraw"
)

// TestStack tests push and pop of the current surface.
func TestStack(t *testing.T) {
	base := New(fldraw.NewOffscreen(4, 4), 1)
	other := New(fldraw.NewOffscreen(8, 8), 2)
	st := NewStack(base)

	if st.Current() != base {
		t.Fatal("base should be current")
	}
	st.Push(other)
	if st.Current() != other || st.Depth() != 1 {
		t.Fatalf("Current() after Push is not the pushed surface (depth %d)", st.Depth())
	}
	if got := st.Pop(); got != other {
		t.Errorf("Pop() = %p, want %p", got, other)
	}
	if st.Current() != base {
		t.Error("base should be current after Pop")
	}
	if got := st.Pop(); got != nil {
		t.Errorf("Pop() on empty stack = %p, want nil", got)
	}
	if st.Current() != base {
		t.Error("base should stay current after an extra Pop")
	}
}

// TestSurfaceDraws tests drawing through the current surface reaches its
// backend at device resolution.
func TestSurfaceDraws(t *testing.T) {
	off := fldraw.NewOffscreen(20, 20)
	st := NewStack(New(off, 2))

	c := st.Current().Canvas
	c.SetColor(fldraw.Red)
	c.Rectf(1, 1, 2, 2)

	want := color.NRGBA{R: 0xff, A: 0xff}
	for _, p := range [][2]int{{2, 2}, {5, 5}} {
		if got := off.Pixel(p[0], p[1]); got != want {
			t.Errorf("Pixel(%d,%d) = %v, want %v", p[0], p[1], got, want)
		}
	}
	if got := off.Pixel(6, 6); got == want {
		t.Error("Pixel(6,6) painted outside the scaled rectangle")
	}
}

// TestOptionsValidate tests option defaults and rejection.
func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		wantW   int
	}{
		{"default scale", Options{Width: 10, Height: 10}, false, 10},
		{"fractional", Options{Width: 10, Height: 10, Scale: 1.25}, false, 12},
		{"zero width", Options{Width: 0, Height: 10}, true, 0},
		{"negative scale", Options{Width: 10, Height: 10, Scale: -1}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if w, _ := tt.opts.DeviceSize(); w != tt.wantW {
				t.Errorf("DeviceSize() width = %d, want %d", w, tt.wantW)
			}
		})
	}
}
