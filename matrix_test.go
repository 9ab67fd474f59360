package fldraw

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMatrixApply(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Translation(10, -2), 3, 4, 13, 2},
		{"scale", ScaleMatrix(2, 3), 3, 4, 6, 12},
		{"rotate 90", Rotation(90), 1, 0, 0, -1},
		{"rotate 180", Rotation(180), 1, 2, -1, -2},
		{"rotate -90", Rotation(-90), 0, 1, -1, 0},
		{"translate then scale", Translation(10, 0).Mult(ScaleMatrix(2, 2)), 1, 1, 12, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.Apply(tt.x, tt.y)
			if x != tt.wx || y != tt.wy {
				t.Errorf("Apply(%g, %g) = (%g, %g), want (%g, %g)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestMatrixRotationGeneral(t *testing.T) {
	x, y := Rotation(45).Apply(1, 0)
	want := math.Sqrt2 / 2
	if diff := cmp.Diff([]float64{want, -want}, []float64{x, y}, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Rotation(45) mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixRadius(t *testing.T) {
	m := Rotation(30).Mult(ScaleMatrix(2, 2))
	if got := m.RadiusX(); math.Abs(got-2) > 1e-12 {
		t.Errorf("RadiusX() = %g, want 2", got)
	}
	if got := ScaleMatrix(2, 3).RadiusY(); got != 3 {
		t.Errorf("RadiusY() = %g, want 3", got)
	}
}

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	for i := 0; i < MatrixStackSize; i++ {
		s.Mult(Translation(1, 0))
		if err := s.Push(); err != nil {
			t.Fatalf("push %d: %v", i+1, err)
		}
	}
	before := s.Current()
	if err := s.Push(); !errors.Is(err, ErrMatrixStackOverflow) {
		t.Fatalf("push %d error = %v, want overflow", MatrixStackSize+1, err)
	}
	if s.Depth() != MatrixStackSize || s.Current() != before {
		t.Error("rejected push changed the stack")
	}
	for i := 0; i < MatrixStackSize; i++ {
		if err := s.Pop(); err != nil {
			t.Fatalf("pop %d: %v", i+1, err)
		}
	}
	if got := s.Current(); got != Translation(1, 0) {
		t.Errorf("Current() after balanced pops = %v, want translation by 1", got)
	}
	if err := s.Pop(); !errors.Is(err, ErrMatrixStackUnderflow) {
		t.Errorf("extra pop error = %v, want underflow", err)
	}
	s.Reset()
	if !s.Current().IsIdentity() || s.Depth() != 0 {
		t.Error("Reset() did not restore the identity")
	}
}

func TestDriverMatrixErrors(t *testing.T) {
	var errs []error
	d := NewDriver(NewOffscreen(4, 4), WithErrorHandler(func(err error) { errs = append(errs, err) }))
	for i := 0; i <= MatrixStackSize; i++ {
		d.PushMatrix()
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrMatrixStackOverflow) {
		t.Fatalf("errors after %d pushes = %v, want one overflow", MatrixStackSize+1, errs)
	}
	for i := 0; i <= MatrixStackSize; i++ {
		d.PopMatrix()
	}
	if len(errs) != 2 || !errors.Is(errs[1], ErrMatrixStackUnderflow) {
		t.Errorf("errors after pops = %v, want an underflow", errs)
	}
}
