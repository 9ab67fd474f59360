// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fldraw"
)

func offscreenFactory(opts Options) (fldraw.Backend, error) {
	return fldraw.NewOffscreen(opts.DeviceSize()), nil
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, offscreenFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, offscreenFactory, nil)
	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryOrder tests priority ordering and availability filtering.
func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, offscreenFactory, nil)
	r.Register("high", 100, offscreenFactory, func() bool { return false })
	r.Register("mid", 50, offscreenFactory, nil)
	r.Register("also-mid", 50, offscreenFactory, nil)

	if diff := cmp.Diff([]string{"high", "also-mid", "mid", "low"}, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"also-mid", "mid", "low"}, r.Available()); diff != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", diff)
	}
}

// TestRegistryOpen tests the scale reaching the canvas and the device size
// reaching the backend.
func TestRegistryOpen(t *testing.T) {
	r := NewRegistry()
	r.Register("mem", 10, offscreenFactory, nil)

	s, err := r.Open("mem", Options{Width: 100, Height: 50, Scale: 1.5})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.Canvas.Scale(); got != 1.5 {
		t.Errorf("Scale() = %g, want 1.5", got)
	}
	if got, want := s.Backend.Bounds(), fldraw.NewOffscreen(150, 75).Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if s.Driver.Backend() != s.Backend {
		t.Error("driver does not write to the surface backend")
	}
}

// TestRegistryOpenErrors tests the error paths of Open and OpenBest.
func TestRegistryOpenErrors(t *testing.T) {
	factoryErr := errors.New("factory failed")

	r := NewRegistry()
	r.Register("gone", 100, offscreenFactory, func() bool { return false })
	r.Register("broken", 50, func(Options) (fldraw.Backend, error) { return nil, factoryErr }, nil)

	tests := []struct {
		name string
		open func() error
		want func(error) bool
	}{
		{"not found", func() error {
			_, err := r.Open("missing", Options{Width: 1, Height: 1})
			return err
		}, func(err error) bool {
			var nf *BackendNotFoundError
			return errors.As(err, &nf) && nf.Name == "missing"
		}},
		{"unavailable", func() error {
			_, err := r.Open("gone", Options{Width: 1, Height: 1})
			return err
		}, func(err error) bool {
			var ua *BackendUnavailableError
			return errors.As(err, &ua)
		}},
		{"factory", func() error {
			_, err := r.Open("broken", Options{Width: 1, Height: 1})
			return err
		}, func(err error) bool { return errors.Is(err, factoryErr) }},
		{"invalid size", func() error {
			_, err := r.Open("broken", Options{Width: 0, Height: 1})
			return err
		}, func(err error) bool { return errors.Is(err, ErrInvalidOptions) }},
		{"best falls through", func() error {
			_, err := r.OpenBest(Options{Width: 1, Height: 1})
			return err
		}, func(err error) bool { return errors.Is(err, factoryErr) }},
		{"empty", func() error {
			_, err := NewRegistry().OpenBest(Options{Width: 1, Height: 1})
			return err
		}, func(err error) bool { return errors.Is(err, ErrNoBackendAvailable) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.open(); !tt.want(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

// TestGlobalRegistry tests the built-in offscreen backend.
func TestGlobalRegistry(t *testing.T) {
	if _, ok := Get("offscreen"); !ok {
		t.Fatal("offscreen backend not registered")
	}
	s, err := OpenBest(Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("OpenBest: %v", err)
	}
	if _, ok := s.Backend.(*fldraw.Offscreen); !ok {
		t.Errorf("backend = %T, want *fldraw.Offscreen", s.Backend)
	}
}

// TestBackendErrors tests error strings.
func TestBackendErrors(t *testing.T) {
	if got := (&BackendNotFoundError{Name: "x"}).Error(); got != "surface: backend not found: x" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&BackendUnavailableError{Name: "x"}).Error(); got != "surface: backend unavailable: x" {
		t.Errorf("Error() = %q", got)
	}
}
