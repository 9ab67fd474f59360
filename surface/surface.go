// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"sync"

	"github.com/gogpu/fldraw"
)

// Options describes a surface to open.
type Options struct {
	// Width and Height are the logical size.
	Width, Height int
	// Scale is the device pixels per logical unit; 0 means 1.
	Scale float64
}

// Validate checks the options, filling in the default scale.
func (o *Options) Validate() error {
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Width <= 0 || o.Height <= 0 || o.Scale < fldraw.MinScale {
		return fmt.Errorf("%w: %dx%d at scale %g", ErrInvalidOptions, o.Width, o.Height, o.Scale)
	}
	return nil
}

// DeviceSize returns the size in device pixels.
func (o Options) DeviceSize() (int, int) {
	s := o.Scale
	if s == 0 {
		s = 1
	}
	return fldraw.Floor(o.Width, s), fldraw.Floor(o.Height, s)
}

// Surface is a drawing destination: a backend, the driver writing to it
// and the scaled canvas widgets draw through.
type Surface struct {
	Backend fldraw.Backend
	Driver  *fldraw.Driver
	Canvas  *fldraw.Scaled
}

// New wraps b in a driver and a canvas at the given scale.
func New(b fldraw.Backend, scale float64, opts ...fldraw.Option) *Surface {
	if scale == 0 {
		scale = 1
	}
	d := fldraw.NewDriver(b, opts...)
	return &Surface{Backend: b, Driver: d, Canvas: fldraw.NewScaled(d, scale)}
}

// Stack tracks which surface is current. Drawing code targets the current
// surface; printing or exporting pushes another surface for the duration.
// It is safe for concurrent use, though drawing itself is not.
type Stack struct {
	mu    sync.Mutex
	base  *Surface
	stack []*Surface
}

// NewStack returns a stack whose bottom, current when nothing is pushed,
// is base.
func NewStack(base *Surface) *Stack {
	return &Stack{base: base}
}

// Current returns the surface on top of the stack.
func (s *Stack) Current() *Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.stack); n > 0 {
		return s.stack[n-1]
	}
	return s.base
}

// Push makes sf current.
func (s *Stack) Push(sf *Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack = append(s.stack, sf)
}

// Pop restores the previously current surface and returns the one
// removed. Popping with nothing pushed returns nil and leaves the base
// current.
func (s *Stack) Pop() *Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.stack)
	if n == 0 {
		fldraw.Logger().Debug("surface: pop on empty stack")
		return nil
	}
	top := s.stack[n-1]
	s.stack[n-1] = nil
	s.stack = s.stack[:n-1]
	return top
}

// Depth returns the number of pushed surfaces.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}
