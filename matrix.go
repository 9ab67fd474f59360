package fldraw

import (
	"fmt"
	"math"
)

// MatrixStackSize is the number of matrices PushMatrix can save.
const MatrixStackSize = 32

// Matrix is a 2D affine transformation in the toolkit's column layout:
//
//	x' = x*A + y*C + X
//	y' = x*B + y*D + Y
type Matrix struct {
	A, B, C, D float64
	X, Y       float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a matrix that moves points by (x, y).
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, X: x, Y: y}
}

// ScaleMatrix returns a matrix that scales by (x, y).
func ScaleMatrix(x, y float64) Matrix {
	return Matrix{A: x, D: y}
}

// Rotation returns a counter-clockwise rotation by deg degrees (y axis
// pointing down). Multiples of 90 are exact.
func Rotation(deg float64) Matrix {
	s, c := sincosDeg(deg)
	return Matrix{A: c, B: -s, C: s, D: c}
}

// sincosDeg returns sin and cos of deg degrees, exact at quarter turns.
func sincosDeg(deg float64) (s, c float64) {
	switch math.Mod(deg, 360) {
	case 0:
		return 0, 1
	case 90, -270:
		return 1, 0
	case 180, -180:
		return 0, -1
	case 270, -90:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}

// Mult returns the composition that applies n first and m second, the way
// MultMatrix composes a new transform into the current one.
func (m Matrix) Mult(n Matrix) Matrix {
	return Matrix{
		A: n.A*m.A + n.B*m.C,
		B: n.A*m.B + n.B*m.D,
		C: n.C*m.A + n.D*m.C,
		D: n.C*m.B + n.D*m.D,
		X: n.X*m.A + n.Y*m.C + m.X,
		Y: n.X*m.B + n.Y*m.D + m.Y,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return x*m.A + y*m.C + m.X, x*m.B + y*m.D + m.Y
}

// ApplyVector transforms the vector (dx, dy), ignoring translation.
func (m Matrix) ApplyVector(dx, dy float64) (float64, float64) {
	return dx*m.A + dy*m.C, dx*m.B + dy*m.D
}

// RadiusX returns the length a horizontal unit vector has after the
// transform. Circles use it to size the ellipse they become.
func (m Matrix) RadiusX() float64 {
	if m.C != 0 {
		return math.Hypot(m.A, m.C)
	}
	return math.Abs(m.A)
}

// RadiusY is RadiusX for the vertical unit vector.
func (m Matrix) RadiusY() float64 {
	if m.B != 0 {
		return math.Hypot(m.B, m.D)
	}
	return math.Abs(m.D)
}

// IsIdentity reports whether m is the identity transformation.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// String implements fmt.Stringer.
func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", m.A, m.B, m.C, m.D, m.X, m.Y)
}

// MatrixStack holds the current transformation and up to MatrixStackSize
// saved ones. The zero value is not ready for use; call NewMatrixStack.
type MatrixStack struct {
	current Matrix
	saved   [MatrixStackSize]Matrix
	depth   int
}

// NewMatrixStack returns a stack whose current matrix is the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{current: Identity()}
}

// Current returns the current transformation.
func (s *MatrixStack) Current() Matrix {
	return s.current
}

// Set replaces the current transformation.
func (s *MatrixStack) Set(m Matrix) {
	s.current = m
}

// Depth returns the number of saved matrices.
func (s *MatrixStack) Depth() int {
	return s.depth
}

// Push saves the current matrix. It returns ErrMatrixStackOverflow, and
// saves nothing, when the stack is full.
func (s *MatrixStack) Push() error {
	if s.depth == MatrixStackSize {
		return ErrMatrixStackOverflow
	}
	s.saved[s.depth] = s.current
	s.depth++
	return nil
}

// Pop restores the most recently saved matrix. It returns
// ErrMatrixStackUnderflow, leaving the current matrix untouched, when
// nothing is saved.
func (s *MatrixStack) Pop() error {
	if s.depth == 0 {
		return ErrMatrixStackUnderflow
	}
	s.depth--
	s.current = s.saved[s.depth]
	return nil
}

// Mult composes n into the current matrix.
func (s *MatrixStack) Mult(n Matrix) {
	s.current = s.current.Mult(n)
}

// Reset drops every saved matrix and restores the identity.
func (s *MatrixStack) Reset() {
	s.current = Identity()
	s.depth = 0
}
