package fldraw

import "errors"

// Sentinel errors reported by drivers and the structures they own.
//
// None of them is fatal: a driver that hits one of these conditions reports
// it through its error handler and keeps drawing.
var (
	// ErrMatrixStackOverflow is reported when PushMatrix is called with a
	// full matrix stack.
	ErrMatrixStackOverflow = errors.New("fldraw: matrix stack overflow")

	// ErrMatrixStackUnderflow is reported when PopMatrix is called with an
	// empty matrix stack.
	ErrMatrixStackUnderflow = errors.New("fldraw: matrix stack underflow")

	// ErrClipStackOverflow is reported when a clip push does not fit.
	ErrClipStackOverflow = errors.New("fldraw: clip stack overflow")

	// ErrClipStackUnderflow is reported by PopClip on an empty clip stack.
	ErrClipStackUnderflow = errors.New("fldraw: clip stack underflow")

	// ErrVertexOutsidePath is reported when a vertex is added while no
	// Begin* call is active.
	ErrVertexOutsidePath = errors.New("fldraw: vertex outside begin/end")

	// ErrPaletteExhausted is reported when a paletted driver had to reuse
	// a hardware color slot.
	ErrPaletteExhausted = errors.New("fldraw: palette exhausted")

	// ErrFontUnavailable is returned by a FontRegistry that cannot resolve
	// a face.
	ErrFontUnavailable = errors.New("fldraw: font unavailable")
)

// ErrorHandler receives non-fatal errors detected while drawing.
type ErrorHandler func(err error)

// logErrorHandler is the default ErrorHandler. Programmer errors go to the
// package logger at debug level.
func logErrorHandler(err error) {
	Logger().Debug("fldraw: draw call ignored", "err", err)
}
