// Package fldraw is the drawing-driver layer of a widget toolkit, with
// support for fractional screen scale factors.
//
// # Overview
//
// Widgets draw through the Canvas interface in logical units. A Driver
// implements Canvas in device pixels on top of a Backend, the small
// interface a platform provides (fill a span, blend a pixel, plus optional
// capabilities). Scaled wraps any Unscaled canvas and maps every logical
// request to device pixels, so the same widget code renders sharply at
// 1.0, 1.25, 1.5 or 2.0.
//
// # Quick Start
//
//	import "github.com/gogpu/fldraw"
//
//	off := fldraw.NewOffscreen(640, 480)
//	c := fldraw.NewScaled(fldraw.NewDriver(off), 2)
//
//	c.SetColor(fldraw.Blue)
//	c.Rectf(10, 10, 100, 50)
//	c.SetFont(fldraw.Helvetica, 14)
//	c.Draw("Hello", 20, 40)
//
//	off.SavePNG("output.png")
//
// # Scaling
//
// Logical coordinates map to device pixels with Floor, so adjacent
// rectangles never overlap or leave a gap. Line widths, dash patterns and
// font sizes are multiplied by the scale; text metrics are divided by it.
// Images keep one cached copy at device resolution, regenerated when the
// scale or the image size changes.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in degrees, 0 is right, increases counter-clockwise
//
// # Errors
//
// Drawing never returns errors. Stack overflows, malformed image buffers
// and similar mistakes go to the driver's ErrorHandler (see
// WithErrorHandler), which logs them through the logger set with
// SetLogger by default.
package fldraw

// Version is the current version of the library.
const Version = "0.1.0"
