package fldraw

import "context"

type canvasKey struct{}

// NewContext returns a copy of ctx carrying c as the current canvas.
// Drawing code deep in a widget tree picks it up with FromContext instead
// of reading a process-wide variable.
func NewContext(ctx context.Context, c Canvas) context.Context {
	return context.WithValue(ctx, canvasKey{}, c)
}

// FromContext returns the canvas stored by NewContext, if any.
func FromContext(ctx context.Context) (Canvas, bool) {
	c, ok := ctx.Value(canvasKey{}).(Canvas)
	return c, ok && c != nil
}
