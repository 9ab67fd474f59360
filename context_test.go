package fldraw

import (
	"context"
	"testing"
)

func TestContextCanvas(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context reports a canvas")
	}
	c := NewScaled(NewDriver(NewOffscreen(1, 1)), 2)
	ctx := NewContext(context.Background(), c)
	got, ok := FromContext(ctx)
	if !ok || got != Canvas(c) {
		t.Errorf("FromContext() = %v, %v; want the stored canvas", got, ok)
	}
	if _, ok := FromContext(NewContext(context.Background(), nil)); ok {
		t.Error("nil canvas reported as present")
	}
}
