// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface opens drawing surfaces on registered backends and keeps
// track of the current one.
//
// A Surface bundles a fldraw.Backend, the fldraw.Driver writing to it and
// a fldraw.Scaled canvas. Platform packages register backend factories;
// the built-in "offscreen" backend draws into memory.
//
// # Usage
//
//	s, err := surface.Open("offscreen", surface.Options{Width: 320, Height: 200, Scale: 2})
//	if err != nil {
//	    return err
//	}
//	stack := surface.NewStack(s)
//	c := stack.Current().Canvas
//	c.SetColor(fldraw.Blue)
//	c.Rectf(10, 10, 100, 50)
//
// Exporting pushes a second surface, draws, and pops it again:
//
//	stack.Push(png)
//	drawWidgets(stack.Current().Canvas)
//	stack.Pop()
package surface
