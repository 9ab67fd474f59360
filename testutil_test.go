package fldraw

import "image"

// paintedRect returns the bounds of the non-transparent pixels of off.
func paintedRect(off *Offscreen) image.Rectangle {
	var r image.Rectangle
	b := off.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if off.Pixel(x, y).A != 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

// painted reports which pixels of off are not transparent.
func painted(off *Offscreen) map[image.Point]bool {
	px := make(map[image.Point]bool)
	b := off.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if off.Pixel(x, y).A != 0 {
				px[image.Pt(x, y)] = true
			}
		}
	}
	return px
}
