package fldraw

// SetColor makes c the current color. On a paletted driver this allocates
// a hardware slot; when none is free the least used one is taken over and
// ErrPaletteExhausted is reported.
func (d *Driver) SetColor(c Color) {
	d.color = c
	fg, err := d.palette.Resolve(c)
	d.report(err)
	d.fg = fg
}

// SetRGB sets the current color from components.
func (d *Driver) SetRGB(r, g, b uint8) { d.SetColor(RGBColor(r, g, b)) }

// Color returns the current color.
func (d *Driver) Color() Color { return d.color }

// SetIndexColor changes colormap entry i to the packed 0xRRGGBB00 value
// rgb.
func (d *Driver) SetIndexColor(i Color, rgb uint32) {
	d.palette.Free(i)
	d.palette.SetIndex(i, rgb)
	if i == d.color {
		d.SetColor(i)
	}
}

// FreeColor releases the hardware slot of colormap entry i.
func (d *Driver) FreeColor(i Color) { d.palette.Free(i) }
