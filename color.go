package fldraw

import (
	"fmt"
	"image/color"
)

// Color is a toolkit color value. Values whose upper 24 bits are zero are
// indexes into the 256-entry colormap; anything else is a packed
// 0xRRGGBB00 value.
type Color uint32

// Standard colormap indexes.
const (
	Black      Color = 0
	Red        Color = 1
	Green      Color = 2
	Yellow     Color = 3
	Blue       Color = 4
	Magenta    Color = 5
	Cyan       Color = 6
	White      Color = 7
	DarkRed    Color = 72
	DarkGreen  Color = 60
	DarkBlue   Color = 136
	Selection  Color = 15
	Foreground Color = 0
	Background Color = 49
	Inactive   Color = 8
)

// Colormap layout constants.
const (
	GrayRamp  = 32 // first index of the 24-step gray ramp
	NumGray   = 24
	ColorCube = 56 // first index of the 5x8x5 color cube
	NumRed    = 5
	NumGreen  = 8
	NumBlue   = 5
)

// RGBColor packs r, g and b into a Color.
func RGBColor(r, g, b uint8) Color {
	c := Color(r)<<24 | Color(g)<<16 | Color(b)<<8
	if c == 0 {
		return Black
	}
	return c
}

// IsIndex reports whether c refers to a colormap entry.
func (c Color) IsIndex() bool {
	return c&0xffffff00 == 0
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c.IsIndex() {
		return fmt.Sprintf("Color(%d)", uint32(c))
	}
	return fmt.Sprintf("Color(#%06x)", uint32(c)>>8)
}

// cubeLevel returns the channel value of step i out of n.
func cubeLevel(i, n int) uint8 {
	return uint8(i * 255 / (n - 1))
}

// defaultColormap returns the toolkit's initial 256-entry colormap, each
// entry packed as 0xRRGGBB00.
func defaultColormap() [256]uint32 {
	var cm [256]uint32
	base := [16]uint32{
		0x00000000, 0xff000000, 0x00ff0000, 0xffff0000,
		0x0000ff00, 0xff00ff00, 0x00ffff00, 0xffffff00,
		0x55555500, 0xc6717100, 0x71c67100, 0x8e8e3800,
		0x7171c600, 0x8e388e00, 0x388e8e00, 0x00008000,
	}
	copy(cm[:], base[:])
	// 16..31 default to a dark gray until an application sets them.
	for i := 16; i < GrayRamp; i++ {
		cm[i] = 0x55555500
	}
	for i := 0; i < NumGray; i++ {
		v := uint32(cubeLevel(i, NumGray))
		cm[GrayRamp+i] = v<<24 | v<<16 | v<<8
	}
	for b := 0; b < NumBlue; b++ {
		for r := 0; r < NumRed; r++ {
			for g := 0; g < NumGreen; g++ {
				idx := ColorCube + (b*NumRed+r)*NumGreen + g
				cm[idx] = uint32(cubeLevel(r, NumRed))<<24 |
					uint32(cubeLevel(g, NumGreen))<<16 |
					uint32(cubeLevel(b, NumBlue))<<8
			}
		}
	}
	return cm
}

// unpack splits a packed 0xRRGGBB00 value into an opaque color.
func unpack(rgb uint32) color.NRGBA {
	return color.NRGBA{R: uint8(rgb >> 24), G: uint8(rgb >> 16), B: uint8(rgb >> 8), A: 0xff}
}

func pack(c color.NRGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8
}
