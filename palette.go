package fldraw

import (
	"errors"
	"fmt"
	"image/color"
)

// Palette maps toolkit colors to device colors. It always holds the
// 256-entry colormap. A paletted palette additionally models a device with
// a fixed number of hardware color slots that must be allocated before a
// color can be drawn.
type Palette struct {
	cmap  [256]uint32
	slots []paletteSlot
}

type paletteSlot struct {
	rgb       uint32
	uses      int
	allocated bool
}

// NewPalette returns a palette with the default colormap. hwSlots > 0
// makes it paletted with that many hardware slots; 0 means true color.
func NewPalette(hwSlots int) *Palette {
	p := &Palette{cmap: defaultColormap()}
	if hwSlots > 0 {
		p.slots = make([]paletteSlot, hwSlots)
	}
	return p
}

// Paletted reports whether p models hardware color slots.
func (p *Palette) Paletted() bool {
	return len(p.slots) > 0
}

// RGB returns the packed 0xRRGGBB00 value c stands for.
func (p *Palette) RGB(c Color) uint32 {
	if c.IsIndex() {
		return p.cmap[c]
	}
	return uint32(c) &^ 0xff
}

// SetIndex changes colormap entry i to the packed value rgb.
func (p *Palette) SetIndex(i Color, rgb uint32) {
	if !i.IsIndex() {
		return
	}
	p.cmap[i] = rgb &^ 0xff
}

// Resolve returns the device color c is drawn with. On a paletted
// palette this allocates a hardware slot; the returned error is
// ErrPaletteExhausted when an existing slot had to be given up.
func (p *Palette) Resolve(c Color) (color.NRGBA, error) {
	rgb := p.RGB(c)
	if !p.Paletted() {
		return unpack(rgb), nil
	}
	slot, err := p.Alloc(rgb)
	return unpack(p.slots[slot].rgb), err
}

// Alloc finds or allocates a hardware slot for rgb and counts one use of
// it. When every slot is taken by another color, the least used slot is
// reassigned (see makeUnusedColor) and ErrPaletteExhausted is returned
// along with that slot.
func (p *Palette) Alloc(rgb uint32) (int, error) {
	if !p.Paletted() {
		return -1, errors.New("fldraw: palette not paletted")
	}
	rgb &^= 0xff
	free := -1
	for i := range p.slots {
		s := &p.slots[i]
		if s.allocated && s.rgb == rgb {
			s.uses++
			return i, nil
		}
		if !s.allocated && free < 0 {
			free = i
		}
	}
	if free >= 0 {
		p.slots[free] = paletteSlot{rgb: rgb, uses: 1, allocated: true}
		return free, nil
	}
	i := p.makeUnusedColor()
	p.slots[i] = paletteSlot{rgb: rgb, uses: 1, allocated: true}
	return i, fmt.Errorf("%w: slot %d reassigned to #%06x", ErrPaletteExhausted, i, rgb>>8)
}

// makeUnusedColor picks the slot to sacrifice when the palette is full:
// the one with the fewest uses, ties going to the lowest index.
func (p *Palette) makeUnusedColor() int {
	best := 0
	for i := 1; i < len(p.slots); i++ {
		if p.slots[i].uses < p.slots[best].uses {
			best = i
		}
	}
	return best
}

// Free releases the hardware slot holding colormap entry i, if any.
func (p *Palette) Free(i Color) {
	if !p.Paletted() || !i.IsIndex() {
		return
	}
	rgb := p.cmap[i]
	for j := range p.slots {
		if p.slots[j].allocated && p.slots[j].rgb == rgb {
			p.slots[j] = paletteSlot{}
			return
		}
	}
}

// Uses returns how often hardware slot i was allocated, or 0 when i is
// out of range or free.
func (p *Palette) Uses(i int) int {
	if i < 0 || i >= len(p.slots) || !p.slots[i].allocated {
		return 0
	}
	return p.slots[i].uses
}
