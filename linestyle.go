package fldraw

import "math"

// LineStyle combines a dash pattern, a cap style and a join style.
type LineStyle int

// Dash patterns.
const (
	Solid      LineStyle = 0
	Dash       LineStyle = 1
	Dot        LineStyle = 2
	DashDot    LineStyle = 3
	DashDotDot LineStyle = 4
)

// Cap styles.
const (
	CapFlat   LineStyle = 0x100
	CapRound  LineStyle = 0x200
	CapSquare LineStyle = 0x300
)

// Join styles.
const (
	JoinMiter LineStyle = 0x1000
	JoinRound LineStyle = 0x2000
	JoinBevel LineStyle = 0x3000
)

// Pattern returns the dash pattern bits of s.
func (s LineStyle) Pattern() LineStyle { return s & 0xff }

// Cap returns the cap bits of s; zero means CapFlat.
func (s LineStyle) Cap() LineStyle {
	if c := s & 0xf00; c != 0 {
		return c
	}
	return CapFlat
}

// Join returns the join bits of s; zero means JoinMiter.
func (s LineStyle) Join() LineStyle {
	if j := s & 0xf000; j != 0 {
		return j
	}
	return JoinMiter
}

// pen is the resolved stroke state in device pixels.
type pen struct {
	style LineStyle
	width float64 // 0 is a hairline
	runs  []float64
}

// newPen resolves style, width and an optional custom dash sequence into
// device-pixel run lengths. dashes holds alternating on/off lengths and
// takes precedence over the style's pattern; a zero entry ends it.
func newPen(style LineStyle, width float64, dashes []byte) pen {
	p := pen{style: style, width: width}
	if width < 0 {
		p.width = 0
	}
	if len(dashes) > 0 {
		for _, d := range dashes {
			if d == 0 {
				break
			}
			p.runs = append(p.runs, float64(d))
		}
		if len(p.runs)%2 == 1 {
			p.runs = append(p.runs, p.runs...)
		}
		return p
	}
	w := p.width
	if w < 1 {
		w = 1
	}
	var dash, dot, gap float64
	if style.Cap() == CapRound || style.Cap() == CapSquare {
		// Caps extend each run by half the width on both ends.
		dash, dot, gap = 2*w, 1, 2*w-1
	} else {
		dash, dot, gap = 3*w, w, w
	}
	switch style.Pattern() {
	case Dash:
		p.runs = []float64{dash, gap}
	case Dot:
		p.runs = []float64{dot, gap}
	case DashDot:
		p.runs = []float64{dash, gap, dot, gap}
	case DashDotDot:
		p.runs = []float64{dash, gap, dot, gap, dot, gap}
	}
	return p
}

// dashed reports whether the pen draws a dash pattern.
func (p pen) dashed() bool {
	return len(p.runs) > 0
}

// scaledDashes multiplies a custom dash sequence by s, keeping every run
// at least one device pixel long.
func scaledDashes(dashes []byte, s float64) []byte {
	if len(dashes) == 0 || s == 1 {
		return dashes
	}
	out := make([]byte, 0, len(dashes))
	for _, d := range dashes {
		if d == 0 {
			break
		}
		v := int(float64(d)*s + floorBias)
		if v < 1 {
			v = 1
		}
		if v > 255 {
			v = 255
		}
		out = append(out, byte(v))
	}
	return out
}

// dasher walks a dash pattern along a path, carrying the phase from one
// segment to the next.
type dasher struct {
	runs  []float64
	idx   int
	left  float64
	begun bool
}

func newDasher(runs []float64) *dasher {
	return &dasher{runs: runs}
}

// on reports whether the current run is a drawn one.
func (d *dasher) on() bool {
	return d.idx%2 == 0
}

// split cuts the length l into alternating pieces following the pattern.
// It calls emit(t0, t1) for each drawn piece, t in [0, l].
func (d *dasher) split(l float64, emit func(t0, t1 float64)) {
	if !d.begun {
		d.left = d.runs[0]
		d.begun = true
	}
	t := 0.0
	for t < l {
		step := d.left
		if t+step > l {
			step = l - t
		}
		if d.on() && step > 0 {
			emit(t, t+step)
		}
		t += step
		d.left -= step
		if d.left <= 0 {
			d.idx = (d.idx + 1) % len(d.runs)
			d.left = d.runs[d.idx]
		}
	}
}

// stepPixel advances the pattern by one pixel and reports whether that
// pixel is drawn. Hairlines use it while walking a Bresenham line.
func (d *dasher) stepPixel() bool {
	if !d.begun {
		d.left = d.runs[0]
		d.begun = true
	}
	drawn := d.on()
	d.left--
	if d.left <= 0 {
		d.idx = (d.idx + 1) % len(d.runs)
		d.left = d.runs[d.idx]
	}
	return drawn
}

func (d *dasher) period() float64 {
	var p float64
	for _, r := range d.runs {
		p += r
	}
	return p
}

// advance moves the pattern along by l without drawing. Whole periods
// are skipped at once.
func (d *dasher) advance(l float64) {
	if d == nil || l <= 0 {
		return
	}
	if p := d.period(); p > 0 {
		l = math.Mod(l, p)
	}
	d.split(l, func(_, _ float64) {})
}

// skip advances a per-pixel walk by n pixels without drawing.
func (d *dasher) skip(n int) {
	if d == nil || n <= 0 {
		return
	}
	if p := int(d.period()); p > 0 {
		n %= p
	}
	for ; n > 0; n-- {
		d.stepPixel()
	}
}
