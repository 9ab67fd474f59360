package fldraw

import (
	"fmt"
	"math"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fldraw/internal/cache"
)

// Font identifies a typeface. The first 16 values are the standard faces;
// applications may register more with GoFontRegistry.SetFace.
type Font int

// Standard faces.
const (
	Helvetica Font = iota
	HelveticaBold
	HelveticaItalic
	HelveticaBoldItalic
	Courier
	CourierBold
	CourierItalic
	CourierBoldItalic
	Times
	TimesBold
	TimesItalic
	TimesBoldItalic
	Symbol
	Screen
	ScreenBold
	ZapfDingbats
	FreeFont // first face free for applications
)

// Style modifiers that can be added to the first face of a family.
const (
	Bold   Font = 1
	Italic Font = 2
)

// MinFontSize is the smallest size a registry resolves.
const MinFontSize = 1

// FontDescriptor is a face resolved at one size. Descriptors of the same
// face are chained through Next, most recently resolved first. They are
// cached for the lifetime of their registry and never destroyed.
type FontDescriptor struct {
	Font    Font
	Size    float64
	Ascent  int
	Descent int
	QWidth  int // advance of 'M'
	Next    *FontDescriptor

	mu     sync.Mutex // font.Face is not safe for concurrent use
	face   font.Face
	widths *cache.Cache[string, float64]
}

// Height returns the line height, Ascent + Descent.
func (d *FontDescriptor) Height() int {
	return d.Ascent + d.Descent
}

// Width returns the advance of s in device pixels.
func (d *FontDescriptor) Width(s string) float64 {
	s = validPrefix(s)
	if s == "" {
		return 0
	}
	return d.widths.GetOrCreate(s, func() float64 {
		d.mu.Lock()
		defer d.mu.Unlock()
		return fixedToFloat(font.MeasureString(d.face, s))
	})
}

// RuneWidth returns the advance of r in device pixels.
func (d *FontDescriptor) RuneWidth(r rune) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	adv, ok := d.face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return fixedToFloat(adv)
}

// Extents returns the ink box of s relative to the origin on the baseline:
// (dx, dy) is the top-left corner, w x h its size.
func (d *FontDescriptor) Extents(s string) (dx, dy, w, h int) {
	s = validPrefix(s)
	if s == "" {
		return 0, 0, 0, 0
	}
	d.mu.Lock()
	b, _ := font.BoundString(d.face, s)
	d.mu.Unlock()
	x0, y0 := b.Min.X.Floor(), b.Min.Y.Floor()
	return x0, y0, b.Max.X.Ceil() - x0, b.Max.Y.Ceil() - y0
}

// Face returns the underlying face. Callers must not use it concurrently
// with the descriptor's own methods.
func (d *FontDescriptor) Face() font.Face {
	return d.face
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// validPrefix trims a trailing incomplete UTF-8 sequence. Callers pass
// byte runs that may have been cut in the middle of a character.
func validPrefix(s string) string {
	for i := len(s) - 1; i >= 0 && i >= len(s)-utf8.UTFMax; i-- {
		if utf8.RuneStart(s[i]) {
			if !utf8.FullRuneInString(s[i:]) {
				return s[:i]
			}
			return s
		}
	}
	return s
}

// FontRegistry resolves a face at a size.
type FontRegistry interface {
	Resolve(f Font, size float64) (*FontDescriptor, error)
}

// GoFontRegistry resolves faces from TrueType data, defaulting the
// standard faces to the Go font family. It is safe for concurrent use.
type GoFontRegistry struct {
	mu    sync.Mutex
	faces map[Font]*fontEntry
}

type fontEntry struct {
	name   string
	ttf    []byte
	parsed *opentype.Font
	first  *FontDescriptor
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *GoFontRegistry
)

// DefaultFontRegistry returns the process-wide registry used by drivers
// created without WithFontRegistry.
func DefaultFontRegistry() *GoFontRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewGoFontRegistry()
	})
	return defaultRegistry
}

// NewGoFontRegistry returns a registry with the 16 standard faces mapped
// to the Go fonts.
func NewGoFontRegistry() *GoFontRegistry {
	r := &GoFontRegistry{faces: make(map[Font]*fontEntry)}
	std := []struct {
		name string
		ttf  []byte
	}{
		{"Helvetica", goregular.TTF},
		{"Helvetica Bold", gobold.TTF},
		{"Helvetica Italic", goitalic.TTF},
		{"Helvetica Bold Italic", gobolditalic.TTF},
		{"Courier", gomono.TTF},
		{"Courier Bold", gomonobold.TTF},
		{"Courier Italic", gomonoitalic.TTF},
		{"Courier Bold Italic", gomonobolditalic.TTF},
		{"Times", gomedium.TTF},
		{"Times Bold", gobold.TTF},
		{"Times Italic", gomediumitalic.TTF},
		{"Times Bold Italic", gobolditalic.TTF},
		{"Symbol", goregular.TTF},
		{"Screen", gomono.TTF},
		{"Screen Bold", gomonobold.TTF},
		{"Zapf Dingbats", goregular.TTF},
	}
	for i, s := range std {
		r.faces[Font(i)] = &fontEntry{name: s.name, ttf: s.ttf}
	}
	return r
}

// SetFace registers TrueType or OpenType data for f, dropping any sizes
// already resolved for it.
func (r *GoFontRegistry) SetFace(f Font, name string, ttf []byte) error {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("fldraw: parse font %q: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[f] = &fontEntry{name: name, ttf: ttf, parsed: parsed}
	return nil
}

// Name returns the name registered for f, or "" when f is unknown.
func (r *GoFontRegistry) Name(f Font) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.faces[f]; ok {
		return e.name
	}
	return ""
}

// Resolve implements FontRegistry. An unknown face falls back to
// Helvetica with a warning; sizes below MinFontSize are raised to it.
func (r *GoFontRegistry) Resolve(f Font, size float64) (*FontDescriptor, error) {
	if size < MinFontSize || math.IsNaN(size) {
		size = MinFontSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.faces[f]
	if !ok {
		Logger().Warn("fldraw: unknown font, using Helvetica", "font", int(f))
		f = Helvetica
		e = r.faces[f]
		if e == nil {
			return nil, fmt.Errorf("%w: no fallback face", ErrFontUnavailable)
		}
	}
	for d := e.first; d != nil; d = d.Next {
		if d.Size == size {
			return d, nil
		}
	}
	if e.parsed == nil {
		parsed, err := opentype.Parse(e.ttf)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, e.name, err)
		}
		e.parsed = parsed
	}
	face, err := opentype.NewFace(e.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %g: %v", ErrFontUnavailable, e.name, size, err)
	}
	m := face.Metrics()
	d := &FontDescriptor{
		Font:    f,
		Size:    size,
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
		face:    face,
		widths:  cache.New[string, float64](512),
	}
	if adv, ok := face.GlyphAdvance('M'); ok {
		d.QWidth = adv.Round()
	}
	d.Next = e.first
	e.first = d
	return d, nil
}
