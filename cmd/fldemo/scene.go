package main

import (
	"math"

	"github.com/gogpu/fldraw"
)

// drawScene paints the demo in logical units. The same scene is drawn at
// every scale; only the device resolution changes.
func drawScene(c fldraw.Canvas, w, h int) {
	c.SetColor(fldraw.Background)
	c.Rectf(0, 0, w, h)

	drawFrames(c)
	drawLines(c)
	drawArcs(c)
	drawPolygons(c)
	drawText(c, h)
	drawImages(c, w)
}

// drawFrames draws a box with a hairline border and a focus rectangle.
func drawFrames(c fldraw.Canvas) {
	c.ColoredRectf(10, 10, 120, 60, fldraw.White)
	c.SetColor(fldraw.Black)
	c.Rect(10, 10, 120, 60)
	c.FocusRect(14, 14, 112, 52)

	c.PushClip(20, 20, 60, 40)
	c.SetColor(fldraw.DarkBlue)
	c.Rectf(0, 0, 300, 300)
	c.PopClip()
}

// drawLines draws every dash pattern at two widths.
func drawLines(c fldraw.Canvas) {
	styles := []fldraw.LineStyle{fldraw.Solid, fldraw.Dash, fldraw.Dot, fldraw.DashDot, fldraw.DashDotDot}
	c.SetColor(fldraw.DarkRed)
	for i, st := range styles {
		y := 90 + i*8
		c.LineStyle(st, 0, nil)
		c.XYLine(10, y, 60)
		c.LineStyle(st|fldraw.CapRound, 3, nil)
		c.XYLine(70, y, 130)
	}
	c.LineStyle(fldraw.Solid|fldraw.JoinRound, 4, nil)
	c.Line3(10, 150, 70, 180, 130, 150)
	c.LineStyle(fldraw.Solid, 0, []byte{6, 2, 1, 2})
	c.Line(10, 190, 130, 200)
	c.LineStyle(fldraw.Solid, 0, nil)
}

// drawArcs draws a pie chart, an arc across 0 degrees and a circle path.
func drawArcs(c fldraw.Canvas) {
	slices := []struct {
		deg float64
		col fldraw.Color
	}{
		{120, fldraw.Red}, {90, fldraw.Green}, {80, fldraw.Blue}, {70, fldraw.Yellow},
	}
	a := 0.0
	for _, s := range slices {
		c.SetColor(s.col)
		c.Pie(150, 10, 80, 80, a, a+s.deg)
		a += s.deg
	}
	c.SetColor(fldraw.Black)
	c.Arc(150, 10, 80, 80, 350, 10)

	c.SetColor(fldraw.DarkGreen)
	c.PushMatrix()
	c.Translate(190, 140)
	c.BeginPolygon()
	c.Circle(0, 0, 30)
	c.EndPolygon()
	c.BeginLine()
	c.ArcPath(0, 0, 38, 0, 270)
	c.EndLine()
	c.PopMatrix()
}

// drawPolygons draws rotated squares, a star and a ring built from two
// contours of a complex polygon.
func drawPolygons(c fldraw.Canvas) {
	for i := 0; i < 6; i++ {
		c.PushMatrix()
		c.Translate(290, 50)
		c.Rotate(float64(i) * 15)
		c.SetColor(fldraw.Color(fldraw.ColorCube + i*7))
		c.BeginLoop()
		c.Vertex(-25, -25)
		c.Vertex(25, -25)
		c.Vertex(25, 25)
		c.Vertex(-25, 25)
		c.EndLoop()
		c.PopMatrix()
	}

	c.SetColor(fldraw.Yellow)
	c.PushMatrix()
	c.Translate(290, 140)
	c.BeginPolygon()
	for i := 0; i < 10; i++ {
		r := 30.0
		if i%2 == 1 {
			r = 13
		}
		t := float64(i)*math.Pi/5 - math.Pi/2
		c.Vertex(r*math.Cos(t), r*math.Sin(t))
	}
	c.EndPolygon()
	c.PopMatrix()

	c.SetColor(fldraw.Magenta)
	c.PushMatrix()
	c.Translate(390, 60)
	c.BeginComplexPolygon()
	c.Circle(0, 0, 40)
	c.Gap()
	c.Circle(0, 0, 20)
	c.EndComplexPolygon()
	c.PopMatrix()

	c.SetColor(fldraw.Cyan)
	c.Polygon3(350, 120, 430, 120, 390, 180)
	c.SetColor(fldraw.Black)
	c.Loop4(350, 190, 430, 190, 430, 210, 350, 210)
}

// drawText draws left-to-right, right-to-left and rotated text.
func drawText(c fldraw.Canvas, h int) {
	c.SetColor(fldraw.Black)
	c.SetFont(fldraw.Helvetica, 14)
	y := h - 70
	c.Draw("fldraw at any scale", 10, y)

	c.SetFont(fldraw.CourierBold, 12)
	s := "right to left"
	c.RTLDraw(s, 10+int(c.Width(s))+40, y+c.Height())

	c.SetFont(fldraw.TimesItalic, 18)
	c.SetColor(fldraw.DarkRed)
	c.DrawAngle(30, "angled", 200, h-20)
}

// drawImages draws an RGB gradient, an indexed pixmap and a bitmap, each
// at its natural size and stretched.
func drawImages(c fldraw.Canvas, w int) {
	const n = 16
	pix := make([]byte, n*n*3)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := (y*n + x) * 3
			pix[i], pix[i+1], pix[i+2] = uint8(x*16), uint8(y*16), 0x80
		}
	}
	x := w - 120
	rgb, err := fldraw.NewRGBImage(pix, n, n, 3, 0)
	if err == nil {
		c.DrawRGB(rgb, x, 230, n, n, 0, 0)
		big, _ := fldraw.NewRGBImage(pix, n, n, 3, 0)
		big.SetSize(40, 40)
		big.Scaling = fldraw.ScaleArea
		c.DrawRGB(big, x+20, 230, 40, 40, 0, 0)
	}
	c.DrawImage(pix, x+70, 230, n, n, 3, 0)

	bits := make([]byte, 2*n)
	for y := 0; y < n; y++ {
		bits[2*y], bits[2*y+1] = 0x55<<(y&1), 0xaa>>(y&1)
	}
	if bm, err := fldraw.NewBitmap(bits, n, n); err == nil {
		c.SetColor(fldraw.Blue)
		c.DrawBitmap(bm, x, 280, n, n, 0, 0)
	}
}
