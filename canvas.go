package fldraw

import (
	"image"
)

// Canvas is the drawing contract widgets draw through. Coordinates are
// logical units; on an unscaled Driver they are device pixels. Drawing
// calls never fail: invalid requests are reported to the driver's error
// handler and otherwise ignored.
//
// A Canvas is not safe for concurrent use.
type Canvas interface {
	// Primitives. Integer primitives ignore the transform matrix; the
	// vertex builder, Circle, ArcPath and Curve honor it.
	Point(x, y int)
	Rect(x, y, w, h int)
	Rectf(x, y, w, h int)
	ColoredRectf(x, y, w, h int, c Color)
	FocusRect(x, y, w, h int)
	OverlayRect(x, y, w, h int)
	Line(x, y, x1, y1 int)
	Line3(x, y, x1, y1, x2, y2 int)
	XYLine(x, y, x1 int)
	XYLine2(x, y, x1, y2 int)
	XYLine3(x, y, x1, y2, x3 int)
	YXLine(x, y, y1 int)
	YXLine2(x, y, y1, x2 int)
	YXLine3(x, y, y1, x2, y3 int)
	Loop3(x0, y0, x1, y1, x2, y2 int)
	Loop4(x0, y0, x1, y1, x2, y2, x3, y3 int)
	Polygon3(x0, y0, x1, y1, x2, y2 int)
	Polygon4(x0, y0, x1, y1, x2, y2, x3, y3 int)
	Arc(x, y, w, h int, a1, a2 float64)
	Pie(x, y, w, h int, a1, a2 float64)
	Circle(x, y, r float64)
	ArcPath(x, y, r, start, end float64)
	Curve(x0, y0, x1, y1, x2, y2, x3, y3 float64)
	LineStyle(style LineStyle, width int, dashes []byte)

	// Vertex-list builder.
	BeginPoints()
	BeginLine()
	BeginLoop()
	BeginPolygon()
	BeginComplexPolygon()
	Vertex(x, y float64)
	TransformedVertex(x, y float64)
	Gap()
	EndPoints()
	EndLine()
	EndLoop()
	EndPolygon()
	EndComplexPolygon()

	// Transformations.
	PushMatrix()
	PopMatrix()
	MultMatrix(m Matrix)
	Rotate(deg float64)
	Translate(x, y float64)
	ScaleXY(x, y float64)
	TransformX(x, y float64) float64
	TransformY(x, y float64) float64
	TransformDX(x, y float64) float64
	TransformDY(x, y float64) float64
	Matrix() Matrix

	// Clipping.
	PushClip(x, y, w, h int)
	PushNoClip()
	PopClip()
	ClipBox(x, y, w, h int) (cx, cy, cw, ch int, changed bool)
	NotClipped(x, y, w, h int) Visibility
	ClipRegion() *Region
	SetClipRegion(r *Region)
	RestoreClip()

	// Color.
	SetColor(c Color)
	SetRGB(r, g, b uint8)
	Color() Color
	SetIndexColor(i Color, rgb uint32)
	FreeColor(i Color)

	// Text.
	SetFont(f Font, size float64)
	Font() Font
	Size() float64
	FontDescriptor() *FontDescriptor
	Draw(s string, x, y int)
	DrawAt(s string, x, y float64)
	DrawAngle(angle float64, s string, x, y int)
	RTLDraw(s string, x, y int)
	Width(s string) float64
	RuneWidth(r rune) float64
	TextExtents(s string) (dx, dy, w, h int)
	Height() int
	Descent() int

	// Images. (cx, cy) is the offset into the image of the pixel drawn at
	// (x, y); w x h is the visible part.
	DrawRGB(img *RGBImage, x, y, w, h, cx, cy int)
	DrawPixmap(img *Pixmap, x, y, w, h, cx, cy int)
	DrawBitmap(img *Bitmap, x, y, w, h, cx, cy int)
	DrawImage(buf []byte, x, y, w, h, depth, stride int)
	DrawImageMono(buf []byte, x, y, w, h, depth, stride int)
	DrawImageFunc(cb ImageFunc, x, y, w, h, depth int)
	DrawImageMonoFunc(cb ImageFunc, x, y, w, h, depth int)
	CopyOffscreen(x, y, w, h int, src image.Image, srcx, srcy int)
	Uncache(img Image)
	CreateBitmask(w, h int, bits []byte) *Bitmask
	DeleteBitmask(b *Bitmask)

	// Driver settings.
	Scale() float64
	SetScale(s float64)
	OverrideScale() float64
	RestoreScale(s float64)
	SetAntialias(on bool)
	Antialias() bool
	HasFeature(f Feature) bool
	CanDoAlphaBlending() bool
}

// ImageFunc produces one row of a callback image: it fills buf with w
// pixels of row y starting at column x.
type ImageFunc func(x, y, w int, buf []byte)

// Unscaled is a Canvas that also accepts device-pixel requests. Scaled
// wraps an Unscaled and converts every logical call into these.
type Unscaled interface {
	Canvas

	PointUnscaled(x, y int)
	RectfUnscaled(x, y, w, h int)
	LineUnscaled(x, y, x1, y1 int)
	XYLineUnscaled(x, y, x1 int)
	YXLineUnscaled(x, y, y1 int)
	LoopUnscaled(pts []image.Point)
	PolygonUnscaled(pts []image.Point)
	EllipseUnscaled(x, y, rx, ry float64)
	ArcUnscaled(x, y, w, h int, a1, a2 float64)
	PieUnscaled(x, y, w, h int, a1, a2 float64)
	TransformedVertexUnscaled(x, y float64)
	LineStyleUnscaled(style LineStyle, width float64, dashes []byte)

	FontUnscaled(f Font, size float64)
	WidthUnscaled(s string) float64
	RuneWidthUnscaled(r rune) float64
	TextExtentsUnscaled(s string) (dx, dy, w, h int)
	HeightUnscaled() int
	DescentUnscaled() int
	DrawUnscaled(s string, x, y float64)
	DrawAngleUnscaled(angle float64, s string, x, y int)
	RTLDrawUnscaled(s string, x, y int)

	DrawImageUnscaled(buf []byte, x, y, w, h, depth, stride int)
	DrawImageMonoUnscaled(buf []byte, x, y, w, h, depth, stride int)
	DrawRGBUnscaled(img *RGBImage, p Placement)
	DrawPixmapUnscaled(img *Pixmap, p Placement)
	DrawBitmapUnscaled(img *Bitmap, p Placement)
	CopyOffscreenUnscaled(x, y, w, h int, src image.Image, srcx, srcy int)

	// ScaleClip replaces the active clip region with a copy scaled by f
	// and returns the replaced region, which the caller now owns.
	ScaleClip(f float64) *Region
	// UnscaleClip reinstalls a region returned by ScaleClip.
	UnscaleClip(r *Region)
}
