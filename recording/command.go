package recording

import (
	"image"
	"image/color"

	"github.com/gogpu/fldraw"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdFillSpan   CommandType = iota // Fill part of a row
	CmdFillRect                      // Fill a rectangle
	CmdBlendPixel                    // Composite one pixel
	CmdSetClip                       // Set or clear the clip region
	CmdDrawFixed                     // Draw a device-resolution cache entry
	CmdRelease                       // Drop the resources of a cache entry
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdFillSpan:   "FillSpan",
	CmdFillRect:   "FillRect",
	CmdBlendPixel: "BlendPixel",
	CmdSetClip:    "SetClip",
	CmdDrawFixed:  "DrawFixed",
	CmdRelease:    "Release",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ImageRef is a reference to a cache entry in the resource pool.
type ImageRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a valid image.
func (r ImageRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// FillSpanCommand paints pixels X0 <= x < X1 of row Y.
type FillSpanCommand struct {
	Y, X0, X1 int
	Color     color.NRGBA
}

// Type implements Command.
func (FillSpanCommand) Type() CommandType { return CmdFillSpan }

// FillRectCommand paints a rectangle.
type FillRectCommand struct {
	Rect  image.Rectangle
	Color color.NRGBA
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// BlendPixelCommand composites one pixel with partial coverage.
type BlendPixelCommand struct {
	X, Y     int
	Color    color.NRGBA
	Coverage uint8
}

// Type implements Command.
func (BlendPixelCommand) Type() CommandType { return CmdBlendPixel }

// SetClipCommand installs a clip region. A nil Rects means no clip; an
// empty non-nil Rects clips everything away.
type SetClipCommand struct {
	Rects []image.Rectangle
}

// Type implements Command.
func (SetClipCommand) Type() CommandType { return CmdSetClip }

// DrawFixedCommand draws a cache entry from the resource pool.
type DrawFixedCommand struct {
	Image     ImageRef
	EntryID   uint64
	Placement fldraw.Placement
	Color     color.NRGBA // bitmap color
}

// Type implements Command.
func (DrawFixedCommand) Type() CommandType { return CmdDrawFixed }

// ReleaseCommand drops a cache entry the backend was told about.
type ReleaseCommand struct {
	EntryID uint64
}

// Type implements Command.
func (ReleaseCommand) Type() CommandType { return CmdRelease }
