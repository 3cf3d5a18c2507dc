package easel

import (
	"fmt"
	"image/color"

	"github.com/phanxgames/easel/reconciler"
)

// Props is the property bag of a primitive instance. The "style" entry holds
// a [Style]; the "children" entry holds the text leaves.
type Props = reconciler.Props

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Font selects a face for text drawing.
type Font struct {
	Family string
	Size   float64
}

// String returns the font in CSS shorthand, e.g. "14px sans-serif".
func (f Font) String() string {
	return fmt.Sprintf("%gpx %s", f.Size, f.Family)
}

// Canvas is the 2D drawing context of a raster surface. Implementations
// are not safe for concurrent use.
type Canvas interface {
	// Size returns the surface extent in pixels.
	Size() (width, height int)
	// ClearRect makes the pixels inside r fully transparent.
	ClearRect(r Rect)
	// FillRect fills r with c.
	FillRect(r Rect, c color.Color)
	// FillText draws s with its alphabetic baseline starting at (x, y).
	FillText(s string, x, y float64, f Font, c color.Color)
}

// Drawable is a primitive instance painted by a Root. Children of a
// drawable are text leaves; instances are created through a [Registry].
type Drawable interface {
	// Type returns the primitive type name, e.g. "rectangle".
	Type() string

	// AppendInitialChild adds child while the drawable is being built. It
	// never triggers a repaint.
	AppendInitialChild(child any)
	AppendChild(child any)
	RemoveChild(child any)
	InsertBefore(child, before any) error

	// ReplaceProps swaps in new props unless they are shallow-equal to the
	// current ones.
	ReplaceProps(props Props)

	// Paint draws the drawable onto c.
	Paint(c Canvas) error

	// SetOwner attaches the drawable to the Root that paints it, or detaches
	// it when r is nil. The reference is weak.
	SetOwner(r *Root)
}
