package easel

import (
	"fmt"
	"image/color"
)

// DrawOp identifies a recorded canvas call.
type DrawOp uint8

const (
	OpClearRect DrawOp = iota + 1
	OpFillRect
	OpFillText
)

func (op DrawOp) String() string {
	switch op {
	case OpClearRect:
		return "clearRect"
	case OpFillRect:
		return "fillRect"
	case OpFillText:
		return "fillText"
	default:
		return fmt.Sprintf("DrawOp(%d)", uint8(op))
	}
}

// DrawCall is one recorded canvas call. Rect is set for rect operations;
// Text, X, Y and Font for text.
type DrawCall struct {
	Op    DrawOp
	Rect  Rect
	Text  string
	X, Y  float64
	Font  Font
	Color color.NRGBA
}

func (c DrawCall) String() string {
	switch c.Op {
	case OpFillText:
		return fmt.Sprintf("%s(%q, %g, %g, %s, %v)", c.Op, c.Text, c.X, c.Y, c.Font, c.Color)
	case OpFillRect:
		return fmt.Sprintf("%s(%g, %g, %g, %g, %v)", c.Op, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height, c.Color)
	default:
		return fmt.Sprintf("%s(%g, %g, %g, %g)", c.Op, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
	}
}

// RecordingCanvas is a Canvas that records calls instead of drawing. It is
// used headless and in tests, and can replay what it recorded onto a real
// canvas.
type RecordingCanvas struct {
	width, height int
	calls         []DrawCall
}

var _ Canvas = (*RecordingCanvas)(nil)

// NewRecordingCanvas creates a recording canvas reporting the given size.
func NewRecordingCanvas(width, height int) *RecordingCanvas {
	return &RecordingCanvas{width: width, height: height}
}

// Size implements Canvas.
func (rc *RecordingCanvas) Size() (int, int) { return rc.width, rc.height }

// ClearRect implements Canvas.
func (rc *RecordingCanvas) ClearRect(r Rect) {
	rc.calls = append(rc.calls, DrawCall{Op: OpClearRect, Rect: r})
}

// FillRect implements Canvas.
func (rc *RecordingCanvas) FillRect(r Rect, c color.Color) {
	rc.calls = append(rc.calls, DrawCall{Op: OpFillRect, Rect: r, Color: toNRGBA(c)})
}

// FillText implements Canvas.
func (rc *RecordingCanvas) FillText(s string, x, y float64, f Font, c color.Color) {
	rc.calls = append(rc.calls, DrawCall{Op: OpFillText, Text: s, X: x, Y: y, Font: f, Color: toNRGBA(c)})
}

// Calls returns the recorded calls in order. The returned slice MUST NOT be
// mutated.
func (rc *RecordingCanvas) Calls() []DrawCall { return rc.calls }

// Reset forgets all recorded calls.
func (rc *RecordingCanvas) Reset() { rc.calls = rc.calls[:0] }

// Replay issues the recorded calls on dst.
func (rc *RecordingCanvas) Replay(dst Canvas) {
	for _, c := range rc.calls {
		switch c.Op {
		case OpClearRect:
			dst.ClearRect(c.Rect)
		case OpFillRect:
			dst.FillRect(c.Rect, c.Color)
		case OpFillText:
			dst.FillText(c.Text, c.X, c.Y, c.Font, c.Color)
		}
	}
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
