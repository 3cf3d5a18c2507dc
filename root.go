package easel

import (
	"log/slog"
	"slices"
	"time"
	"weak"
)

// Root owns the top-level drawables of one surface and is the only thing
// that repaints it. Every mutation invalidates the root; invalidations are
// debounced to the next frame, so any number of mutations within one frame
// produce a single clear-and-repaint.
//
// A Root is not safe for concurrent use.
type Root struct {
	surface  weak.Pointer[Surface]
	canvas   Canvas
	children []Drawable
	frames   FrameScheduler

	// pending is the scheduled repaint; zero when idle.
	pending FrameHandle

	logger  *slog.Logger
	onError func(*Root, error)
	err     error
	stats   FrameStats
}

// NewRoot creates a root painting onto s, scheduling repaints on frames.
// The root does not keep s alive.
func NewRoot(s *Surface, frames FrameScheduler) *Root {
	if s == nil {
		panic("easel: NewRoot with nil surface")
	}
	if frames == nil {
		frames = DefaultFrames
	}
	return &Root{
		surface: weak.Make(s),
		canvas:  s.Canvas(),
		frames:  frames,
		logger:  packageLogger,
	}
}

// Surface returns the surface, or nil once it has been reclaimed.
func (r *Root) Surface() *Surface {
	return r.surface.Value()
}

// Canvas returns the drawing context of the surface.
func (r *Root) Canvas() Canvas {
	return r.canvas
}

// Children returns the top-level drawables. The returned slice MUST NOT be
// mutated.
func (r *Root) Children() []Drawable {
	return r.children
}

// AppendChild adds d to the end of the list, moving it if already present.
func (r *Root) AppendChild(d Drawable) {
	if d == nil {
		panic("easel: cannot append nil drawable")
	}
	if i := slices.Index(r.children, d); i >= 0 {
		r.children = slices.Delete(r.children, i, i+1)
	}
	d.SetOwner(r)
	r.children = append(r.children, d)
	r.Invalidate()
}

// RemoveChild removes d from the list and detaches it. Removing a drawable
// that is not in the list is a no-op.
func (r *Root) RemoveChild(d Drawable) {
	i := slices.Index(r.children, d)
	if i < 0 {
		return
	}
	r.children = slices.Delete(r.children, i, i+1)
	d.SetOwner(nil)
	r.Invalidate()
}

// InsertBefore inserts d immediately before before, moving d if already
// present. If before is not in the list a *ReferenceError is returned and
// the list is unchanged.
func (r *Root) InsertBefore(d, before Drawable) error {
	if d == nil {
		panic("easel: cannot insert nil drawable")
	}
	if d == before || slices.Index(r.children, before) < 0 {
		return &ReferenceError{Op: "root insertBefore", Reference: before}
	}
	if i := slices.Index(r.children, d); i >= 0 {
		r.children = slices.Delete(r.children, i, i+1)
	}
	d.SetOwner(r)
	r.children = slices.Insert(r.children, slices.Index(r.children, before), d)
	r.Invalidate()
	return nil
}

// Invalidate schedules a repaint on the next frame, replacing any repaint
// already scheduled.
func (r *Root) Invalidate() {
	r.stats.Invalidations++
	if r.pending != 0 {
		r.frames.CancelFrame(r.pending)
		r.stats.Coalesced++
	}
	r.pending = r.frames.RequestFrame(r.frame)
}

// Pending reports whether a repaint is scheduled.
func (r *Root) Pending() bool {
	return r.pending != 0
}

func (r *Root) frame() {
	r.pending = 0
	if err := r.Repaint(); err != nil {
		r.logger.Error("easel: paint failed, frame aborted", "err", err)
		if r.onError != nil {
			r.onError(r, err)
		}
	}
}

// Repaint clears the whole surface and paints every top-level drawable in
// order. The first paint error aborts the frame; it is returned and kept
// until the next successful repaint (see Err). A root whose surface has
// been reclaimed does nothing.
func (r *Root) Repaint() error {
	if r.surface.Value() == nil {
		return nil
	}
	start := time.Now()
	w, h := r.canvas.Size()
	r.canvas.ClearRect(Rect{Width: float64(w), Height: float64(h)})
	cleared := time.Now()

	painted := 0
	for _, d := range r.children {
		if err := d.Paint(r.canvas); err != nil {
			r.err = err
			r.stats.Failures++
			return err
		}
		painted++
	}
	r.err = nil

	r.stats.Repaints++
	r.stats.Nodes = painted
	r.stats.ClearTime = cleared.Sub(start)
	r.stats.PaintTime = time.Since(cleared)
	r.debugLog()
	r.debugCheckChildCount()
	return nil
}

// Err returns the error of the last repaint, or nil if it succeeded.
func (r *Root) Err() error {
	return r.err
}
