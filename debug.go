package easel

import (
	"context"
	"log/slog"
	"time"
)

// FrameStats holds the repaint counters of a Root.
type FrameStats struct {
	Repaints      int // completed repaints
	Failures      int // repaints aborted by a paint error
	Invalidations int // calls to Invalidate
	Coalesced     int // invalidations that replaced a pending repaint

	// Last successful repaint.
	Nodes     int
	ClearTime time.Duration
	PaintTime time.Duration
}

// Stats returns the root's repaint counters.
func (r *Root) Stats() FrameStats {
	return r.stats
}

// debugLog reports the last repaint at debug level.
func (r *Root) debugLog() {
	if !r.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	st := r.stats
	r.logger.Debug("easel: repaint",
		"nodes", st.Nodes,
		"clear", st.ClearTime,
		"paint", st.PaintTime,
		"total", st.ClearTime+st.PaintTime,
		"repaints", st.Repaints,
		"invalidations", st.Invalidations,
		"coalesced", st.Coalesced)
}

// debugMaxChildCount is the top-level list size above which a root warns.
const debugMaxChildCount = 1000

func (r *Root) debugCheckChildCount() {
	if len(r.children) > debugMaxChildCount {
		r.logger.Warn("easel: root has many top-level drawables",
			"children", len(r.children), "threshold", debugMaxChildCount)
	}
}
