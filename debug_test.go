package easel

import (
	"bytes"
	"log/slog"
	"runtime"
	"strings"
	"testing"
)

// ---- Frame stats tests -----------------------------------------------------

func TestStats_CountsRepaintsAndInvalidations(t *testing.T) {
	root, s, _, q := newTestRoot()
	a, b := NewRectangle(nil), NewRectangle(nil)

	root.AppendChild(a)
	root.AppendChild(b)
	q.Tick()

	st := root.Stats()
	if st.Repaints != 1 {
		t.Errorf("Repaints = %d, want 1", st.Repaints)
	}
	if st.Invalidations != 2 {
		t.Errorf("Invalidations = %d, want 2", st.Invalidations)
	}
	if st.Coalesced != 1 {
		t.Errorf("Coalesced = %d, want 1", st.Coalesced)
	}
	if st.Nodes != 2 {
		t.Errorf("Nodes = %d, want 2", st.Nodes)
	}
	if st.ClearTime < 0 || st.PaintTime < 0 {
		t.Errorf("negative timings: %+v", st)
	}
	runtime.KeepAlive(s)
}

func TestStats_ReclaimedSurfaceSkipsRepaint(t *testing.T) {
	q := NewFrameQueue()
	root := NewRoot(NewSurface(NewRecordingCanvas(10, 10)), q)
	root.AppendChild(NewRectangle(nil))

	for i := 0; i < 10 && root.Surface() != nil; i++ {
		runtime.GC()
	}
	if root.Surface() != nil {
		t.Skip("surface not collected")
	}
	q.Tick()
	if root.Stats().Repaints != 0 {
		t.Errorf("Repaints = %d, want 0", root.Stats().Repaints)
	}
}

func TestDebugCheckChildCount(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	root, s, _, q := newTestRoot()
	for range debugMaxChildCount + 1 {
		root.AppendChild(NewRectangle(nil))
	}
	q.Tick()
	if !strings.Contains(buf.String(), "many top-level drawables") {
		t.Errorf("no warning logged: %q", buf.String())
	}
	runtime.KeepAlive(s)
}
