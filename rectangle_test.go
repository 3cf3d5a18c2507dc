package easel

import (
	"errors"
	"image/color"
	"math/rand/v2"
	"runtime"
	"slices"
	"testing"
	"time"
)

// newTestRoot returns a root over a 200x200 recording canvas driven by its
// own frame queue. The surface is returned so the caller keeps it alive.
func newTestRoot() (*Root, *Surface, *RecordingCanvas, *FrameQueue) {
	rc := NewRecordingCanvas(200, 200)
	s := NewSurface(rc)
	q := NewFrameQueue()
	return NewRoot(s, q), s, rc, q
}

func tomatoProps(children ...any) Props {
	p := Props{"style": Style{Top: 5, Left: 10, Width: 96, Height: 96, Padding: 20, BackgroundColor: "tomato"}}
	switch len(children) {
	case 0:
	case 1:
		p["children"] = children[0]
	default:
		p["children"] = children
	}
	return p
}

func TestRectanglePaintGeometry(t *testing.T) {
	r := NewRectangle(tomatoProps("a", "b"))
	r.AppendInitialChild("a")
	r.AppendInitialChild("b")

	rc := NewRecordingCanvas(200, 200)
	if err := r.Paint(rc); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	want := []DrawCall{
		{Op: OpFillRect, Rect: Rect{X: 10, Y: 5, Width: 96, Height: 96}, Color: color.NRGBA{R: 255, G: 99, B: 71, A: 255}},
		{Op: OpFillText, Text: "ab", X: 30, Y: 39, Font: Font{Family: "sans-serif", Size: 14}, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	if !slices.Equal(rc.Calls(), want) {
		t.Errorf("calls = %v, want %v", rc.Calls(), want)
	}
}

func TestRectanglePaintDefaults(t *testing.T) {
	r := NewRectangle(nil)
	rc := NewRecordingCanvas(10, 10)
	if err := r.Paint(rc); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	calls := rc.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[0].Color != (color.NRGBA{A: 255}) {
		t.Errorf("background = %v, want opaque black", calls[0].Color)
	}
	if calls[1].Text != "" || calls[1].Y != DefaultFontSize {
		t.Errorf("text = %q at y=%g, want empty at y=%d", calls[1].Text, calls[1].Y, DefaultFontSize)
	}
}

func TestRectangleNumberChildren(t *testing.T) {
	r := NewRectangle(nil)
	r.AppendInitialChild("n=")
	r.AppendInitialChild(42)
	r.AppendInitialChild(nil)
	r.AppendInitialChild(false)
	r.AppendInitialChild(1.5)

	got, err := r.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "n=421.5" {
		t.Errorf("Text() = %q, want %q", got, "n=421.5")
	}
}

func TestRectangleNestedChildFails(t *testing.T) {
	parent := NewRectangle(nil)
	parent.AppendInitialChild(NewRectangle(nil))

	rc := NewRecordingCanvas(10, 10)
	err := parent.Paint(rc)
	if !errors.Is(err, ErrUnsupportedChildContent) {
		t.Fatalf("err = %v, want ErrUnsupportedChildContent", err)
	}
	if KindOf(err) != KindUnsupportedChildContent {
		t.Errorf("KindOf = %v, want %v", KindOf(err), KindUnsupportedChildContent)
	}
	var cce *ChildContentError
	if !errors.As(err, &cce) || cce.Type != RectangleType {
		t.Errorf("err = %#v, want *ChildContentError for rectangle", err)
	}
	if len(rc.Calls()) != 0 {
		t.Errorf("painted %d calls, want none", len(rc.Calls()))
	}
}

func TestRectangleListOps(t *testing.T) {
	r := NewRectangle(nil)
	r.AppendChild("a")
	r.AppendChild("c")
	if err := r.InsertBefore("b", "c"); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	if got := r.Children(); !slices.Equal(got, []any{"a", "b", "c"}) {
		t.Fatalf("children = %v, want [a b c]", got)
	}

	r.RemoveChild("b")
	if got := r.Children(); !slices.Equal(got, []any{"a", "c"}) {
		t.Fatalf("children = %v, want [a c]", got)
	}

	// Absent child: no-op.
	r.RemoveChild("zzz")
	if got := r.Children(); !slices.Equal(got, []any{"a", "c"}) {
		t.Fatalf("children = %v, want [a c]", got)
	}

	err := r.InsertBefore("x", "missing")
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("err = %v, want ErrReferenceNotFound", err)
	}
	if got := r.Children(); !slices.Equal(got, []any{"a", "c"}) {
		t.Errorf("children after failed insert = %v, want [a c]", got)
	}
}

func TestRectangleDuplicateLeaves(t *testing.T) {
	r := NewRectangle(nil)
	r.AppendChild("a")
	r.AppendChild("a")
	if err := r.InsertBefore("a", "a"); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	if got := len(r.Children()); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
	r.RemoveChild("a")
	if got := len(r.Children()); got != 2 {
		t.Errorf("len after remove = %d, want 2", got)
	}
}

func TestRectangleMutationsInvalidateOwner(t *testing.T) {
	root, s, _, q := newTestRoot()
	r := NewRectangle(nil)
	root.AppendChild(r)
	q.Tick()
	if root.Pending() {
		t.Fatal("pending after tick")
	}

	r.AppendChild("x")
	if !root.Pending() {
		t.Error("AppendChild did not invalidate")
	}
	q.Tick()

	r.RemoveChild("absent")
	if root.Pending() {
		t.Error("removing an absent child invalidated")
	}
	runtime.KeepAlive(s)
}

func TestRectangleReplaceProps(t *testing.T) {
	root, s, _, q := newTestRoot()
	props := tomatoProps("a", "b")
	r := NewRectangle(props)
	root.AppendChild(r)
	q.Tick()

	// Same keys, identical values.
	same := Props{"style": props["style"], "children": props["children"]}
	r.ReplaceProps(same)
	if root.Pending() {
		t.Error("shallow-equal props scheduled a repaint")
	}

	next := tomatoProps("c")
	r.ReplaceProps(next)
	if !root.Pending() {
		t.Error("new props did not schedule a repaint")
	}
	if got := r.Children(); !slices.Equal(got, []any{"c"}) {
		t.Errorf("children = %v, want [c]", got)
	}
	runtime.KeepAlive(s)
}

func TestRectangleOwnerSetAndCleared(t *testing.T) {
	r := NewRectangle(nil)
	if r.Owner() != nil {
		t.Fatal("new rectangle has an owner")
	}
	root, s, _, _ := newTestRoot()
	root.AppendChild(r)
	if r.Owner() != root {
		t.Error("owner not set on append")
	}
	root.RemoveChild(r)
	if r.Owner() != nil {
		t.Error("owner not cleared on remove")
	}
	runtime.KeepAlive(s)
}

// attachToDroppedRoot paints r once from a root that is unreachable after
// the call returns.
func attachToDroppedRoot(t *testing.T, r *Rectangle) {
	t.Helper()
	root, s, _, q := newTestRoot()
	root.AppendChild(r)
	if q.Tick() != 1 {
		t.Fatal("repaint did not run")
	}
	if r.Owner() != root {
		t.Fatal("owner not set on append")
	}
	runtime.KeepAlive(s)
}

func TestRectangleOwnerIsWeak(t *testing.T) {
	r := NewRectangle(nil)
	attachToDroppedRoot(t, r)

	deadline := time.Now().Add(5 * time.Second)
	for r.Owner() != nil && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if r.Owner() != nil {
		t.Error("rectangle kept its root alive")
	}
}

func TestRectangleRandomListOps(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, 11))
		pool := []any{"a", "b", 1, 2.5, NewRectangle(nil), NewRectangle(nil), NewRectangle(nil)}
		r := NewRectangle(nil)
		var model []any

		detachModel := func(c any) {
			if _, ok := c.(Drawable); ok {
				if i := slices.Index(model, c); i >= 0 {
					model = slices.Delete(model, i, i+1)
				}
			}
		}

		for step := range 200 {
			c := pool[rng.IntN(len(pool))]
			before := pool[rng.IntN(len(pool))]
			var op string
			switch rng.IntN(4) {
			case 0:
				op = "appendInitial"
				model = append(model, c)
				r.AppendInitialChild(c)
			case 1:
				op = "append"
				detachModel(c)
				model = append(model, c)
				r.AppendChild(c)
			case 2:
				op = "remove"
				if i := slices.Index(model, c); i >= 0 {
					model = slices.Delete(model, i, i+1)
				}
				r.RemoveChild(c)
			default:
				op = "insertBefore"
				err := r.InsertBefore(c, before)
				_, isDrawable := c.(Drawable)
				if !slices.Contains(model, before) || (isDrawable && c == before) {
					if !errors.Is(err, ErrReferenceNotFound) {
						t.Fatalf("seed %d step %d: InsertBefore err = %v, want ErrReferenceNotFound", seed, step, err)
					}
					break
				}
				if err != nil {
					t.Fatalf("seed %d step %d: InsertBefore: %v", seed, step, err)
				}
				detachModel(c)
				model = slices.Insert(model, slices.Index(model, before), c)
			}

			if !slices.Equal(r.Children(), model) {
				t.Fatalf("seed %d step %d (%s): children = %v, want %v", seed, step, op, r.Children(), model)
			}
		}
	}
}
