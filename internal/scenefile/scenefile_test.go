package scenefile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/phanxgames/easel"
	"github.com/phanxgames/easel/reconciler"
)

const tomato = `
type: rectangle
key: greeting
style:
  top: 5
  left: 10
  width: 96
  height: 96
  padding: 20
  backgroundColor: tomato
children: [a, b]
`

func TestParseElement(t *testing.T) {
	got, err := Parse([]byte(tomato))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el, ok := got.(reconciler.Element)
	if !ok {
		t.Fatalf("got %T, want reconciler.Element", got)
	}
	if el.Type != "rectangle" || el.Key != "greeting" {
		t.Errorf("type, key = %v, %q", el.Type, el.Key)
	}
	wantStyle := easel.Style{Top: 5, Left: 10, Width: 96, Height: 96, Padding: 20, BackgroundColor: "tomato"}
	if st := easel.StyleOf(el.Props); st != wantStyle {
		t.Errorf("style = %+v, want %+v", st, wantStyle)
	}
	if !reflect.DeepEqual(el.Props.Children(), []any{"a", "b"}) {
		t.Errorf("children = %#v", el.Props.Children())
	}
}

func TestParseList(t *testing.T) {
	got, err := Parse([]byte(`
- type: rectangle
  children: 42
- type: rectangle
  children: [1.5, true, null, "7"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("got %#v, want two elements", got)
	}
	first := list[0].(reconciler.Element)
	if first.Props.Children() != 42 {
		t.Errorf("first children = %#v, want 42", first.Props.Children())
	}
	second := list[1].(reconciler.Element)
	want := []any{1.5, true, nil, "7"}
	if !reflect.DeepEqual(second.Props.Children(), want) {
		t.Errorf("second children = %#v, want %#v", second.Props.Children(), want)
	}
}

func TestParseNested(t *testing.T) {
	got, err := Parse([]byte(`
type: rectangle
children:
  - type: rectangle
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	children := got.(reconciler.Element).Props.Children().([]any)
	if _, ok := children[0].(reconciler.Element); !ok {
		t.Errorf("nested child = %T, want reconciler.Element", children[0])
	}
}

func TestParseExtraProps(t *testing.T) {
	got, err := Parse([]byte("type: rectangle\nid: main\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v := got.(reconciler.Element).Props["id"]; v != "main" {
		t.Errorf("id = %#v, want main", v)
	}
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"children: [a]",
		"type: rectangle\nstyle: [1, 2]",
		"type: [unclosed",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", doc)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse(nil)
	if err != nil || got != nil {
		t.Errorf("Parse(nil) = %#v, %v, want nil, nil", got, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(tomato), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestRenderParsedScene(t *testing.T) {
	el, err := Parse([]byte(tomato))
	if err != nil {
		t.Fatal(err)
	}
	q := easel.NewFrameQueue()
	r := easel.NewRenderer(easel.WithScheduler(q))
	rc := easel.NewRecordingCanvas(200, 200)
	s := easel.NewSurface(rc)
	if err := r.Render(el, s, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	q.Tick()
	calls := rc.Calls()
	if len(calls) != 3 || calls[2].Text != "ab" || calls[2].X != 30 || calls[2].Y != 39 {
		t.Errorf("calls = %v", calls)
	}
	if r.Root(s) == nil {
		t.Error("no root")
	}
}
