package easel

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestStyleTweenReachesTarget(t *testing.T) {
	from := Style{Left: 10, Top: 20, BackgroundColor: "red"}
	to := Style{Left: 100, Top: 200, BackgroundColor: "tomato"}

	g := TweenStyle(from, to, 1.0, ease.Linear)
	if g.Style().BackgroundColor != "tomato" {
		t.Errorf("color = %q, want tomato immediately", g.Style().BackgroundColor)
	}
	if g.Style().Left != 10 {
		t.Errorf("Left = %g before update, want 10", g.Style().Left)
	}

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(g.Style().Left-100) > 0.5 {
		t.Errorf("Left = %f, want ~100", g.Style().Left)
	}
	if math.Abs(g.Style().Top-200) > 0.5 {
		t.Errorf("Top = %f, want ~200", g.Style().Top)
	}
}

func TestStyleTweenMidpoint(t *testing.T) {
	g := TweenStyle(Style{Width: 0}, Style{Width: 100}, 1.0, ease.Linear)
	g.Update(0.5)
	if g.Done {
		t.Fatal("Done at the midpoint")
	}
	if math.Abs(g.Style().Width-50) > 0.5 {
		t.Errorf("Width = %f, want ~50", g.Style().Width)
	}
}

func TestStyleTweenOnChange(t *testing.T) {
	g := TweenStyle(Style{Left: 0}, Style{Left: 10}, 0.5, ease.Linear)
	var got []float64
	g.OnChange = func(s Style) { got = append(got, s.Left) }

	g.Update(0.25)
	g.Update(0.25)
	g.Update(0.25) // done, no further calls

	if len(got) != 2 {
		t.Fatalf("OnChange calls = %d, want 2", len(got))
	}
	if math.Abs(got[1]-10) > 0.5 {
		t.Errorf("last Left = %f, want ~10", got[1])
	}
}

func TestStyleTweenNothingToAnimate(t *testing.T) {
	g := TweenStyle(Style{Left: 5}, Style{Left: 5}, 1.0, ease.Linear)
	if !g.Done {
		t.Error("tween with equal endpoints is not Done")
	}
}

func TestStyleTweenRetarget(t *testing.T) {
	g := TweenStyle(Style{Left: 0}, Style{Left: 100}, 1.0, ease.Linear)
	g.Update(0.5)
	mid := g.Style().Left

	g.Retarget(Style{Left: 0}, 1.0, ease.Linear)
	if g.Done {
		t.Fatal("Done right after Retarget")
	}
	if g.Style().Left != mid {
		t.Errorf("Left = %f after Retarget, want %f", g.Style().Left, mid)
	}
	g.Update(1.0)
	if math.Abs(g.Style().Left) > 0.5 {
		t.Errorf("Left = %f, want ~0", g.Style().Left)
	}
}
