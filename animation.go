package easel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// StyleTween animates the numeric fields of a Style: Left, Top, Width,
// Height, Padding and FontSize. Fields whose start and end values are equal
// are not animated; colors and font families jump to the target at the
// start.
//
// Call Update(dt) each frame. Each update that changes the style calls the
// OnChange function with the new value; re-render with it to repaint.
type StyleTween struct {
	tweens []*gween.Tween
	fields []*float64
	style  Style

	// OnChange, if set, receives the style after every update.
	OnChange func(Style)
	Done     bool
}

// TweenStyle creates a tween from from to to over duration seconds.
func TweenStyle(from, to Style, duration float32, fn ease.TweenFunc) *StyleTween {
	g := &StyleTween{style: from}
	g.retarget(to, duration, fn)
	return g
}

// Retarget restarts the tween from the current style toward to.
func (g *StyleTween) Retarget(to Style, duration float32, fn ease.TweenFunc) {
	g.retarget(to, duration, fn)
}

func (g *StyleTween) retarget(to Style, duration float32, fn ease.TweenFunc) {
	g.tweens = g.tweens[:0]
	g.fields = g.fields[:0]

	from := g.style
	g.style = to
	pairs := [...]struct {
		from float64
		to   *float64
	}{
		{from.Left, &g.style.Left},
		{from.Top, &g.style.Top},
		{from.Width, &g.style.Width},
		{from.Height, &g.style.Height},
		{from.Padding, &g.style.Padding},
		{from.FontSize, &g.style.FontSize},
	}
	for _, p := range pairs {
		if p.from == *p.to {
			continue
		}
		g.tweens = append(g.tweens, gween.New(float32(p.from), float32(*p.to), duration, fn))
		g.fields = append(g.fields, p.to)
		*p.to = p.from
	}
	g.Done = len(g.tweens) == 0
}

// Style returns the current value.
func (g *StyleTween) Style() Style {
	return g.style
}

// Update advances the tween by dt seconds.
func (g *StyleTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.OnChange != nil {
		g.OnChange(g.style)
	}
}
