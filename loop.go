package easel

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds the window settings for [Run].
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Loop drives a surface from ebiten's game loop: each update ticks the
// frame queue, so pending repaints land on the surface image, and each draw
// copies that image to the screen.
//
// Create a renderer with WithScheduler(loop.Frames()) to render into
// loop.Surface().
type Loop struct {
	surface *Surface
	canvas  *ImageCanvas
	frames  *FrameQueue

	onUpdate func(dt float64) error
	showFPS  bool

	ScreenshotDir   string
	screenshotQueue []string
	runner          *TestRunner
	hooks           map[string]func()
}

var _ ebiten.Game = (*Loop)(nil)

// NewLoop creates a loop around a new width x height image surface.
func NewLoop(width, height int) *Loop {
	s, c := NewImageSurface(width, height)
	return &Loop{
		surface:       s,
		canvas:        c,
		frames:        NewFrameQueue(),
		ScreenshotDir: "screenshots",
	}
}

// Surface returns the surface the loop displays.
func (l *Loop) Surface() *Surface { return l.surface }

// Frames returns the frame queue ticked by the loop.
func (l *Loop) Frames() *FrameQueue { return l.frames }

// SetUpdateFunc sets a function called at the start of every update with
// the tick duration in seconds, before pending repaints run.
func (l *Loop) SetUpdateFunc(fn func(dt float64) error) {
	l.onUpdate = fn
}

// Update implements ebiten.Game.
func (l *Loop) Update() error {
	if l.runner != nil {
		l.runner.step(l)
	}
	if l.onUpdate != nil {
		if err := l.onUpdate(1 / float64(ebiten.TPS())); err != nil {
			return err
		}
	}
	l.frames.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (l *Loop) Draw(screen *ebiten.Image) {
	screen.DrawImage(l.canvas.Image(), nil)
	l.flushScreenshots(l.canvas.Image())
	if l.showFPS {
		drawFPS(screen)
	}
}

// Layout implements ebiten.Game. The screen always matches the surface.
func (l *Loop) Layout(int, int) (int, int) {
	return l.surface.Size()
}

// Run opens a window and runs l until the window is closed or an update
// fails. A zero Width or Height uses the surface size.
func Run(l *Loop, cfg RunConfig) error {
	w, h := l.surface.Size()
	if cfg.Width > 0 && cfg.Height > 0 {
		w, h = cfg.Width, cfg.Height
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	l.showFPS = cfg.ShowFPS
	return ebiten.RunGame(l)
}
