// Command easel-snap renders a scene document to a PNG file without a
// window.
//
//	easel-snap -scene scene.yaml -output scene.png
//	easel-snap -watch    # re-render whenever the scene changes
//
// Defaults come from easel.yaml in -dir when present.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/phanxgames/easel"
	"github.com/phanxgames/easel/ggcanvas"
	"github.com/phanxgames/easel/internal/config"
	"github.com/phanxgames/easel/internal/scenefile"
	"github.com/phanxgames/easel/internal/watch"
)

func main() {
	var (
		dir     = flag.String("dir", ".", "project directory holding easel.yaml")
		scene   = flag.String("scene", "", "scene document (default from easel.yaml)")
		output  = flag.String("output", "", "output PNG (default from easel.yaml)")
		width   = flag.Int("width", 0, "image width (default from easel.yaml)")
		height  = flag.Int("height", 0, "image height (default from easel.yaml)")
		watchIt = flag.Bool("watch", false, "re-render when the scene document changes")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	easel.SetLogger(logger)

	cfg, err := config.Resolve(*dir)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *scene != "" {
		cfg.SceneFile = *scene
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if err := cfg.RegisterFonts(easel.DefaultFonts); err != nil {
		log.Fatalf("fonts: %v", err)
	}

	s := newSnapshotter(cfg)
	if err := s.snap(); err != nil {
		log.Fatal(err)
	}
	if !*watchIt {
		return
	}

	w, err := watch.NewFile(cfg.SceneFile)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	logger.Info("watching", "scene", cfg.SceneFile)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	for {
		select {
		case <-w.Changes():
			if err := s.snap(); err != nil {
				logger.Error("render failed", "err", err)
			}
		case <-interrupt:
			return
		}
	}
}

// snapshotter renders every version of the scene into the same surface, so
// successive snapshots reconcile against each other.
type snapshotter struct {
	cfg      *config.Resolved
	frames   *easel.FrameQueue
	renderer *easel.Renderer
	canvas   *ggcanvas.Canvas
	surface  *easel.Surface
}

func newSnapshotter(cfg *config.Resolved) *snapshotter {
	frames := easel.NewFrameQueue()
	canvas := ggcanvas.New(cfg.Width, cfg.Height)
	return &snapshotter{
		cfg:      cfg,
		frames:   frames,
		renderer: easel.NewRenderer(easel.WithScheduler(frames)),
		canvas:   canvas,
		surface:  easel.NewSurface(canvas),
	}
}

func (s *snapshotter) snap() error {
	el, err := scenefile.Load(s.cfg.SceneFile)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(el, s.surface, nil); err != nil {
		return err
	}
	s.frames.Tick()
	if err := s.renderer.Root(s.surface).Err(); err != nil {
		return err
	}
	if err := s.canvas.SavePNG(s.cfg.Output); err != nil {
		return err
	}
	easel.Logger().Info("snapshot written", "output", s.cfg.Output, "stats", s.renderer.Root(s.surface).Stats())
	return nil
}
