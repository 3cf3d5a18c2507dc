// Command easel-view shows a scene document in a window and reloads it
// when the file changes.
//
//	easel-view -scene scene.yaml
//
// Defaults come from easel.yaml in -dir when present. Press S to save a
// screenshot.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/easel"
	"github.com/phanxgames/easel/internal/config"
	"github.com/phanxgames/easel/internal/scenefile"
	"github.com/phanxgames/easel/internal/watch"
)

func main() {
	var (
		dir     = flag.String("dir", ".", "project directory holding easel.yaml")
		scene   = flag.String("scene", "", "scene document (default from easel.yaml)")
		script  = flag.String("script", "", "test script to run (screenshots, hooks)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	easel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Resolve(*dir)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *scene != "" {
		cfg.SceneFile = *scene
	}
	if err := cfg.RegisterFonts(easel.DefaultFonts); err != nil {
		log.Fatalf("fonts: %v", err)
	}

	loop := easel.NewLoop(cfg.Width, cfg.Height)
	renderer := easel.NewRenderer(easel.WithScheduler(loop.Frames()))

	load := func() {
		el, err := scenefile.Load(cfg.SceneFile)
		if err != nil {
			easel.Logger().Error("load failed", "err", err)
			return
		}
		if err := renderer.Render(el, loop.Surface(), nil); err != nil {
			easel.Logger().Error("render failed", "err", err)
		}
	}
	load()
	loop.Handle("reload", load)

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatal(err)
		}
		runner, err := easel.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		loop.SetTestRunner(runner)
	}

	w, err := watch.NewFile(cfg.SceneFile)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	loop.SetUpdateFunc(func(float64) error {
		select {
		case <-w.Changes():
			load()
		default:
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			loop.Screenshot("easel-view")
		}
		return nil
	})

	if err := easel.Run(loop, easel.RunConfig{
		Title:   cfg.Title,
		Width:   cfg.Width,
		Height:  cfg.Height,
		ShowFPS: cfg.ShowFPS,
	}); err != nil {
		log.Fatal(err)
	}
}
