// Package config loads the optional easel.yaml read by the easel tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/easel"
)

// FileName is the name of the configuration file.
const FileName = "easel.yaml"

// Config represents the optional easel.yaml configuration.
type Config struct {
	Window WindowConfig      `yaml:"window"`
	Scene  SceneConfig       `yaml:"scene"`
	Fonts  map[string]string `yaml:"fonts,omitempty"`
}

// WindowConfig holds the window and surface settings.
type WindowConfig struct {
	Title   string `yaml:"title,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Height  int    `yaml:"height,omitempty"`
	ShowFPS bool   `yaml:"showFPS,omitempty"`
}

// SceneConfig names the scene document and the snapshot output.
type SceneConfig struct {
	File   string `yaml:"file,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// Resolved contains configuration values with defaults applied and paths
// made absolute.
type Resolved struct {
	Root      string
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	SceneFile string
	Output    string
	Fonts     map[string]string // family -> font file
}

// Defaults applied by Resolve.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultScene  = "scene.yaml"
	DefaultOutput = "scene.png"
)

// LoadOptional reads easel.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads easel.yaml (if present) from dir and resolves defaults.
// The default window title is the name of the Go module in dir, or the
// directory name.
func Resolve(dir string) (*Resolved, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadOptional(abs)
	if err != nil {
		return nil, err
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", width, height)
	}
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}

	title := strings.TrimSpace(cfg.Window.Title)
	if title == "" {
		title = defaultTitle(abs)
	}

	fonts := make(map[string]string, len(cfg.Fonts))
	for family, file := range cfg.Fonts {
		fonts[family] = resolvePath(abs, file)
	}

	return &Resolved{
		Root:      abs,
		Title:     title,
		Width:     width,
		Height:    height,
		ShowFPS:   cfg.Window.ShowFPS,
		SceneFile: resolvePath(abs, orDefault(cfg.Scene.File, DefaultScene)),
		Output:    resolvePath(abs, orDefault(cfg.Scene.Output, DefaultOutput)),
		Fonts:     fonts,
	}, nil
}

// RegisterFonts reads the configured font files into book.
func (r *Resolved) RegisterFonts(book *easel.FontBook) error {
	for family, path := range r.Fonts {
		ttf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("font %q: %w", family, err)
		}
		book.Register(family, ttf)
	}
	return nil
}

func defaultTitle(dir string) string {
	if data, err := os.ReadFile(filepath.Join(dir, "go.mod")); err == nil {
		if path := modfile.ModulePath(data); path != "" {
			prefix, _, ok := module.SplitPathVersion(path)
			if ok {
				parts := strings.Split(prefix, "/")
				return parts[len(parts)-1]
			}
		}
	}
	if base := filepath.Base(dir); base != "" && base != string(filepath.Separator) {
		return base
	}
	return "easel"
}

func resolvePath(root, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
