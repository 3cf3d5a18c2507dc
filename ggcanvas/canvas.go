// Package ggcanvas provides a headless easel canvas backed by the gg
// software rasterizer.
//
//	c := ggcanvas.New(320, 240)
//	s := easel.NewSurface(c)
//	easel.Render(scene, s, nil)
//	easel.DefaultFrames.Tick()
//	c.SavePNG("out.png")
package ggcanvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/phanxgames/easel"
)

// Canvas implements easel.Canvas over a *gg.Context.
type Canvas struct {
	dc    *gg.Context
	fonts *easel.FontBook
	srcs  map[string]*text.FontSource
	faces map[faceKey]text.Face
}

type faceKey struct {
	family string
	size   float64
}

var _ easel.Canvas = (*Canvas)(nil)

// New creates a transparent width x height canvas using easel.DefaultFonts.
func New(width, height int) *Canvas {
	return NewWithFonts(width, height, nil)
}

// NewWithFonts creates a canvas drawing text with fonts. A nil fonts uses
// easel.DefaultFonts.
func NewWithFonts(width, height int, fonts *easel.FontBook) *Canvas {
	if fonts == nil {
		fonts = easel.DefaultFonts
	}
	return &Canvas{
		dc:    gg.NewContext(width, height),
		fonts: fonts,
		srcs:  make(map[string]*text.FontSource),
		faces: make(map[faceKey]text.Face),
	}
}

// Context returns the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Size implements easel.Canvas.
func (c *Canvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

// ClearRect implements easel.Canvas.
func (c *Canvas) ClearRect(r easel.Rect) {
	w, h := c.Size()
	px := pixelRect(r).Intersect(image.Rect(0, 0, w, h))
	if px.Empty() {
		return
	}
	if px == image.Rect(0, 0, w, h) {
		c.dc.Clear()
		return
	}
	for y := px.Min.Y; y < px.Max.Y; y++ {
		for x := px.Min.X; x < px.Max.X; x++ {
			c.dc.SetPixel(x, y, gg.Transparent)
		}
	}
}

// FillRect implements easel.Canvas.
func (c *Canvas) FillRect(r easel.Rect, clr color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	c.dc.SetColor(clr)
	c.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	if err := c.dc.Fill(); err != nil {
		easel.Logger().Warn("ggcanvas: fill failed", "rect", r, "err", err)
	}
}

// FillText implements easel.Canvas. y is the alphabetic baseline.
func (c *Canvas) FillText(s string, x, y float64, f easel.Font, clr color.Color) {
	if s == "" {
		return
	}
	face, err := c.face(f)
	if err != nil {
		easel.Logger().Warn("ggcanvas: cannot load font face", "font", f.String(), "err", err)
		return
	}
	c.dc.SetFont(face)
	c.dc.SetColor(clr)
	c.dc.DrawString(s, x, y)
}

func (c *Canvas) face(f easel.Font) (text.Face, error) {
	family, ttf := c.fonts.Resolve(f.Family)
	key := faceKey{family: family, size: f.Size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	src, ok := c.srcs[family]
	if !ok {
		var err error
		src, err = text.NewFontSource(ttf)
		if err != nil {
			return nil, fmt.Errorf("ggcanvas: parse font %q: %w", family, err)
		}
		c.srcs[family] = src
	}
	face := src.Face(f.Size)
	c.faces[key] = face
	return face, nil
}

// Image returns a snapshot of the pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the pixels to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// SavePNG writes the pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

// Close releases the context.
func (c *Canvas) Close() error { return c.dc.Close() }

func pixelRect(r easel.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}
