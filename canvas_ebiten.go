package easel

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ImageCanvas is a Canvas drawing into an *ebiten.Image.
//
// Rectangles are drawn by scaling a 1x1 white image, which keeps every fill
// in ebiten's sprite batch. Text uses text/v2 with faces loaded from a
// FontBook.
type ImageCanvas struct {
	img   *ebiten.Image
	fonts *FontBook
	faces map[faceKey]*text.GoTextFace
	srcs  map[string]*text.GoTextFaceSource
}

type faceKey struct {
	family string
	size   float64
}

var _ Canvas = (*ImageCanvas)(nil)

var whitePixel *ebiten.Image

func whitePixelImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// NewImageCanvas wraps img. A nil fonts uses DefaultFonts.
func NewImageCanvas(img *ebiten.Image, fonts *FontBook) *ImageCanvas {
	if fonts == nil {
		fonts = DefaultFonts
	}
	return &ImageCanvas{
		img:   img,
		fonts: fonts,
		faces: make(map[faceKey]*text.GoTextFace),
		srcs:  make(map[string]*text.GoTextFaceSource),
	}
}

// NewImageSurface creates a surface backed by a new width x height image.
func NewImageSurface(width, height int) (*Surface, *ImageCanvas) {
	c := NewImageCanvas(ebiten.NewImage(width, height), nil)
	return NewSurface(c), c
}

// Image returns the target image.
func (c *ImageCanvas) Image() *ebiten.Image { return c.img }

// Size implements Canvas.
func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// ClearRect implements Canvas.
func (c *ImageCanvas) ClearRect(r Rect) {
	bounds := c.img.Bounds()
	px := pixelRect(r).Add(bounds.Min).Intersect(bounds)
	switch {
	case px.Empty():
	case px == bounds:
		c.img.Clear()
	default:
		c.img.SubImage(px).(*ebiten.Image).Clear()
	}
}

// FillRect implements Canvas.
func (c *ImageCanvas) FillRect(r Rect, clr color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(clr)
	c.img.DrawImage(whitePixelImage(), &op)
}

// FillText implements Canvas. y is the alphabetic baseline.
func (c *ImageCanvas) FillText(s string, x, y float64, f Font, clr color.Color) {
	if s == "" {
		return
	}
	face, err := c.face(f)
	if err != nil {
		Logger().Warn("easel: cannot load font face", "font", f.String(), "err", err)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.img, s, face, op)
}

func (c *ImageCanvas) face(f Font) (*text.GoTextFace, error) {
	family, ttf := c.fonts.Resolve(f.Family)
	key := faceKey{family: family, size: f.Size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	src, ok := c.srcs[family]
	if !ok {
		var err error
		src, err = text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("easel: parse font %q: %w", family, err)
		}
		c.srcs[family] = src
	}
	face := &text.GoTextFace{Source: src, Size: f.Size}
	c.faces[key] = face
	return face, nil
}

// pixelRect returns the pixels covered by r, rounding outward.
func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}
