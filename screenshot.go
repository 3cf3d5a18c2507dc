package easel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the surface, taken at the end of
// the next Draw. The PNG is written to ScreenshotDir with a timestamped
// file name.
func (l *Loop) Screenshot(label string) {
	l.screenshotQueue = append(l.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label.
func (l *Loop) flushScreenshots(src *ebiten.Image) {
	if len(l.screenshotQueue) == 0 {
		return
	}
	defer func() { l.screenshotQueue = l.screenshotQueue[:0] }()

	if err := os.MkdirAll(l.ScreenshotDir, 0o755); err != nil {
		Logger().Error("easel: screenshot", "err", err)
		return
	}

	img := readNRGBA(src)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range l.screenshotQueue {
		path := filepath.Join(l.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Error("easel: screenshot", "err", err)
			continue
		}
		Logger().Debug("easel: screenshot written", "path", path)
	}
}

// readNRGBA copies src into a straight-alpha image.
func readNRGBA(src *ebiten.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = unpremultiply(pixels[i], pixels[i+1], pixels[i+2], pixels[i+3])
	}
	return img
}

func unpremultiply(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	if a > 0 && a < 255 {
		r = uint8(min(int(r)*255/int(a), 255))
		g = uint8(min(int(g)*255/int(a), 255))
		b = uint8(min(int(b)*255/int(a), 255))
	}
	return r, g, b, a
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores; an empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
