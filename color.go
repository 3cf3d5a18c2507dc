package easel

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// a named color such as "tomato", or "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, fmt.Errorf("easel: empty color")
	case s == "transparent":
		return color.NRGBA{}, nil
	case s[0] == '#':
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return color.NRGBA{}, fmt.Errorf("easel: invalid hex color %q", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 64); err != nil {
			return color.NRGBA{}, fmt.Errorf("easel: invalid hex color %q", s)
		}
		c := gg.Hex(hex)
		return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("easel: unknown color %q", s)
}

// unit8 maps a [0, 1] component to [0, 255].
func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// colorCache memoizes parsed style colors. Unparsable strings map to ok=false.
type colorCache struct {
	mu      sync.Mutex
	entries map[string]colorEntry
}

type colorEntry struct {
	c  color.NRGBA
	ok bool
}

// resolve returns the parsed color for s, or fallback (logging once per
// string) when s cannot be parsed.
func (cc *colorCache) resolve(s, fallback string) color.NRGBA {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.resolveLocked(s, fallback)
}

func (cc *colorCache) resolveLocked(s, fallback string) color.NRGBA {
	if cc.entries == nil {
		cc.entries = make(map[string]colorEntry)
	}
	e, hit := cc.entries[s]
	if !hit {
		c, err := ParseColor(s)
		if err != nil {
			Logger().Warn("easel: unparsable color, using default", "color", s, "default", fallback, "err", err)
		}
		e = colorEntry{c: c, ok: err == nil}
		cc.entries[s] = e
	}
	if e.ok {
		return e.c
	}
	if s == fallback {
		return color.NRGBA{}
	}
	return cc.resolveLocked(fallback, fallback)
}

// paintColors is shared by all drawables.
var paintColors colorCache
