package easel

import (
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FontBook maps font family names to TrueType data. Lookups are
// case-insensitive. It is safe for concurrent use.
type FontBook struct {
	mu       sync.RWMutex
	families map[string][]byte
	warned   map[string]bool
}

// NewFontBook returns a book holding the generic CSS families, backed by
// the Go fonts: "sans-serif" and "serif" use Go Regular, "monospace" uses
// Go Mono.
func NewFontBook() *FontBook {
	return &FontBook{
		families: map[string][]byte{
			"sans-serif": goregular.TTF,
			"serif":      goregular.TTF,
			"monospace":  gomono.TTF,
		},
		warned: make(map[string]bool),
	}
}

// Register adds or replaces a family.
func (b *FontBook) Register(family string, ttf []byte) {
	b.mu.Lock()
	b.families[normalizeFamily(family)] = ttf
	b.mu.Unlock()
}

// Lookup returns the data of family and whether it is registered.
func (b *FontBook) Lookup(family string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ttf, ok := b.families[normalizeFamily(family)]
	return ttf, ok
}

// Resolve returns the data of family, falling back to DefaultFontFamily
// with a warning (once per family) when it is not registered. The returned
// name is the family actually used.
func (b *FontBook) Resolve(family string) (string, []byte) {
	name := normalizeFamily(family)
	if ttf, ok := b.Lookup(name); ok {
		return name, ttf
	}
	b.mu.Lock()
	if !b.warned[name] {
		b.warned[name] = true
		Logger().Warn("easel: unknown font family, using default", "family", family, "default", DefaultFontFamily)
	}
	b.mu.Unlock()
	ttf, _ := b.Lookup(DefaultFontFamily)
	return DefaultFontFamily, ttf
}

// normalizeFamily takes the first entry of a CSS family list and strips
// quotes: `"Go Mono", monospace` becomes "go mono".
func normalizeFamily(family string) string {
	if i := strings.IndexByte(family, ','); i >= 0 {
		family = family[:i]
	}
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	return strings.ToLower(family)
}

// DefaultFonts is the font book used by canvases created without one.
var DefaultFonts = NewFontBook()
