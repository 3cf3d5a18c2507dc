package easel

import (
	"runtime"
	"sync"
	"weak"

	"github.com/phanxgames/easel/reconciler"
)

// Surface is a render target: the identity a renderer keys its roots on,
// plus the Canvas that draws into it. Two surfaces sharing a canvas are
// still distinct render targets.
type Surface struct {
	canvas Canvas
}

// NewSurface wraps c as a render target.
func NewSurface(c Canvas) *Surface {
	if c == nil {
		panic("easel: NewSurface with nil canvas")
	}
	return &Surface{canvas: c}
}

// Canvas returns the drawing context of s.
func (s *Surface) Canvas() Canvas { return s.canvas }

// Size returns the pixel extent of s.
func (s *Surface) Size() (width, height int) { return s.canvas.Size() }

// surfaceEntry is what a renderer keeps per surface.
type surfaceEntry struct {
	root      *Root
	container *reconciler.Container
}

// surfaceCache maps surfaces to their renderer state without keeping the
// surfaces alive: once a surface is unreachable its entry is dropped by a
// cleanup, so the Root and everything it references become collectable.
//
// Cleanups run on a runtime goroutine; the map is guarded by mu.
type surfaceCache struct {
	mu      sync.Mutex
	entries map[weak.Pointer[Surface]]*surfaceEntry
}

func (c *surfaceCache) get(s *Surface) (*surfaceEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[weak.Make(s)]
	return e, ok
}

func (c *surfaceCache) put(s *Surface, e *surfaceEntry) {
	key := weak.Make(s)
	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[weak.Pointer[Surface]]*surfaceEntry)
	}
	_, existed := c.entries[key]
	c.entries[key] = e
	c.mu.Unlock()
	if !existed {
		runtime.AddCleanup(s, c.drop, key)
	}
}

func (c *surfaceCache) drop(key weak.Pointer[Surface]) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *surfaceCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
