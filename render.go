package easel

import (
	"log/slog"
	"sync"
	"time"

	"github.com/phanxgames/easel/reconciler"
)

// Renderer renders element trees into surfaces. It keeps one Root per
// surface for as long as the surface is reachable; rendering into the same
// surface again reconciles against the previous render.
//
// Render and the frame scheduler must be driven from the same goroutine.
type Renderer struct {
	frames   FrameScheduler
	registry *Registry
	logger   *slog.Logger
	onError  func(*Root, error)

	rec   *reconciler.Reconciler
	cache surfaceCache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScheduler sets the frame scheduler of every root the renderer
// creates. The default is DefaultFrames.
func WithScheduler(s FrameScheduler) Option {
	return func(r *Renderer) { r.frames = s }
}

// WithRegistry sets the primitive registry. The default is DefaultRegistry.
func WithRegistry(reg *Registry) Option {
	return func(r *Renderer) { r.registry = reg }
}

// WithLogger sets the logger of the renderer and its roots. The default,
// also used when l is nil, follows the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l == nil {
			l = packageLogger
		}
		r.logger = l
	}
}

// WithErrorHandler sets a function called when a scheduled repaint fails.
// The error is logged either way.
func WithErrorHandler(fn func(*Root, error)) Option {
	return func(r *Renderer) { r.onError = fn }
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		frames:   DefaultFrames,
		registry: DefaultRegistry,
		logger:   packageLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	host := &hostAdapter{registry: r.registry, start: time.Now()}
	r.rec = reconciler.New(host, reconciler.WithLogger(r.logger))
	return r
}

// Render reconciles element into s. The first render of a surface creates
// its Root; later renders update it in place. callback, if non-nil, runs
// once the changes are committed; the surface is repainted on the next
// frame.
//
// A render whose elements cannot be built leaves the surface as it was. A
// render that fails while applying its changes leaves the surface empty;
// the next successful render rebuilds it.
func (r *Renderer) Render(element any, s *Surface, callback func()) error {
	e, ok := r.cache.get(s)
	if !ok {
		root := NewRoot(s, r.frames)
		root.logger = r.logger
		root.onError = r.onError
		e = &surfaceEntry{root: root, container: r.rec.CreateContainer(root)}
		r.cache.put(s, e)
	}
	return r.rec.UpdateContainer(element, e.container, callback)
}

// Root returns the root of s, or nil if nothing was rendered into it.
func (r *Renderer) Root(s *Surface) *Root {
	if e, ok := r.cache.get(s); ok {
		return e.root
	}
	return nil
}

// PublicInstances returns the user-facing values of the top-level
// instances of s, in order.
func (r *Renderer) PublicInstances(s *Surface) []any {
	e, ok := r.cache.get(s)
	if !ok {
		return nil
	}
	return e.container.Instances()
}

var defaultRenderer = sync.OnceValue(func() *Renderer { return NewRenderer() })

// Render renders element into s with the default renderer.
func Render(element any, s *Surface, callback func()) error {
	return defaultRenderer().Render(element, s, callback)
}
