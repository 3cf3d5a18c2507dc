package easel

import (
	"slices"
	"sync"
)

// Factory creates a detached drawable from the props of an element.
type Factory func(props Props) Drawable

// Registry maps primitive type names to factories. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in primitives.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[string]Factory)}
	reg.Register(RectangleType, func(props Props) Drawable { return NewRectangle(props) })
	return reg
}

// Register binds typ to f, replacing any previous factory.
func (reg *Registry) Register(typ string, f Factory) {
	if f == nil {
		panic("easel: Register with nil factory for " + typ)
	}
	reg.mu.Lock()
	reg.factories[typ] = f
	reg.mu.Unlock()
}

// Create instantiates typ with props. An unknown type yields a
// *ComponentTypeError naming it.
func (reg *Registry) Create(typ string, props Props) (Drawable, error) {
	reg.mu.RLock()
	f, ok := reg.factories[typ]
	reg.mu.RUnlock()
	if !ok {
		return nil, &ComponentTypeError{Type: typ}
	}
	return f(props), nil
}

// Types returns the registered type names, sorted.
func (reg *Registry) Types() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	types := make([]string, 0, len(reg.factories))
	for typ := range reg.factories {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

// DefaultRegistry is used by renderers created without [WithRegistry].
var DefaultRegistry = NewRegistry()

// RegisterPrimitive binds typ to f in DefaultRegistry.
func RegisterPrimitive(typ string, f Factory) {
	DefaultRegistry.Register(typ, f)
}
