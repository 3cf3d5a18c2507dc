package easel

import (
	"fmt"
	"time"

	"github.com/phanxgames/easel/reconciler"
)

// hostAdapter binds the reconciler to roots and drawables. Containers are
// *Root values; instances are Drawables; text instances are the leaf
// values themselves.
type hostAdapter struct {
	registry *Registry
	start    time.Time
}

var (
	_ reconciler.Host    = (*hostAdapter)(nil)
	_ reconciler.Mutator = (*hostAdapter)(nil)
)

// emptyContext is shared by every instance; drawables have no contextual
// dispatch.
var emptyContext reconciler.HostContext = struct{}{}

// replaceProps is the update payload for every instance: the new props
// always replace the old ones and the drawable skips shallow-equal props.
var replaceProps = new(struct{})

func (h *hostAdapter) CreateInstance(typ string, props Props, _ reconciler.HostContext) (any, error) {
	return h.registry.Create(typ, props)
}

func (h *hostAdapter) CreateTextInstance(text any, _ reconciler.HostContext) any {
	return text
}

func (h *hostAdapter) AppendInitialChild(parent, child any) {
	drawable(parent).AppendInitialChild(child)
}

func (h *hostAdapter) FinalizeInitialChildren(any, string, Props) bool { return false }

func (h *hostAdapter) GetPublicInstance(instance any) any { return instance }

func (h *hostAdapter) PrepareUpdate(any, string, Props, Props) any { return replaceProps }

func (h *hostAdapter) PrepareForCommit(any) {}
func (h *hostAdapter) ResetAfterCommit(any) {}

func (h *hostAdapter) GetRootHostContext(any) reconciler.HostContext { return emptyContext }

func (h *hostAdapter) GetChildHostContext(reconciler.HostContext, string) reconciler.HostContext {
	return emptyContext
}

func (h *hostAdapter) ShouldSetTextContent(string, Props) bool { return false }

func (h *hostAdapter) UseSyncScheduling() bool { return true }

func (h *hostAdapter) Now() time.Duration { return time.Since(h.start) }

func (h *hostAdapter) Mutation() reconciler.Mutator { return h }

// --- mutation ---

func (h *hostAdapter) AppendChildToContainer(container, child any) error {
	d, ok := child.(Drawable)
	if !ok {
		return &ChildContentError{Type: "container", Child: child}
	}
	root(container).AppendChild(d)
	return nil
}

func (h *hostAdapter) AppendChild(parent, child any) error {
	drawable(parent).AppendChild(child)
	return nil
}

func (h *hostAdapter) RemoveChildFromContainer(container, child any) error {
	if d, ok := child.(Drawable); ok {
		root(container).RemoveChild(d)
	}
	return nil
}

func (h *hostAdapter) RemoveChild(parent, child any) error {
	drawable(parent).RemoveChild(child)
	return nil
}

func (h *hostAdapter) InsertInContainerBefore(container, child, before any) error {
	d, ok := child.(Drawable)
	if !ok {
		return &ChildContentError{Type: "container", Child: child}
	}
	ref, ok := before.(Drawable)
	if !ok {
		return &ReferenceError{Op: "root insertBefore", Reference: before}
	}
	return root(container).InsertBefore(d, ref)
}

func (h *hostAdapter) InsertBefore(parent, child, before any) error {
	return drawable(parent).InsertBefore(child, before)
}

func (h *hostAdapter) CommitUpdate(instance, _ any, _ string, _, newProps Props) error {
	drawable(instance).ReplaceProps(newProps)
	return nil
}

// Text leaves are values; the parent's CommitUpdate rebuilds its text.
func (h *hostAdapter) CommitTextUpdate(any, any, any) {}

func (h *hostAdapter) CommitMount(any, string, Props) {}

func (h *hostAdapter) ResetTextContent(any) {}

func drawable(v any) Drawable {
	d, ok := v.(Drawable)
	if !ok {
		panic(fmt.Sprintf("easel: host instance %T is not a Drawable", v))
	}
	return d
}

func root(v any) *Root {
	r, ok := v.(*Root)
	if !ok {
		panic(fmt.Sprintf("easel: container %T is not a *Root", v))
	}
	return r
}
