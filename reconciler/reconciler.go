// Package reconciler diffs successive element trees and drives a Host with
// the resulting create/append/insert/remove/update instructions.
//
// Work is synchronous: UpdateContainer renders the new tree, creating host
// instances for new elements, then commits every mutation in one pass and
// finally invokes the callback. Siblings are matched by key when they carry
// one and by position otherwise; a match must also have the same type,
// otherwise the old subtree is removed and a new one created.
//
// Within one parent the commit order is: removals, then updates and
// placements from the last child to the first, then the parent's own
// CommitUpdate.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrAsyncHost is returned when a host does not declare synchronous
// scheduling. Time-sliced rendering is not implemented.
var ErrAsyncHost = errors.New("reconciler: host requires time-sliced scheduling")

type fiberKind uint8

const (
	kindHost fiberKind = iota
	kindText
	kindComponent
)

// fiber is the retained record of one rendered element.
type fiber struct {
	kind      fiberKind
	key       string
	typ       string
	component Component
	props     Props
	text      any
	instance  any
	childCtx  HostContext
	children  []*fiber
}

// Container is the root of a rendered tree, bound to one host container.
type Container struct {
	info     any
	ctx      HostContext
	children []*fiber
}

// Info returns the host container this Container renders into.
func (c *Container) Info() any {
	return c.info
}

// Instances returns the top-level host instances in order.
func (c *Container) Instances() []any {
	var out []any
	for _, f := range c.children {
		out = appendHostInstances(out, f)
	}
	return out
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for commit diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// Reconciler drives one Host.
type Reconciler struct {
	host   Host
	mut    Mutator
	logger *slog.Logger
}

// New creates a reconciler for host.
func New(host Host, opts ...Option) *Reconciler {
	r := &Reconciler{
		host:   host,
		mut:    host.Mutation(),
		logger: slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateContainer binds a new, empty tree to the host container info.
func (r *Reconciler) CreateContainer(info any) *Container {
	return &Container{info: info, ctx: r.host.GetRootHostContext(info)}
}

// UpdateContainer renders element into c and commits the difference to the
// previous render. callback, if non-nil, runs after the commit.
//
// If rendering fails nothing is committed and c keeps its previous tree. If
// a mutation fails the commit stops there, every top-level host instance of
// the old and the new tree is removed from the container and c is left
// empty, so the next render mounts from scratch.
func (r *Reconciler) UpdateContainer(element any, c *Container, callback func()) error {
	if !r.host.UseSyncScheduling() {
		return ErrAsyncHost
	}
	start := r.host.Now()

	w := &work{r: r}
	parent := hostParent{container: true, instance: c.info}
	children, err := w.reconcileChildren(parent, c.ctx, c.children, element, nil)
	if err != nil {
		w.rollback()
		return fmt.Errorf("reconciler: render: %w", err)
	}

	r.host.PrepareForCommit(c.info)
	err = w.commit()
	if err != nil {
		w.abandon(c, children)
	}
	r.host.ResetAfterCommit(c.info)
	if err != nil {
		return fmt.Errorf("reconciler: commit: %w", err)
	}
	c.children = children

	for _, f := range w.mounts {
		r.mut.CommitMount(f.instance, f.typ, f.props)
	}

	if r.logger.Enabled(context.Background(), slog.LevelDebug) {
		r.logger.Debug("reconciler: committed",
			"effects", len(w.effects),
			"created", w.created,
			"elapsed", r.host.Now()-start)
	}

	if callback != nil {
		callback()
	}
	return nil
}

// hostParent is the host-level target of child mutations: either the
// container or a host instance.
type hostParent struct {
	container bool
	instance  any
}

// work accumulates the effects of one UpdateContainer call. Retained
// fibers are updated in place during rendering; undo restores them if the
// render is thrown away.
type work struct {
	r       *Reconciler
	effects []func() error
	undo    []func()
	mounts  []*fiber
	created int
}

// save records the current state of a retained fiber before it is updated.
func (w *work) save(f *fiber) {
	text, props, children := f.text, f.props, f.children
	w.undo = append(w.undo, func() {
		f.text, f.props, f.children = text, props, children
	})
}

// rollback restores every retained fiber to its state before the render.
func (w *work) rollback() {
	for i := len(w.undo) - 1; i >= 0; i-- {
		w.undo[i]()
	}
	w.undo = nil
}

// abandon handles a commit that failed part way: the host holds an unknown
// mix of the old and new tree, so every top-level instance of either is
// removed from the container and c forgets its tree.
func (w *work) abandon(c *Container, next []*fiber) {
	var insts []any
	for _, f := range next {
		insts = appendHostInstances(insts, f)
	}
	w.rollback()
	insts = append(insts, c.Instances()...)

	seen := make(map[any]bool, len(insts))
	for _, h := range insts {
		if seen[h] {
			continue
		}
		seen[h] = true
		if err := w.r.mut.RemoveChildFromContainer(c.info, h); err != nil {
			w.r.logger.Warn("reconciler: remove after failed commit", "err", err)
		}
	}
	c.children = nil
}

func (w *work) commit() error {
	for _, fn := range w.effects {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func (w *work) effect(fn func() error) {
	w.effects = append(w.effects, fn)
}

// reconcileChildren matches the new children against old, records the
// mutations that turn one into the other and returns the new fiber list.
// after is the host instance that must follow the children's host
// instances in parent, or nil when they end the list.
func (w *work) reconcileChildren(parent hostParent, ctx HostContext, old []*fiber, children any, after any) ([]*fiber, error) {
	elems := Flatten(children)

	oldByKey := make(map[string]*fiber, len(old))
	oldIndex := make(map[*fiber]int, len(old))
	for i, f := range old {
		if _, dup := oldByKey[f.key]; !dup {
			oldByKey[f.key] = f
		}
		oldIndex[f] = i
	}

	next := make([]*fiber, len(elems))
	reused := make([]bool, len(elems))
	matched := make(map[*fiber]bool, len(old))
	for i, el := range elems {
		key := keyOf(el, i)
		if f, ok := oldByKey[key]; ok && !matched[f] && sameType(f, el) {
			matched[f] = true
			next[i] = f
			reused[i] = true
			continue
		}
		f, err := w.mount(el, key, ctx)
		if err != nil {
			return nil, err
		}
		next[i] = f
	}

	for _, f := range old {
		if !matched[f] {
			w.remove(parent, f)
		}
	}

	place := make([]bool, len(next))
	lastPlaced := 0
	for i, f := range next {
		if !reused[i] {
			place[i] = true
			continue
		}
		if oi := oldIndex[f]; oi < lastPlaced {
			place[i] = true
		} else {
			lastPlaced = oi
		}
	}

	before := after
	for i := len(next) - 1; i >= 0; i-- {
		f := next[i]
		if reused[i] {
			if err := w.update(f, elems[i], parent, ctx, before); err != nil {
				return nil, err
			}
		}
		if place[i] {
			w.place(parent, f, before)
		}
		if first := firstHostInstance(f); first != nil {
			before = first
		}
	}
	return next, nil
}

// mount creates the fiber subtree and host instances for a new child.
func (w *work) mount(el any, key string, ctx HostContext) (*fiber, error) {
	host := w.r.host
	if IsText(el) {
		w.created++
		return &fiber{
			kind:     kindText,
			key:      key,
			text:     el,
			instance: host.CreateTextInstance(el, ctx),
		}, nil
	}

	e, ok := el.(Element)
	if !ok {
		return nil, fmt.Errorf("invalid child of type %T", el)
	}

	if comp, ok := componentOf(e.Type); ok {
		f := &fiber{kind: kindComponent, key: key, component: comp, props: e.Props}
		for i, c := range Flatten(comp(e.Props)) {
			cf, err := w.mount(c, keyOf(c, i), ctx)
			if err != nil {
				return nil, err
			}
			f.children = append(f.children, cf)
		}
		return f, nil
	}

	typ, ok := e.Type.(string)
	if !ok {
		return nil, fmt.Errorf("invalid element type %T", e.Type)
	}
	inst, err := host.CreateInstance(typ, e.Props, ctx)
	if err != nil {
		return nil, err
	}
	w.created++
	f := &fiber{
		kind:     kindHost,
		key:      key,
		typ:      typ,
		props:    e.Props,
		instance: inst,
		childCtx: host.GetChildHostContext(ctx, typ),
	}
	if !host.ShouldSetTextContent(typ, e.Props) {
		for i, c := range Flatten(e.Props.Children()) {
			cf, err := w.mount(c, keyOf(c, i), f.childCtx)
			if err != nil {
				return nil, err
			}
			for _, h := range appendHostInstances(nil, cf) {
				host.AppendInitialChild(inst, h)
			}
			f.children = append(f.children, cf)
		}
	}
	if host.FinalizeInitialChildren(inst, typ, e.Props) {
		w.mounts = append(w.mounts, f)
	}
	return f, nil
}

// update reconciles a retained fiber with its new element.
func (w *work) update(f *fiber, el any, parent hostParent, ctx HostContext, after any) error {
	switch f.kind {
	case kindText:
		if f.text != el {
			oldText := f.text
			w.save(f)
			f.text = el
			inst := f.instance
			w.effect(func() error {
				w.r.mut.CommitTextUpdate(inst, oldText, el)
				return nil
			})
		}
		return nil

	case kindComponent:
		e := el.(Element)
		w.save(f)
		children, err := w.reconcileChildren(parent, ctx, f.children, f.component(e.Props), after)
		if err != nil {
			return err
		}
		f.children = children
		f.props = e.Props
		return nil
	}

	e := el.(Element)
	host := w.r.host
	oldProps, newProps := f.props, e.Props
	w.save(f)
	if !host.ShouldSetTextContent(f.typ, newProps) {
		self := hostParent{instance: f.instance}
		children, err := w.reconcileChildren(self, f.childCtx, f.children, newProps.Children(), nil)
		if err != nil {
			return err
		}
		f.children = children
	} else if len(f.children) > 0 {
		for _, c := range f.children {
			w.remove(hostParent{instance: f.instance}, c)
		}
		f.children = nil
		inst := f.instance
		w.effect(func() error {
			w.r.mut.ResetTextContent(inst)
			return nil
		})
	}
	if payload := host.PrepareUpdate(f.instance, f.typ, oldProps, newProps); payload != nil {
		inst, typ := f.instance, f.typ
		w.effect(func() error {
			return w.r.mut.CommitUpdate(inst, payload, typ, oldProps, newProps)
		})
	}
	f.props = newProps
	return nil
}

// place records the insertion of every host instance of f before the
// host instance before, or at the end when before is nil.
func (w *work) place(parent hostParent, f *fiber, before any) {
	mut := w.r.mut
	for _, h := range appendHostInstances(nil, f) {
		w.effect(func() error {
			switch {
			case before == nil && parent.container:
				return mut.AppendChildToContainer(parent.instance, h)
			case before == nil:
				return mut.AppendChild(parent.instance, h)
			case parent.container:
				return mut.InsertInContainerBefore(parent.instance, h, before)
			default:
				return mut.InsertBefore(parent.instance, h, before)
			}
		})
	}
}

// remove records the removal of every host instance of f from parent.
func (w *work) remove(parent hostParent, f *fiber) {
	mut := w.r.mut
	for _, h := range appendHostInstances(nil, f) {
		w.effect(func() error {
			if parent.container {
				return mut.RemoveChildFromContainer(parent.instance, h)
			}
			return mut.RemoveChild(parent.instance, h)
		})
	}
}

// sameType reports whether el can update f in place.
func sameType(f *fiber, el any) bool {
	switch f.kind {
	case kindText:
		return IsText(el)
	case kindHost:
		e, ok := el.(Element)
		if !ok {
			return false
		}
		typ, ok := e.Type.(string)
		return ok && typ == f.typ
	default:
		e, ok := el.(Element)
		if !ok {
			return false
		}
		comp, ok := componentOf(e.Type)
		return ok && sameComponent(comp, f.component)
	}
}

// appendHostInstances appends the outermost host instances of f in order.
func appendHostInstances(dst []any, f *fiber) []any {
	if f.kind != kindComponent {
		return append(dst, f.instance)
	}
	for _, c := range f.children {
		dst = appendHostInstances(dst, c)
	}
	return dst
}

func firstHostInstance(f *fiber) any {
	if f.kind != kindComponent {
		return f.instance
	}
	for _, c := range f.children {
		if h := firstHostInstance(c); h != nil {
			return h
		}
	}
	return nil
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
