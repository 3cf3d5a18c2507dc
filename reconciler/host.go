package reconciler

import "time"

// HostContext is opaque bookkeeping a host threads through the tree while
// instances are created. Hosts without contextual dispatch return a shared
// empty value.
type HostContext any

// Host is the contract a rendering backend satisfies so the reconciler can
// create and mutate its instances. Instances, text instances and containers
// are opaque to the reconciler.
type Host interface {
	// CreateInstance creates a host instance for a primitive element type.
	CreateInstance(typ string, props Props, ctx HostContext) (any, error)
	// CreateTextInstance creates the host representation of a text leaf.
	CreateTextInstance(text any, ctx HostContext) any
	// AppendInitialChild attaches a child while parent is still being built
	// and is not yet visible.
	AppendInitialChild(parent, child any)
	// FinalizeInitialChildren reports whether the instance needs CommitMount
	// once the commit that placed it has finished.
	FinalizeInitialChildren(instance any, typ string, props Props) bool
	// GetPublicInstance returns the value exposed to users for an instance.
	GetPublicInstance(instance any) any
	// PrepareUpdate computes the payload handed to CommitUpdate. A nil
	// payload skips the commit for that instance.
	PrepareUpdate(instance any, typ string, oldProps, newProps Props) any

	PrepareForCommit(container any)
	ResetAfterCommit(container any)

	GetRootHostContext(container any) HostContext
	GetChildHostContext(parent HostContext, typ string) HostContext

	// ShouldSetTextContent reports whether the host sets the text of typ
	// itself, in which case its children are not reconciled.
	ShouldSetTextContent(typ string, props Props) bool

	// UseSyncScheduling reports whether the host commits synchronously.
	UseSyncScheduling() bool
	// Now returns a monotonic timestamp used for commit bookkeeping.
	Now() time.Duration

	Mutation() Mutator
}

// Mutator is the mutation half of the host contract, applied during commit.
type Mutator interface {
	AppendChildToContainer(container, child any) error
	AppendChild(parent, child any) error
	RemoveChildFromContainer(container, child any) error
	RemoveChild(parent, child any) error
	InsertInContainerBefore(container, child, before any) error
	InsertBefore(parent, child, before any) error
	CommitUpdate(instance, payload any, typ string, oldProps, newProps Props) error
	CommitTextUpdate(text, oldText, newText any)
	CommitMount(instance any, typ string, props Props)
	ResetTextContent(instance any)
}
