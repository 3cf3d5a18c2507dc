package easel

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an integration error. None of them
// are expected at runtime; each means the instructions reaching easel were
// invalid.
type ErrorKind int

const (
	// KindInvalidComponentType: an unrecognized primitive type was requested.
	KindInvalidComponentType ErrorKind = iota + 1
	// KindUnsupportedChildContent: a drawable holds a child that is not a
	// text leaf at paint time.
	KindUnsupportedChildContent
	// KindReferenceNotFound: an insert-before reference is not in the list.
	KindReferenceNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidComponentType:
		return "invalid component type"
	case KindUnsupportedChildContent:
		return "unsupported child content"
	case KindReferenceNotFound:
		return "reference not found"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by errors.Is against the typed errors below.
var (
	ErrInvalidComponentType    = errors.New("easel: invalid component type")
	ErrUnsupportedChildContent = errors.New("easel: unsupported child content")
	ErrReferenceNotFound       = errors.New("easel: reference child not found")
)

// ComponentTypeError reports a primitive type with no registered factory.
type ComponentTypeError struct {
	Type string
}

func (e *ComponentTypeError) Error() string {
	return fmt.Sprintf("easel: invalid component type: %s", e.Type)
}

func (e *ComponentTypeError) Unwrap() error { return ErrInvalidComponentType }

// Kind returns KindInvalidComponentType.
func (e *ComponentTypeError) Kind() ErrorKind { return KindInvalidComponentType }

// ChildContentError reports a child that a drawable cannot paint. Only
// strings and numbers are allowed as children of a drawable.
type ChildContentError struct {
	Type  string // primitive type of the drawable
	Child any
}

func (e *ChildContentError) Error() string {
	return fmt.Sprintf("easel: only strings and numbers allowed as children for <%s>, got %T", e.Type, e.Child)
}

func (e *ChildContentError) Unwrap() error { return ErrUnsupportedChildContent }

// Kind returns KindUnsupportedChildContent.
func (e *ChildContentError) Kind() ErrorKind { return KindUnsupportedChildContent }

// ReferenceError reports an insert whose reference child is absent.
type ReferenceError struct {
	Op        string
	Reference any
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("easel: %s: reference child %s not found", e.Op, describe(e.Reference))
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

// Kind returns KindReferenceNotFound.
func (e *ReferenceError) Kind() ErrorKind { return KindReferenceNotFound }

// KindOf returns the kind of an easel error anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return 0
}

func describe(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case Drawable:
		return fmt.Sprintf("<%s>", t.Type())
	default:
		return fmt.Sprintf("%v", v)
	}
}
