package reconciler

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Props is the property bag of an element. The "children" entry holds the
// element's children: a single child or a []any of children.
type Props map[string]any

// Children returns the raw "children" entry.
func (p Props) Children() any {
	return p["children"]
}

// Component renders props into a child tree: an Element, a text leaf, a
// []any of those, or nil.
type Component func(props Props) any

// Element describes one node of a tree handed to UpdateContainer. Type is a
// primitive type name (string) handled by the Host, or a Component.
type Element struct {
	Type  any
	Key   string
	Props Props
}

// CreateElement builds an element. A single child is stored as-is in
// props["children"]; more than one is stored as a []any. The props map is
// copied.
func CreateElement(typ any, props Props, children ...any) Element {
	p := make(Props, len(props)+1)
	for k, v := range props {
		p[k] = v
	}
	switch len(children) {
	case 0:
	case 1:
		p["children"] = children[0]
	default:
		p["children"] = children
	}
	return Element{Type: typ, Props: p}
}

// WithKey returns a copy of e with the given key. Keyed siblings are matched
// across updates by key instead of by position.
func (e Element) WithKey(key string) Element {
	e.Key = key
	return e
}

// IsText reports whether v is a text leaf: a string or a number.
func IsText(v any) bool {
	switch v.(type) {
	case string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// FormatText renders a text leaf the way it appears on screen. Numbers use
// the JavaScript number-to-string form: integral floats print without a
// fraction, magnitudes from 1e21 up or below 1e-6 print as "1e+21" and
// "1e-7", infinities as "Infinity".
func FormatText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatFloat(t, 64)
	case float32:
		return formatFloat(float64(t), 32)
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0" // also -0
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		// strconv pads the exponent to two digits: 1e-07.
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// Flatten turns a children value into a flat list: nested lists are
// expanded in order, nil and booleans are dropped.
func Flatten(children any) []any {
	var out []any
	flattenInto(&out, children)
	return out
}

func flattenInto(out *[]any, v any) {
	switch t := v.(type) {
	case nil, bool:
	case []any:
		for _, c := range t {
			flattenInto(out, c)
		}
	case []Element:
		for _, c := range t {
			*out = append(*out, c)
		}
	case []string:
		for _, c := range t {
			*out = append(*out, c)
		}
	case *Element:
		if t != nil {
			*out = append(*out, *t)
		}
	default:
		*out = append(*out, v)
	}
}

// keyOf returns the reconciliation key of a child at index i among its
// siblings.
func keyOf(child any, i int) string {
	if el, ok := child.(Element); ok && el.Key != "" {
		return "k:" + el.Key
	}
	return "i:" + strconv.Itoa(i)
}

// componentOf returns the component of an element type, if it is one.
func componentOf(typ any) (Component, bool) {
	switch c := typ.(type) {
	case Component:
		return c, c != nil
	case func(Props) any:
		return c, c != nil
	}
	return nil, false
}

// sameComponent reports whether two components share the same code.
func sameComponent(a, b Component) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
