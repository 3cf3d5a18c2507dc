package easel

import (
	"reflect"

	"github.com/phanxgames/easel/reconciler"
)

// Style holds the visual properties of a rectangle. A zero field is unset
// and takes its default (see [Style.Resolved]).
type Style struct {
	Top             float64 `yaml:"top,omitempty"`
	Left            float64 `yaml:"left,omitempty"`
	Width           float64 `yaml:"width,omitempty"`
	Height          float64 `yaml:"height,omitempty"`
	Padding         float64 `yaml:"padding,omitempty"`
	BackgroundColor string  `yaml:"backgroundColor,omitempty"`
	Color           string  `yaml:"color,omitempty"`
	FontSize        float64 `yaml:"fontSize,omitempty"`
	FontFamily      string  `yaml:"fontFamily,omitempty"`
}

// Style defaults.
const (
	DefaultBackgroundColor = "#000"
	DefaultColor           = "#fff"
	DefaultFontSize        = 14
	DefaultFontFamily      = "sans-serif"
)

// Resolved returns s with unset fields replaced by their defaults. Position
// and size metrics default to 0.
func (s Style) Resolved() Style {
	if s.BackgroundColor == "" {
		s.BackgroundColor = DefaultBackgroundColor
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.FontSize == 0 {
		s.FontSize = DefaultFontSize
	}
	if s.FontFamily == "" {
		s.FontFamily = DefaultFontFamily
	}
	return s
}

// StyleOf returns the style stored in props, accepting a Style or a
// *Style. Anything else yields the zero Style.
func StyleOf(props Props) Style {
	switch s := props["style"].(type) {
	case Style:
		return s
	case *Style:
		if s != nil {
			return *s
		}
	}
	return Style{}
}

// ShallowEqual reports whether a and b have the same keys with identical
// values, one level deep. Comparable values are compared with ==; slices,
// maps and funcs are identical only when they share the same backing data.
func ShallowEqual(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !identical(av, bv) {
			return false
		}
	}
	return true
}

func identical(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	tx := reflect.TypeOf(x)
	if tx != reflect.TypeOf(y) {
		return false
	}
	switch tx.Kind() {
	case reflect.Slice:
		vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
		return vx.Len() == vy.Len() && vx.Pointer() == vy.Pointer()
	case reflect.Map, reflect.Func:
		return reflect.ValueOf(x).Pointer() == reflect.ValueOf(y).Pointer()
	}
	if !tx.Comparable() {
		return false
	}
	return equalComparable(x, y)
}

// equalComparable compares with ==, treating the runtime panic raised by
// structs holding uncomparable interface values as inequality.
func equalComparable(x, y any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return x == y
}

// flattenChildren returns the leaves of a children value, the way they are
// stored in a drawable's child list.
func flattenChildren(children any) []any {
	return reconciler.Flatten(children)
}
