package easel

import (
	"log/slog"
	"slices"
	"strings"
	"weak"

	"github.com/phanxgames/easel/reconciler"
)

// RectangleType is the primitive type name of [Rectangle].
const RectangleType = "rectangle"

// Rectangle is the rectangle-with-text primitive. Its children are text
// leaves (strings and numbers) concatenated into a single line of text.
// Nested drawables are not supported and fail at paint time.
type Rectangle struct {
	props    Props
	children []any
	owner    weak.Pointer[Root]
}

// NewRectangle creates a detached rectangle. Children are attached
// separately, see [Rectangle.AppendInitialChild].
func NewRectangle(props Props) *Rectangle {
	return &Rectangle{props: props}
}

// Type returns RectangleType.
func (r *Rectangle) Type() string { return RectangleType }

// Props returns the current props. The returned map MUST NOT be mutated.
func (r *Rectangle) Props() Props { return r.props }

// Style returns the style stored in the current props, without defaults.
func (r *Rectangle) Style() Style { return StyleOf(r.props) }

// Children returns the child list. The returned slice MUST NOT be mutated.
func (r *Rectangle) Children() []any { return r.children }

// SetOwner sets the Root that r invalidates on mutation.
func (r *Rectangle) SetOwner(root *Root) {
	if root == nil {
		r.owner = weak.Pointer[Root]{}
		return
	}
	r.owner = weak.Make(root)
}

// Owner returns the Root r is attached to, or nil.
func (r *Rectangle) Owner() *Root {
	return r.owner.Value()
}

func (r *Rectangle) invalidate() {
	if root := r.owner.Value(); root != nil {
		root.Invalidate()
	}
}

// AppendInitialChild adds child to the end of the list without repainting.
func (r *Rectangle) AppendInitialChild(child any) {
	r.children = append(r.children, child)
}

// AppendChild adds child to the end of the list. A drawable already in the
// list is moved.
func (r *Rectangle) AppendChild(child any) {
	r.children = append(detach(r.children, child), child)
	r.invalidate()
}

// RemoveChild removes the first occurrence of child. Removing a child that
// is not in the list leaves it unchanged and does not repaint.
func (r *Rectangle) RemoveChild(child any) {
	i := indexChild(r.children, child)
	if i < 0 {
		return
	}
	r.children = slices.Delete(r.children, i, i+1)
	r.invalidate()
}

// InsertBefore inserts child immediately before the first occurrence of
// before. A drawable already in the list is moved. If before is not in the
// list a *ReferenceError is returned and the list is unchanged.
func (r *Rectangle) InsertBefore(child, before any) error {
	children, err := insertBefore(r.children, child, before, "rectangle insertBefore")
	if err != nil {
		return err
	}
	r.children = children
	r.invalidate()
	return nil
}

// ReplaceProps stores props and replaces the child list with the leaves of
// props["children"]. Shallow-equal props are ignored and do not repaint.
func (r *Rectangle) ReplaceProps(props Props) {
	if ShallowEqual(r.props, props) {
		return
	}
	r.props = props
	r.children = flattenChildren(props.Children())
	r.invalidate()
}

// Text returns the concatenated text of the children. It fails with a
// *ChildContentError if a child is neither a text leaf nor empty.
func (r *Rectangle) Text() (string, error) {
	var sb strings.Builder
	for _, child := range r.children {
		switch {
		case reconciler.IsText(child):
			sb.WriteString(reconciler.FormatText(child))
		case child == nil || child == false:
		default:
			return "", &ChildContentError{Type: RectangleType, Child: child}
		}
	}
	return sb.String(), nil
}

// Paint fills the rectangle with its background color, then draws its text
// at (left+padding, top+padding+fontSize). Nothing is drawn if a child is
// unsupported.
func (r *Rectangle) Paint(c Canvas) error {
	text, err := r.Text()
	if err != nil {
		return err
	}
	st := r.Style().Resolved()

	c.FillRect(Rect{X: st.Left, Y: st.Top, Width: st.Width, Height: st.Height},
		paintColors.resolve(st.BackgroundColor, DefaultBackgroundColor))
	c.FillText(text, st.Left+st.Padding, st.Top+st.Padding+st.FontSize,
		Font{Family: st.FontFamily, Size: st.FontSize},
		paintColors.resolve(st.Color, DefaultColor))
	return nil
}

// LogValue reports the rectangle compactly in log records.
func (r *Rectangle) LogValue() slog.Value {
	st := r.Style()
	return slog.GroupValue(
		slog.String("type", RectangleType),
		slog.Float64("left", st.Left),
		slog.Float64("top", st.Top),
		slog.Int("children", len(r.children)),
	)
}

// --- list helpers shared by Rectangle and Root ---

// sameChild reports whether a and b are the same child: the same drawable,
// or equal leaves.
func sameChild(a, b any) bool {
	if da, ok := a.(Drawable); ok {
		db, ok := b.(Drawable)
		return ok && da == db
	}
	if _, ok := b.(Drawable); ok {
		return false
	}
	return equalComparable(a, b)
}

func indexChild(list []any, child any) int {
	return slices.IndexFunc(list, func(c any) bool { return sameChild(c, child) })
}

// detach removes a drawable child from list so it can be re-added at a new
// position. Leaves may legitimately repeat and are left alone.
func detach(list []any, child any) []any {
	if _, ok := child.(Drawable); !ok {
		return list
	}
	if i := indexChild(list, child); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

func insertBefore(list []any, child, before any, op string) ([]any, error) {
	if indexChild(list, before) < 0 {
		return list, &ReferenceError{Op: op, Reference: before}
	}
	if d, ok := child.(Drawable); ok && sameChild(d, before) {
		return list, &ReferenceError{Op: op, Reference: before}
	}
	list = detach(list, child)
	i := indexChild(list, before)
	return slices.Insert(list, i, child), nil
}
