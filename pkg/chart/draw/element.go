package draw

import "bytes"

// Point is a coordinate in the local space of the enclosing group.
type Point struct {
	X, Y float64
}

// Anchor is the SVG text-anchor of a label.
type Anchor string

const (
	AnchorUnset  Anchor = ""
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Element is a node of a drawing.
type Element interface {
	writeSVG(buf *bytes.Buffer, depth int)
}

// Group translates its children as a unit.
type Group struct {
	Class     string
	Translate Point
	Children  []Element
}

// Polyline is an open stroked path through Points.
type Polyline struct {
	Points []Point
	Style  LineStyle
}

// Text is a single-line label. A nil X leaves the x attribute off, in which
// case SVG consumers place the text at 0.
type Text struct {
	X       *float64
	Y       float64
	Anchor  Anchor
	Style   TextStyle
	Content string
}

// Add appends children and returns g for chaining.
func (g *Group) Add(children ...Element) *Group {
	g.Children = append(g.Children, children...)
	return g
}

// Walk calls fn for every element below g in document order, passing the
// accumulated translation of the element's parent group.
func (g *Group) Walk(fn func(e Element, offset Point)) {
	g.walk(Point{}, fn)
}

func (g *Group) walk(parent Point, fn func(Element, Point)) {
	fn(g, parent)
	offset := Point{X: parent.X + g.Translate.X, Y: parent.Y + g.Translate.Y}
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			sub.walk(offset, fn)
			continue
		}
		fn(child, offset)
	}
}

// Ptr returns a pointer to v, for optional coordinates.
func Ptr(v float64) *float64 { return &v }
