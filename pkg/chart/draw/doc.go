// Package draw holds the vector primitives charts are assembled from.
//
// A drawing is a tree of [Element] values: a [Group] translates its children,
// a [Polyline] strokes a sequence of points and a [Text] places a label.
// Styles are typed ([TextStyle], [LineStyle]) so sinks other than SVG can
// read them without parsing CSS back.
//
// Groups encode themselves as SVG fragments:
//
//	g := &draw.Group{Class: "marker", Translate: draw.Point{Y: 40}}
//	g.Children = append(g.Children, &draw.Polyline{Points: pts})
//	fragment := g.SVG()
//
// Fragments are meant to be embedded in a larger document; see the sink
// package for standalone output.
package draw
